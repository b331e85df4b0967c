package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the provider answered but produced no text.
var ErrEmptyResponse = errors.New("LLM returned no content")

// ErrInvalidResponse indicates the LLM returned content that is not valid
// JSON or does not conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates a transport-level failure: the provider
// is down, unreachable, throttling, or the request timed out.
type ErrProviderUnavailable struct {
	// StatusCode is the HTTP status returned by the provider, or 0 when
	// the request never got a response.
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("LLM provider unavailable (HTTP %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("LLM provider unavailable (HTTP %d)", e.StatusCode)
	default:
		return "LLM provider unavailable"
	}
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// checkContent is shared by the adapters: it rejects empty and truncated
// output, then validates against the request schema.
func checkContent(req Request, content json.RawMessage, stopReason string) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return ErrEmptyResponse
	}
	if stopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(req.Schema, content)
}
