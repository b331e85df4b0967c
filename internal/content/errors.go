package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/grimoire/internal/llm"
)

// ErrEmptyTopic is returned when a curriculum is requested for a blank topic.
var ErrEmptyTopic = errors.New("topic is empty")

// Kind classifies a generation failure.
type Kind int

const (
	// KindUnknown covers failures that fit no other class.
	KindUnknown Kind = iota
	// KindEmptyResponse means the model returned no text.
	KindEmptyResponse
	// KindSchema means the text did not parse or failed validation.
	KindSchema
	// KindNetwork means the provider call itself failed.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindEmptyResponse:
		return "empty_response"
	case KindSchema:
		return "schema"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// GenerationError wraps every error returned by Service.
type GenerationError struct {
	Op   string // "curriculum" or "encounters"
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ValidationError describes why generated content failed a post-parse check.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Classify maps an error to its Kind. A *GenerationError reports its own
// kind; anything else is inspected through the llm error types.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}

	if errors.Is(err, llm.ErrEmptyResponse) {
		return KindEmptyResponse
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return KindSchema
	}
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return KindSchema
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return KindSchema
	}

	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return KindNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}

	return KindUnknown
}

func wrap(op string, err error) error {
	return &GenerationError{Op: op, Kind: Classify(err), Err: err}
}
