package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/grimoire/internal/llm"
)

// Purposes attached to LLM calls for the event log.
const (
	PurposeCurriculum = "curriculum"
	PurposeEncounters = "encounters"
)

// Provider is the content generation boundary used by the app.
type Provider interface {
	RequestCurriculum(ctx context.Context, topic string) (*Curriculum, error)
	RequestEncounterSet(ctx context.Context, subject, moduleTitle, topicTitle string) (*TopicGameData, error)
}

// Service generates curricula and encounter sets through an LLM provider.
// Each call makes exactly one Generate call; nothing is cached.
type Service struct {
	provider llm.Provider
	cfg      Config
}

var _ Provider = (*Service)(nil)

// NewService creates a content service. A nil Validators slice in cfg
// falls back to DefaultValidators.
func NewService(provider llm.Provider, cfg Config) *Service {
	if cfg.Validators == nil {
		cfg.Validators = DefaultValidators()
	}
	return &Service{provider: provider, cfg: cfg}
}

// RequestCurriculum generates a curriculum for topic.
func (s *Service) RequestCurriculum(ctx context.Context, topic string) (*Curriculum, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, wrap(PurposeCurriculum, ErrEmptyTopic)
	}

	ctx = llm.WithPurpose(ctx, PurposeCurriculum)

	req := llm.UserPrompt(curriculumSystemPrompt, buildCurriculumUserMessage(topic), CurriculumSchema)
	req.MaxTokens = s.cfg.CurriculumMaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, wrap(PurposeCurriculum, err)
	}

	var out Curriculum
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, wrap(PurposeCurriculum, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse curriculum: %w", err),
		})
	}

	if strings.TrimSpace(out.Subject) == "" {
		out.Subject = topic
	}
	for i := range out.Modules {
		for j := range out.Modules[i].Topics {
			out.Modules[i].Topics[j].IsCompleted = false
		}
	}

	if err := ValidateCurriculum(&out); err != nil {
		return nil, wrap(PurposeCurriculum, err)
	}
	return &out, nil
}

// RequestEncounterSet generates the encounters for one sub-topic.
func (s *Service) RequestEncounterSet(ctx context.Context, subject, moduleTitle, topicTitle string) (*TopicGameData, error) {
	ctx = llm.WithPurpose(ctx, PurposeEncounters)

	req := llm.UserPrompt(encounterSystemPrompt, buildEncounterUserMessage(subject, moduleTitle, topicTitle), EncounterSetSchema)
	req.MaxTokens = s.cfg.EncounterMaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, wrap(PurposeEncounters, err)
	}

	var out TopicGameData
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, wrap(PurposeEncounters, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse encounters: %w", err),
		})
	}

	if strings.TrimSpace(out.Topic) == "" {
		out.Topic = topicTitle
	}

	for _, v := range s.cfg.Validators {
		if err := v.Validate(&out); err != nil {
			return nil, wrap(PurposeEncounters, err)
		}
	}
	return &out, nil
}
