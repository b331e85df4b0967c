package content

import (
	"fmt"
	"strings"
)

// Validator checks a generated encounter set. Implementations are
// stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the set passes, or a *ValidationError.
	Validate(d *TopicGameData) error
}

// DefaultValidators returns the full built-in chain.
func DefaultValidators() []Validator {
	return []Validator{
		&EncounterCountValidator{},
		&OptionCountValidator{},
		&AnswerIndexValidator{},
		&NonBlankValidator{},
	}
}

// EncounterCountValidator requires between MinEncounters and MaxEncounters.
type EncounterCountValidator struct{}

func (v *EncounterCountValidator) Name() string { return "encounter-count" }

func (v *EncounterCountValidator) Validate(d *TopicGameData) error {
	if n := len(d.Encounters); n < MinEncounters || n > MaxEncounters {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d encounters, want %d-%d", n, MinEncounters, MaxEncounters),
		}
	}
	return nil
}

// OptionCountValidator requires exactly OptionCount options per encounter.
type OptionCountValidator struct{}

func (v *OptionCountValidator) Name() string { return "option-count" }

func (v *OptionCountValidator) Validate(d *TopicGameData) error {
	for i, e := range d.Encounters {
		if len(e.Options) != OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("encounter %d has %d options, want %d", i, len(e.Options), OptionCount),
			}
		}
	}
	return nil
}

// AnswerIndexValidator requires the correct index to point at an option.
type AnswerIndexValidator struct{}

func (v *AnswerIndexValidator) Name() string { return "answer-index" }

func (v *AnswerIndexValidator) Validate(d *TopicGameData) error {
	for i, e := range d.Encounters {
		if e.CorrectAnswerIndex < 0 || e.CorrectAnswerIndex >= len(e.Options) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("encounter %d answer index %d out of range", i, e.CorrectAnswerIndex),
			}
		}
	}
	return nil
}

// NonBlankValidator rejects encounters with missing text.
type NonBlankValidator struct{}

func (v *NonBlankValidator) Name() string { return "non-blank" }

func (v *NonBlankValidator) Validate(d *TopicGameData) error {
	for i, e := range d.Encounters {
		switch {
		case blank(e.MonsterName):
			return v.fail(i, "monsterName")
		case blank(e.EducationalContent):
			return v.fail(i, "educationalContent")
		case blank(e.Question):
			return v.fail(i, "question")
		}
		for j, opt := range e.Options {
			if blank(opt) {
				return v.fail(i, fmt.Sprintf("options[%d]", j))
			}
		}
	}
	return nil
}

func (v *NonBlankValidator) fail(i int, field string) error {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("encounter %d has blank %s", i, field),
	}
}

// ValidateCurriculum checks that a curriculum has content to select from.
func ValidateCurriculum(c *Curriculum) error {
	if c == nil {
		return &ValidationError{Validator: "curriculum", Message: "curriculum is nil"}
	}
	if blank(c.Subject) {
		return &ValidationError{Validator: "curriculum", Message: "subject is blank"}
	}
	if len(c.Modules) == 0 {
		return &ValidationError{Validator: "curriculum", Message: "no modules"}
	}
	for i, m := range c.Modules {
		if blank(m.Title) {
			return &ValidationError{Validator: "curriculum", Message: fmt.Sprintf("module %d has blank title", i)}
		}
		if len(m.Topics) == 0 {
			return &ValidationError{Validator: "curriculum", Message: fmt.Sprintf("module %d has no topics", i)}
		}
		for j, t := range m.Topics {
			if blank(t.Title) {
				return &ValidationError{Validator: "curriculum", Message: fmt.Sprintf("module %d topic %d has blank title", i, j)}
			}
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
