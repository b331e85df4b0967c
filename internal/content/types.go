package content

// Curriculum is a generated study plan for a subject.
type Curriculum struct {
	Subject string   `json:"subject" yaml:"subject"`
	Modules []Module `json:"modules" yaml:"modules"`
}

// Module is a named group of related sub-topics.
type Module struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Topics      []SubTopic `json:"topics" yaml:"topics"`
}

// SubTopic is one selectable hunt within a module. IsCompleted is never
// produced by generation; it is filled in by the session view.
type SubTopic struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IsCompleted bool   `json:"isCompleted,omitempty" yaml:"completed,omitempty"`
}

// TopicCount returns the total number of sub-topics across all modules.
func (c *Curriculum) TopicCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Topics)
	}
	return n
}

// Clone returns a deep copy, so views can mark completion without
// touching the stored curriculum.
func (c *Curriculum) Clone() *Curriculum {
	if c == nil {
		return nil
	}
	out := &Curriculum{Subject: c.Subject, Modules: make([]Module, len(c.Modules))}
	for i, m := range c.Modules {
		out.Modules[i] = Module{
			Title:       m.Title,
			Description: m.Description,
			Topics:      append([]SubTopic(nil), m.Topics...),
		}
	}
	return out
}

// OptionCount is the number of answer options every encounter carries.
const OptionCount = 4

// Encounter bounds for a generated level.
const (
	MinEncounters = 3
	MaxEncounters = 5
)

// Encounter is one quiz unit: a short lesson and a multiple-choice
// question themed as a monster to banish.
type Encounter struct {
	MonsterName        string   `json:"monsterName" yaml:"monster"`
	EducationalContent string   `json:"educationalContent" yaml:"lesson"`
	Question           string   `json:"question" yaml:"question"`
	Options            []string `json:"options" yaml:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" yaml:"answer"`
}

// IsCorrect reports whether option index i is the right answer.
func (e Encounter) IsCorrect(i int) bool {
	return i == e.CorrectAnswerIndex
}

// TopicGameData is the level generated for one sub-topic.
type TopicGameData struct {
	Topic      string      `json:"topic" yaml:"topic"`
	Encounters []Encounter `json:"encounters" yaml:"encounters"`
}
