package content

// Config holds generation settings for both request kinds.
type Config struct {
	CurriculumMaxTokens int     `yaml:"curriculum_max_tokens" env:"GRIMOIRE_CURRICULUM_MAX_TOKENS"`
	EncounterMaxTokens  int     `yaml:"encounter_max_tokens" env:"GRIMOIRE_ENCOUNTER_MAX_TOKENS"`
	Temperature         float64 `yaml:"temperature" env:"GRIMOIRE_LLM_TEMPERATURE"`

	// Validators run in order on every encounter set; the first failure
	// rejects the whole set.
	Validators []Validator `yaml:"-"`
}

// DefaultConfig returns sensible defaults with the full validator chain.
func DefaultConfig() Config {
	return Config{
		CurriculumMaxTokens: 4096,
		EncounterMaxTokens:  8192,
		Temperature:         0.8,
		Validators:          DefaultValidators(),
	}
}
