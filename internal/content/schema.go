package content

import "github.com/abhisek/grimoire/internal/llm"

// CurriculumSchema constrains curriculum generation.
var CurriculumSchema = &llm.Schema{
	Name:        "curriculum",
	Description: "A themed curriculum of modules, each with sub-topics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{
				"type":        "string",
				"description": "The spooky title of the course",
			},
			"modules": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"topics": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"title":       map[string]any{"type": "string"},
									"description": map[string]any{"type": "string"},
								},
								"required":             []any{"title", "description"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"title", "description", "topics"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"subject", "modules"},
		"additionalProperties": false,
	},
}

// EncounterSetSchema constrains encounter generation for one sub-topic.
var EncounterSetSchema = &llm.Schema{
	Name:        "encounter_set",
	Description: "A level of monster encounters, each a lesson plus a four-option question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
			"encounters": map[string]any{
				"type":     "array",
				"minItems": MinEncounters,
				"maxItems": MaxEncounters,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"monsterName": map[string]any{
							"type":        "string",
							"description": "Name of the monster, e.g. 'The Syntax Specter'",
						},
						"educationalContent": map[string]any{
							"type":        "string",
							"description": "Markdown formatted lesson content explaining the concept. Keep it spooky but educational. 2-3 paragraphs.",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "A multiple choice question to test the user on the content.",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly four answer options in display order",
							"items":       map[string]any{"type": "string"},
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
							"minimum":     0,
							"maximum":     OptionCount - 1,
						},
					},
					"required":             []any{"monsterName", "educationalContent", "question", "options", "correctAnswerIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "encounters"},
		"additionalProperties": false,
	},
}
