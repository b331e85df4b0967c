package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/grimoire/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCurriculum() map[string]any {
	return map[string]any{
		"subject": "The Necronomicon of Go",
		"modules": []any{
			map[string]any{
				"title":       "Summoning Goroutines",
				"description": "Raising lightweight spirits.",
				"topics": []any{
					map[string]any{"title": "The go Keyword", "description": "Starting a goroutine."},
					map[string]any{"title": "WaitGroups", "description": "Waiting for spirits to return."},
				},
			},
			map[string]any{
				"title":       "Channels of the Dead",
				"description": "Passing messages between the realms.",
				"topics": []any{
					map[string]any{"title": "Buffered Channels", "description": "Crypts with capacity."},
				},
			},
		},
	}
}

func sampleEncounter(name string, answer int) map[string]any {
	return map[string]any{
		"monsterName":        name,
		"educationalContent": "A **goroutine** is a function running concurrently.",
		"question":           "Which keyword starts a goroutine?",
		"options":            []any{"go", "run", "spawn", "async"},
		"correctAnswerIndex": answer,
	}
}

func sampleEncounterSet(n int) map[string]any {
	encounters := make([]any, n)
	for i := range encounters {
		encounters[i] = sampleEncounter("The Syntax Specter", i%OptionCount)
	}
	return map[string]any{"topic": "The go Keyword", "encounters": encounters}
}

func TestRequestCurriculum_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(sampleCurriculum()))
	svc := NewService(mock, DefaultConfig())

	c, err := svc.RequestCurriculum(context.Background(), "  Go concurrency ")
	require.NoError(t, err)

	assert.Equal(t, "The Necronomicon of Go", c.Subject)
	require.Len(t, c.Modules, 2)
	assert.Equal(t, "Summoning Goroutines", c.Modules[0].Title)
	assert.Len(t, c.Modules[0].Topics, 2)
	assert.Equal(t, 3, c.TopicCount())
	assert.False(t, c.Modules[0].Topics[0].IsCompleted)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, CurriculumSchema, req.Schema)
	assert.Equal(t, curriculumSystemPrompt, req.System)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, `"Go concurrency"`)
	assert.Equal(t, DefaultConfig().CurriculumMaxTokens, req.MaxTokens)
}

func TestRequestCurriculum_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	_, err := svc.RequestCurriculum(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyTopic)
	assert.Equal(t, 0, mock.CallCount())

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, PurposeCurriculum, genErr.Op)
}

// rawProvider returns its content unvalidated, bypassing the mock's
// schema checks.
type rawProvider json.RawMessage

func (p rawProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: json.RawMessage(p)}, nil
}

func (rawProvider) ModelID() string { return "raw" }

func TestService_UnparseableContentKeepsRawBody(t *testing.T) {
	raw := rawProvider(`[1, 2]`)
	svc := NewService(raw, DefaultConfig())

	_, err := svc.RequestCurriculum(context.Background(), "Go")
	var invalid *llm.ErrInvalidResponse
	require.True(t, errors.As(err, &invalid))
	assert.JSONEq(t, `[1, 2]`, string(invalid.Content))
	assert.Equal(t, KindSchema, Classify(err))

	_, err = svc.RequestEncounterSet(context.Background(), "Go", "Channels", "Buffered")
	require.True(t, errors.As(err, &invalid))
	assert.JSONEq(t, `[1, 2]`, string(invalid.Content))
	assert.Equal(t, KindSchema, Classify(err))
}

func TestRequestCurriculum_SubjectFallsBackToTopic(t *testing.T) {
	raw := sampleCurriculum()
	raw["subject"] = ""
	svc := NewService(llm.NewMockProvider(llm.MockJSON(raw)), DefaultConfig())

	c, err := svc.RequestCurriculum(context.Background(), "Rust")
	require.NoError(t, err)
	assert.Equal(t, "Rust", c.Subject)
}

func TestRequestCurriculum_EmptyModulesRejected(t *testing.T) {
	raw := map[string]any{"subject": "Nothing", "modules": []any{}}
	svc := NewService(llm.NewMockProvider(llm.MockJSON(raw)), DefaultConfig())

	_, err := svc.RequestCurriculum(context.Background(), "Nothing")
	require.Error(t, err)
	assert.Equal(t, KindSchema, Classify(err))
}

func TestRequestCurriculum_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		kind Kind
	}{
		{"empty text", llm.MockResponse{Content: []byte("  ")}, KindEmptyResponse},
		{"malformed json", llm.MockResponse{Content: []byte(`{"subject":`)}, KindSchema},
		{"schema violation", llm.MockJSON(map[string]any{"subject": "x"}), KindSchema},
		{"network", llm.MockResponse{Err: &llm.ErrProviderUnavailable{StatusCode: 503}}, KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig())
			_, err := svc.RequestCurriculum(context.Background(), "Go")
			require.Error(t, err)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, PurposeCurriculum, genErr.Op)
			assert.Equal(t, tt.kind, genErr.Kind)
		})
	}
}

func TestRequestEncounterSet_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(sampleEncounterSet(3)))
	svc := NewService(mock, DefaultConfig())

	d, err := svc.RequestEncounterSet(context.Background(), "Go", "Summoning Goroutines", "The go Keyword")
	require.NoError(t, err)
	assert.Equal(t, "The go Keyword", d.Topic)
	require.Len(t, d.Encounters, 3)
	assert.Equal(t, "The Syntax Specter", d.Encounters[0].MonsterName)
	assert.Len(t, d.Encounters[0].Options, OptionCount)
	assert.True(t, d.Encounters[1].IsCorrect(1))

	req, _ := mock.LastCall()
	assert.Equal(t, EncounterSetSchema, req.Schema)
	assert.Equal(t, encounterSystemPrompt, req.System)
	msg := req.Messages[0].Content
	for _, want := range []string{"Subject: Go", "Module: Summoning Goroutines", "Topic: The go Keyword", "Ghost Hunt", "3-5 encounters"} {
		assert.Contains(t, msg, want)
	}
}

func TestRequestEncounterSet_TopicFallsBack(t *testing.T) {
	raw := sampleEncounterSet(4)
	raw["topic"] = ""
	svc := NewService(llm.NewMockProvider(llm.MockJSON(raw)), DefaultConfig())

	d, err := svc.RequestEncounterSet(context.Background(), "Go", "M", "WaitGroups")
	require.NoError(t, err)
	assert.Equal(t, "WaitGroups", d.Topic)
}

func TestRequestEncounterSet_SchemaRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"too few encounters", func(m map[string]any) { m["encounters"] = m["encounters"].([]any)[:2] }},
		{"three options", func(m map[string]any) {
			m["encounters"].([]any)[0].(map[string]any)["options"] = []any{"a", "b", "c"}
		}},
		{"index out of range", func(m map[string]any) {
			m["encounters"].([]any)[0].(map[string]any)["correctAnswerIndex"] = 4
		}},
		{"negative index", func(m map[string]any) {
			m["encounters"].([]any)[1].(map[string]any)["correctAnswerIndex"] = -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := sampleEncounterSet(3)
			tt.mutate(raw)
			svc := NewService(llm.NewMockProvider(llm.MockJSON(raw)), DefaultConfig())

			_, err := svc.RequestEncounterSet(context.Background(), "Go", "M", "T")
			require.Error(t, err)
			assert.Equal(t, KindSchema, Classify(err))
		})
	}
}

// passthrough skips schema enforcement so the validator chain sees the
// raw shape.
type passthrough struct{ content string }

func (p passthrough) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: []byte(p.content)}, nil
}

func (p passthrough) ModelID() string { return "passthrough" }

func TestRequestEncounterSet_ValidatorsRunAfterParse(t *testing.T) {
	body := `{"topic":"T","encounters":[
		{"monsterName":"A","educationalContent":"x","question":"q","options":["1","2","3","4"],"correctAnswerIndex":0},
		{"monsterName":"B","educationalContent":"x","question":"q","options":["1","2","3"],"correctAnswerIndex":0},
		{"monsterName":"C","educationalContent":"x","question":"q","options":["1","2","3","4"],"correctAnswerIndex":0}]}`
	svc := NewService(passthrough{content: body}, DefaultConfig())

	_, err := svc.RequestEncounterSet(context.Background(), "S", "M", "T")
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "option-count", valErr.Validator)
	assert.Equal(t, KindSchema, Classify(err))
}

func TestRequestEncounterSet_Purpose(t *testing.T) {
	var seen string
	p := purposeSpy{fn: func(ctx context.Context) { seen = llm.PurposeFrom(ctx) }}
	svc := NewService(p, DefaultConfig())

	_, _ = svc.RequestEncounterSet(context.Background(), "S", "M", "T")
	assert.Equal(t, PurposeEncounters, seen)

	_, _ = svc.RequestCurriculum(context.Background(), "S")
	assert.Equal(t, PurposeCurriculum, seen)
}

type purposeSpy struct{ fn func(context.Context) }

func (p purposeSpy) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return nil, &llm.ErrProviderUnavailable{}
}

func (p purposeSpy) ModelID() string { return "spy" }

func TestPromptsStayOnTheme(t *testing.T) {
	assert.True(t, strings.Contains(curriculumSystemPrompt, "skeletal scholar"))
	assert.True(t, strings.Contains(encounterSystemPrompt, "haunted crypt"))
	assert.Contains(t, buildCurriculumUserMessage("Go"), "3-6 modules")
}
