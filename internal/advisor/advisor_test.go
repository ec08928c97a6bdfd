package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/llm/llmtest"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

func TestBlankDescriptionSkipsModel(t *testing.T) {
	fake := &llmtest.Fake{Response: `{"suggestions":[]}`}
	a := New(fake)

	for _, desc := range []string{"", "   ", "\n\t"} {
		out := a.OptimizationSuggestions(context.Background(), Input{Description: desc})
		assert.ErrorIs(t, out.Err, ErrDescriptionRequired)
		assert.True(t, out.Invalid())
		assert.False(t, out.Fallback())
		assert.NotNil(t, out.Payload)
		assert.Empty(t, out.Payload)
	}

	db := a.DatabaseRecommendations(context.Background(), Input{})
	assert.Equal(t, "PostgreSQL", db.Payload.Selected)
	assert.Equal(t, "generic", db.Payload.UseCase.Key)

	scaling := a.ScalingInsights(context.Background(), Input{})
	assert.Equal(t, domain.LevelMedium, scaling.Payload.Insights.ExpectedLoad)
	assert.Equal(t, "70:30", scaling.Payload.Insights.ReadWriteRatio)

	assert.Empty(t, fake.Requests())
}

func TestSecurityUpstreamErrorFallsBack(t *testing.T) {
	fake := &llmtest.Fake{Err: errors.New("upstream unavailable")}
	out := New(fake).SecurityRecommendations(context.Background(), Input{Description: "a blog"})

	assert.False(t, out.Success())
	assert.True(t, out.Fallback())
	assert.Equal(t, "upstream unavailable", out.ErrorMessage())
	require.Len(t, out.Payload, 4)
	assert.Equal(t, SecurityFallback(), out.Payload)
}

func TestFallbackOnBadAnswers(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "Sure! Here are some tips."},
		{"missing top level field", `{"items":[]}`},
		{"wrong type", `{"recommendations":"none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New(&llmtest.Fake{Response: tt.response}).SmartRecommendations(context.Background(), Input{Description: "a shop"})
			assert.True(t, out.Fallback())
			assert.ErrorIs(t, out.Err, ErrInvalidResponse)
			assert.Len(t, out.Payload, 3)
		})
	}
}

func TestOptimizationDefaultsMissingFields(t *testing.T) {
	fake := &llmtest.Fake{Response: "```json\n" + `{"suggestions":[{"title":"Add indexes","impact":"high"},{}]}` + "\n```"}
	out := New(fake).OptimizationSuggestions(context.Background(), Input{Description: "analytics dashboard"})

	require.True(t, out.Success())
	require.Len(t, out.Payload, 2)
	assert.Equal(t, OptimizationSuggestion{
		Type:        "performance",
		Title:       "Add indexes",
		Description: "Implementation details not specified",
		Impact:      domain.LevelHigh,
		Complexity:  domain.LevelMedium,
	}, out.Payload[0])
	assert.Equal(t, "General Optimization", out.Payload[1].Title)
}

func TestPromptAndOptions(t *testing.T) {
	fake := &llmtest.Fake{Response: `{"recommendations":[]}`}
	in := Input{
		Description: "a chat app",
		Schemas:     []string{"users", "messages"},
		Options:     llm.Options{MaxTokens: 500},
	}
	out := New(fake).SecurityRecommendations(context.Background(), in)
	require.True(t, out.Success())
	assert.NotNil(t, out.Payload)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.True(t, strings.HasPrefix(req.Messages[0].Content, securityPrompt))
	assert.Contains(t, req.Messages[0].Content, `**PROJECT DESCRIPTION:** "a chat app"`)
	assert.Contains(t, req.Messages[0].Content, "**GENERATED TABLES:** users, messages")
	assert.Equal(t, "Provide security recommendations for: a chat app", req.Messages[1].Content)

	require.NotNil(t, req.Options.Temperature)
	assert.Equal(t, 0.2, *req.Options.Temperature)
	assert.Equal(t, 500, req.Options.MaxTokens)
	require.NotNil(t, req.Options.TopP)
	assert.Equal(t, 0.9, *req.Options.TopP)
}

func TestDatabaseRecommendations(t *testing.T) {
	fake := &llmtest.Fake{Response: `{
		"useCase": {"key": "ecommerce", "label": "Online Store", "complexity": "MEDIUM"},
		"recommendations": [
			{"name": "MySQL", "score": 80},
			{"name": "PostgreSQL", "score": 140, "reasons": ["ACID"]}
		]
	}`}
	out := New(fake).DatabaseRecommendations(context.Background(), Input{Description: "a shop"})

	require.True(t, out.Success())
	assert.Equal(t, "medium", out.Payload.UseCase.Complexity)
	assert.Equal(t, []string{}, out.Payload.UseCase.Features)
	assert.Equal(t, 100.0, out.Payload.Recommendations[1].Score)
	assert.Equal(t, "PostgreSQL", out.Payload.Selected)
	assert.Equal(t, []string{}, out.Payload.Recommendations[0].Pros)
}

func TestDatabaseFallback(t *testing.T) {
	fb := DatabaseFallback()
	assert.Len(t, fb.Recommendations, 3)
	assert.Equal(t, "PostgreSQL", fb.Selected)
	assert.Equal(t, "PostgreSQL", topDatabase(nil))
}

func TestScalingFallbackUsesTables(t *testing.T) {
	out := New(&llmtest.Fake{Response: "{}"}).ScalingInsights(context.Background(), Input{
		Description: "social network",
		Schemas:     []string{"users", "posts"},
	})

	assert.True(t, out.Fallback())
	prio := out.Payload.Insights.IndexingPriority
	require.Len(t, prio, 2)
	assert.Equal(t, IndexingPriority{Table: "users", Priority: domain.LevelHigh, Reason: "Primary entity, queried on most requests"}, prio[0])
	assert.Equal(t, domain.LevelMedium, prio[1].Priority)
	assert.Len(t, out.Payload.Metrics, 3)
}

func TestScalingDefaults(t *testing.T) {
	fake := &llmtest.Fake{Response: `{"insights":{"expectedLoad":"extreme","indexingPriority":[{"table":"orders"}]}}`}
	out := New(fake).ScalingInsights(context.Background(), Input{Description: "shop"})

	require.True(t, out.Success())
	assert.Equal(t, domain.LevelMedium, out.Payload.Insights.ExpectedLoad)
	assert.Equal(t, "Application-level", out.Payload.Insights.CachingStrategy)
	assert.Equal(t, domain.LevelMedium, out.Payload.Insights.IndexingPriority[0].Priority)
	assert.Equal(t, []PerformanceMetric{}, out.Payload.Metrics)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"\n{\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFences(tt.in))
	}
}

func TestAnalyzeMergesDomains(t *testing.T) {
	fake := &llmtest.Fake{Respond: func(req llm.Request) (string, error) {
		switch system := req.Messages[0].Content; {
		case strings.HasPrefix(system, securityPrompt):
			return "", errors.New("timeout")
		case strings.HasPrefix(system, smartPrompt):
			return `{"recommendations":[{"title":"Use queues"}]}`, nil
		case strings.HasPrefix(system, optimizationPrompt):
			return `{"suggestions":[]}`, nil
		case strings.HasPrefix(system, databasePrompt):
			return `{"recommendations":[{"name":"MongoDB","score":70}]}`, nil
		default:
			return `{"insights":{"expectedLoad":"High"},"metrics":[]}`, nil
		}
	}}

	out := New(fake).Analyze(context.Background(), Input{Description: "chat app"})

	assert.Len(t, fake.Requests(), 5)
	assert.True(t, out.Fallback())
	assert.Contains(t, out.ErrorMessage(), "timeout")
	assert.Equal(t, SecurityFallback(), out.Payload.SecurityRecommendations)
	assert.Equal(t, "Use queues", out.Payload.SmartRecommendations[0].Title)
	assert.Equal(t, "MongoDB", out.Payload.SelectedDatabase)
	assert.Equal(t, domain.LevelHigh, out.Payload.ScalingInsights.ExpectedLoad)
	assert.Empty(t, out.Payload.OptimizationSuggestions)
}

func TestAnalyzeBlankDescription(t *testing.T) {
	fake := &llmtest.Fake{}
	out := New(fake).Analyze(context.Background(), Input{Description: " "})
	assert.True(t, out.Invalid())
	assert.Equal(t, "PostgreSQL", out.Payload.SelectedDatabase)
	assert.Empty(t, fake.Requests())
}

func codeRequest() codegen.Request {
	analysis := schemagen.AnalyzeEntities("a cms")
	return codegen.Request{
		Project: domain.Project{
			Name:     "Blog",
			Schema:   schemagen.GenerateTables(analysis),
			Database: domain.DatabaseConfig{Type: domain.PostgreSQL},
		},
		Framework: codegen.Express,
		Language:  codegen.TypeScript,
	}
}

func TestGenerateCodeFromModel(t *testing.T) {
	fake := &llmtest.Fake{Response: `{"files":[{"path":"src/index.ts","content":"console.log(1)"}],"instructions":"npm start"}`}
	out, err := New(fake).GenerateCode(context.Background(), codeRequest(), llm.Options{})
	require.NoError(t, err)

	require.True(t, out.Success())
	require.Len(t, out.Payload.Files, 1)
	assert.Equal(t, "src/index.ts", out.Payload.Files[0].Description)
	assert.Equal(t, []string{}, out.Payload.Dependencies)
	assert.Contains(t, fake.Requests()[0].Messages[0].Content, "**GENERATED TABLES:** users, posts, categories")
}

func TestGenerateCodeFallsBackToScaffold(t *testing.T) {
	req := codeRequest()
	want, err := codegen.Generate(req)
	require.NoError(t, err)

	out, err := New(&llmtest.Fake{Response: `{"files":[]}`}).GenerateCode(context.Background(), req, llm.Options{})
	require.NoError(t, err)
	assert.True(t, out.Fallback())
	assert.Equal(t, want, out.Payload)
}

func TestGenerateCodeEmptySchema(t *testing.T) {
	fake := &llmtest.Fake{}
	out, err := New(fake).GenerateCode(context.Background(), codegen.Request{Project: domain.Project{Name: "x"}}, llm.Options{})
	require.NoError(t, err)
	assert.True(t, out.Invalid())
	assert.ErrorIs(t, out.Err, codegen.ErrEmptySchema)
	assert.Empty(t, fake.Requests())
}
