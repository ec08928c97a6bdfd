package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/llm/llmtest"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

// connect starts the server on an in-memory transport and returns a client session.
func connect(t *testing.T, tools *Tools) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	_, err := NewServer(tools).Connect(ctx, serverTransport, nil)
	require.NoError(t, err, "server connect")

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client connect")
	t.Cleanup(func() { session.Close() })
	return session
}

// callTool calls a tool and returns its text content and error flag.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool(%s)", name)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text, result.IsError
}

func TestListTools(t *testing.T) {
	session := connect(t, &Tools{})
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"analyze_entities", "generate_schema", "generate_code"}, names)

	session = connect(t, &Tools{Advisor: advisor.New(&llmtest.Fake{})})
	res, err = session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, res.Tools, 4)
}

func TestAnalyzeEntitiesTool(t *testing.T) {
	session := connect(t, &Tools{})

	text, isErr := callTool(t, session, "analyze_entities", map[string]any{"input": "an online shop"})
	require.False(t, isErr, text)
	var analysis schemagen.EntityAnalysis
	require.NoError(t, json.Unmarshal([]byte(text), &analysis))
	assert.Equal(t, "ecommerce", analysis.Archetype)

	text, isErr = callTool(t, session, "analyze_entities", map[string]any{"input": "  "})
	assert.True(t, isErr)
	assert.Equal(t, "Input is required", text)
}

func TestGenerateSchemaTool(t *testing.T) {
	session := connect(t, &Tools{})

	text, isErr := callTool(t, session, "generate_schema", map[string]any{"input": "a chat app"})
	require.False(t, isErr, text)
	var result schemagen.Result
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.Equal(t, "chat", result.Analysis.Archetype)
	assert.NotEmpty(t, result.Schema)
	assert.Len(t, result.Endpoints, 5*len(result.Schema))
}

func TestGenerateCodeTool(t *testing.T) {
	session := connect(t, &Tools{})

	text, isErr := callTool(t, session, "generate_code", map[string]any{
		"input":             "an online shop",
		"name":              "My Shop",
		"includeMigrations": true,
	})
	require.False(t, isErr, text)
	var code codegen.GeneratedCode
	require.NoError(t, json.Unmarshal([]byte(text), &code))

	paths := map[string]bool{}
	for _, f := range code.Files {
		paths[f.Path] = true
	}
	assert.True(t, paths["package.json"])
	assert.True(t, paths["tsconfig.json"], "typescript is the default language")
	assert.True(t, paths["migrations/001_init.sql"])
}

func TestScaffoldRequestDefaults(t *testing.T) {
	req := ScaffoldRequest(GenerateCodeInput{Input: " a blog "})
	assert.Equal(t, "a blog", req.Project.Name)
	assert.Equal(t, codegen.Express, req.Framework)
	assert.Equal(t, codegen.TypeScript, req.Language)
	assert.NotEmpty(t, req.Project.Schema)

	req = ScaffoldRequest(GenerateCodeInput{Input: "a blog", Name: "Notes", Framework: "fastapi", Language: "python"})
	assert.Equal(t, "Notes", req.Project.Name)
	assert.Equal(t, codegen.FastAPI, req.Framework)
	assert.Equal(t, codegen.Python, req.Language)
}

func TestAnalyzeBackendTool(t *testing.T) {
	fake := &llmtest.Fake{Err: errors.New("offline")}
	session := connect(t, &Tools{Advisor: advisor.New(fake)})

	text, isErr := callTool(t, session, "analyze_backend", map[string]any{"input": "a social network"})
	require.False(t, isErr, text)

	var out struct {
		Analysis advisor.BackendAnalysis `json:"analysis"`
		Success  bool                    `json:"success"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.False(t, out.Success)
	assert.Len(t, out.Analysis.SecurityRecommendations, 4, "fallbacks fill the failed parts")

	text, isErr = callTool(t, session, "analyze_backend", map[string]any{"input": ""})
	assert.True(t, isErr)
	assert.Equal(t, "description is required", text)
}
