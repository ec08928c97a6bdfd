// Package mcptools exposes the schema generator, the scaffolder and the advisor as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

const (
	serverName    = "rhinoback"
	serverVersion = "0.1.0"
)

// Tools holds what the tool handlers need. Advisor may be nil, in which case
// analyze_backend is not registered.
type Tools struct {
	Advisor *advisor.Advisor
}

// --- Input types ---

type DescriptionInput struct {
	Input string `json:"input" jsonschema:"Plain-language description of the application"`
}

type GenerateCodeInput struct {
	Input             string `json:"input" jsonschema:"Plain-language description of the application"`
	Name              string `json:"name,omitempty" jsonschema:"Project name, used for the package name"`
	Framework         string `json:"framework,omitempty" jsonschema:"express, fastapi, django or spring-boot (default express)"`
	Language          string `json:"language,omitempty" jsonschema:"typescript, javascript, python or java (default typescript)"`
	IncludeAuth       bool   `json:"includeAuth,omitempty" jsonschema:"Add JWT dependencies"`
	IncludeTests      bool   `json:"includeTests,omitempty" jsonschema:"Add test dependencies"`
	IncludeMigrations bool   `json:"includeMigrations,omitempty" jsonschema:"Add an initial SQL migration"`
}

// NewServer creates an MCP server with every tool registered.
func NewServer(t *Tools) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_entities",
		Description: "Detect the application archetype, entities and relationships in a description",
	}, t.AnalyzeEntities)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate_schema",
		Description: "Generate tables, CRUD endpoints and a database choice from a description",
	}, t.GenerateSchema)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate_code",
		Description: "Generate a starter backend project for a description",
	}, t.GenerateCode)

	if t.Advisor != nil {
		mcp.AddTool(srv, &mcp.Tool{
			Name:        "analyze_backend",
			Description: "Ask the AI advisor for database, scaling, security and optimization advice",
		}, t.AnalyzeBackend)
	}

	return srv
}

// --- Handlers ---

func (t *Tools) AnalyzeEntities(_ context.Context, _ *mcp.CallToolRequest, in DescriptionInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Input) == "" {
		return toolError("Input is required"), nil, nil
	}
	return toolJSON(schemagen.AnalyzeEntities(in.Input))
}

func (t *Tools) GenerateSchema(_ context.Context, _ *mcp.CallToolRequest, in DescriptionInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Input) == "" {
		return toolError("Input is required"), nil, nil
	}
	return toolJSON(schemagen.Generate(in.Input))
}

func (t *Tools) GenerateCode(_ context.Context, _ *mcp.CallToolRequest, in GenerateCodeInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Input) == "" {
		return toolError("Input is required"), nil, nil
	}

	code, err := codegen.Generate(ScaffoldRequest(in))
	if err != nil {
		return toolError("Failed to generate code: %v", err), nil, nil
	}
	return toolJSON(code)
}

func (t *Tools) AnalyzeBackend(ctx context.Context, _ *mcp.CallToolRequest, in DescriptionInput) (*mcp.CallToolResult, any, error) {
	result := schemagen.Generate(in.Input)
	out := t.Advisor.Analyze(ctx, advisor.Input{
		Description: in.Input,
		Schemas:     domain.TableNames(result.Schema),
	})
	if out.Invalid() {
		return toolError("%s", out.ErrorMessage()), nil, nil
	}
	return toolJSON(map[string]any{
		"analysis": out.Payload,
		"success":  out.Success(),
		"error":    out.ErrorMessage(),
	})
}

// ScaffoldRequest turns a description into a codegen request for a fresh project.
func ScaffoldRequest(in GenerateCodeInput) codegen.Request {
	result := schemagen.Generate(in.Input)

	name := in.Name
	if name == "" {
		name = strings.TrimSpace(in.Input)
	}
	framework := codegen.Framework(in.Framework)
	if framework == "" {
		framework = codegen.Express
	}
	language := codegen.Language(in.Language)
	if language == "" {
		language = codegen.TypeScript
	}

	return codegen.Request{
		Project: domain.Project{
			Name:        name,
			Description: in.Input,
			Status:      domain.ProjectDraft,
			Schema:      result.Schema,
			Endpoints:   result.Endpoints,
			Database:    result.Database,
		},
		Framework:         framework,
		Language:          language,
		IncludeAuth:       in.IncludeAuth,
		IncludeTests:      in.IncludeTests,
		IncludeMigrations: in.IncludeMigrations,
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
