// api/models/project_models.go
package models

import (
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

// --- Code Generation ---

type GenerateCodeRequest struct {
	Project           domain.Project    `json:"project"`
	Framework         codegen.Framework `json:"framework"`
	Language          codegen.Language  `json:"language"`
	IncludeAuth       bool              `json:"includeAuth"`
	IncludeTests      bool              `json:"includeTests"`
	IncludeMigrations bool              `json:"includeMigrations"`
	UseAI             bool              `json:"useAI"`
	Options           llm.Options       `json:"options"`
}

func (r GenerateCodeRequest) CodegenRequest() codegen.Request {
	return codegen.Request{
		Project:           r.Project,
		Framework:         r.Framework,
		Language:          r.Language,
		IncludeAuth:       r.IncludeAuth,
		IncludeTests:      r.IncludeTests,
		IncludeMigrations: r.IncludeMigrations,
	}
}

type GenerateCodeResponse struct {
	Success bool                   `json:"success"`
	Data    *codegen.GeneratedCode `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty"` // "ai" or "scaffold"
	Error   string                 `json:"error,omitempty"`
}

// --- Schema Generation ---

type GenerateSchemaRequest struct {
	Input string `json:"input" binding:"required"`
}

// --- Projects & Chat ---

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
}

type ListProjectsResponse struct {
	Projects []domain.Project `json:"projects"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	UserMessage domain.ChatMessage       `json:"userMessage"`
	Reply       domain.ChatMessage       `json:"reply"`
	Project     domain.Project           `json:"project"`
	Analysis    schemagen.EntityAnalysis `json:"analysis"`
}
