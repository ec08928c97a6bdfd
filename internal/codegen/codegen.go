// Package codegen renders a starter backend project from a generated schema.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/gosimple/slug"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// Framework is the target web framework of a scaffold.
type Framework string

const (
	Express    Framework = "express"
	FastAPI    Framework = "fastapi"
	Django     Framework = "django"
	SpringBoot Framework = "spring-boot"
)

// Language is the target language of a scaffold.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
)

// ErrEmptySchema is returned for projects without tables.
var ErrEmptySchema = errors.New("project must have at least one table in schema")

// Request describes what to scaffold.
type Request struct {
	Project           domain.Project
	Framework         Framework
	Language          Language
	IncludeAuth       bool
	IncludeTests      bool
	IncludeMigrations bool
}

// File is one generated file.
type File struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// GeneratedCode is a complete scaffold.
type GeneratedCode struct {
	Files        []File   `json:"files"`
	Instructions string   `json:"instructions"`
	Dependencies []string `json:"dependencies"`
}

// Validate reports ErrEmptySchema when the project has no tables.
func Validate(req Request) error {
	if len(req.Project.Schema) == 0 {
		return ErrEmptySchema
	}
	return nil
}

// Generate renders the scaffold for req. Unknown frameworks, Spring Boot included, get Express.
func Generate(req Request) (*GeneratedCode, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var (
		code *GeneratedCode
		err  error
	)
	switch req.Framework {
	case FastAPI:
		code = fastAPIStub(req.Project)
	case Django:
		code = djangoStub(req.Project)
	default:
		code, err = generateExpress(req)
	}
	if err != nil {
		return nil, err
	}

	if req.IncludeMigrations {
		migration, err := GenerateMigration(req.Project.Schema, req.Project.Database.Type)
		if err != nil {
			return nil, err
		}
		code.Files = append(code.Files, File{
			Path:        "migrations/001_init.sql",
			Content:     migration,
			Description: "Initial database migration",
		})
	}
	return code, nil
}

// PackageName turns a project name into a package-safe identifier.
func PackageName(projectName string) string {
	if name := slug.Make(projectName); name != "" {
		return name
	}
	return "rhinoback-app"
}

// RouteName is the lower-cased URL segment and file name of a table.
func RouteName(table domain.TableSchema) string {
	return strings.ToLower(table.Name)
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{"route": RouteName}).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.String(), nil
}

func fastAPIStub(p domain.Project) *GeneratedCode {
	return &GeneratedCode{
		Files: []File{{
			Path:        "main.py",
			Content:     fmt.Sprintf("# FastAPI implementation for %s", p.Name),
			Description: "FastAPI main application",
		}},
		Instructions: "FastAPI code generation coming soon!",
		Dependencies: []string{"fastapi", "uvicorn"},
	}
}

func djangoStub(p domain.Project) *GeneratedCode {
	return &GeneratedCode{
		Files: []File{{
			Path:        "manage.py",
			Content:     fmt.Sprintf("# Django implementation for %s", p.Name),
			Description: "Django main application",
		}},
		Instructions: "Django code generation coming soon!",
		Dependencies: []string{"django"},
	}
}
