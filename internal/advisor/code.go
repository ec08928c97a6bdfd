package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/llm"
)

const codePrompt = `You are an expert backend developer. Generate a production-ready starter backend for the project below.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "files": [
    {
      "path": "relative/path/to/file",
      "content": "full file content",
      "description": "what this file is for"
    }
  ],
  "instructions": "setup and run instructions in markdown",
  "dependencies": ["package@version"]
}

**REQUIREMENTS:**
1. Include one CRUD route module per table
2. Include the application entry point, package manifest and an .env example
3. Use the requested framework and language
4. Keep the code runnable without manual edits

Return ONLY the JSON object with no additional formatting or text.`

// GenerateCode asks the model for a scaffold and falls back to the deterministic one.
// The returned error is only set when the deterministic scaffold itself cannot be rendered.
func (a *Advisor) GenerateCode(ctx context.Context, req codegen.Request, opts llm.Options) (Outcome[*codegen.GeneratedCode], error) {
	if err := codegen.Validate(req); err != nil {
		return Outcome[*codegen.GeneratedCode]{Payload: emptyGeneratedCode(), Err: err}, nil
	}

	scaffold, err := codegen.Generate(req)
	if err != nil {
		return Outcome[*codegen.GeneratedCode]{}, errors.Wrap(err, "render scaffold")
	}

	n := normalizer[*codegen.GeneratedCode]{
		name:        "backend code",
		prompt:      codePrompt,
		schema:      "code",
		temperature: 0.2,
		maxTokens:   4000,
		empty:       emptyGeneratedCode,
		fallback:    func(Input) *codegen.GeneratedCode { return scaffold },
		decode:      decodeGeneratedCode,
	}
	return run(ctx, a.client, n, Input{
		Description: describeCodeRequest(req),
		Schemas:     domain.TableNames(req.Project.Schema),
		Options:     opts,
	}), nil
}

func emptyGeneratedCode() *codegen.GeneratedCode {
	return &codegen.GeneratedCode{Files: []codegen.File{}, Dependencies: []string{}}
}

func decodeGeneratedCode(raw []byte) (*codegen.GeneratedCode, error) {
	code, err := decodeJSON[codegen.GeneratedCode](raw)
	if err != nil {
		return nil, err
	}
	for i := range code.Files {
		code.Files[i].Description = orDefault(code.Files[i].Description, code.Files[i].Path)
	}
	code.Dependencies = nonNil(code.Dependencies)
	return &code, nil
}

func describeCodeRequest(req codegen.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s framework in %s", req.Project.Name, req.Framework, req.Language)
	if req.Project.Database.Type != "" {
		fmt.Fprintf(&b, " backed by %s", req.Project.Database.Type)
	}
	if req.IncludeAuth {
		b.WriteString(", with JWT authentication")
	}
	if req.IncludeTests {
		b.WriteString(", with tests")
	}
	if d := strings.TrimSpace(req.Project.Description); d != "" {
		fmt.Fprintf(&b, ". %s", d)
	}
	return b.String()
}
