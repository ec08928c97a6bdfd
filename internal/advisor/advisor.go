// Package advisor asks the model for recommendations about a described backend and turns its
// JSON answer into typed records. Every failure after input validation degrades to a fixed
// fallback payload instead of an error response.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidResponse     = errors.New("invalid response")
)

const defaultTopP = 0.9

// Input is what every recommendation domain receives.
type Input struct {
	Description string
	// Schemas are table names; they only enrich the prompt.
	Schemas []string
	Options llm.Options
}

// Outcome is the result of one normalizer call. Err is nil on success; otherwise Payload is either
// the empty payload (invalid input) or the fallback payload (any later failure).
type Outcome[T any] struct {
	Payload T
	Err     error
}

// Success reports whether the payload came from the model.
func (o Outcome[T]) Success() bool { return o.Err == nil }

// Invalid reports whether the request was rejected before calling the model.
func (o Outcome[T]) Invalid() bool {
	return errors.Is(o.Err, ErrDescriptionRequired) || errors.Is(o.Err, codegen.ErrEmptySchema)
}

// Fallback reports whether the payload is the canned fallback set.
func (o Outcome[T]) Fallback() bool { return o.Err != nil && !o.Invalid() }

// ErrorMessage returns the error text, or "" on success.
func (o Outcome[T]) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Advisor runs the recommendation normalizers against one model client.
type Advisor struct {
	client llm.Client
}

func New(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// normalizer describes one recommendation domain.
type normalizer[T any] struct {
	name        string // used in logs and the user message
	prompt      string
	schema      string
	temperature float64
	maxTokens   int
	empty       func() T
	fallback    func(in Input) T
	decode      func(raw []byte) (T, error)
}

func run[T any](ctx context.Context, client llm.Client, n normalizer[T], in Input) Outcome[T] {
	if strings.TrimSpace(in.Description) == "" {
		return Outcome[T]{Payload: n.empty(), Err: ErrDescriptionRequired}
	}

	payload, err := generate(ctx, client, n, in)
	if err != nil {
		customLog.Warnf("%s: falling back to canned results: %v", n.name, err)
		return Outcome[T]{Payload: n.fallback(in), Err: err}
	}
	return Outcome[T]{Payload: payload}
}

func generate[T any](ctx context.Context, client llm.Client, n normalizer[T], in Input) (T, error) {
	var zero T

	opts := in.Options.WithDefaults(llm.Options{
		Temperature: llm.Float(n.temperature),
		MaxTokens:   n.maxTokens,
		TopP:        llm.Float(defaultTopP),
	})
	text, err := client.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: BuildPrompt(n.prompt, n.name, in.Description, in.Schemas)},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Provide %s for: %s", n.name, in.Description)},
		},
		Options: opts,
	})
	if err != nil {
		return zero, err
	}

	raw := []byte(StripCodeFences(text))
	if err := validateShape(n.schema, raw); err != nil {
		return zero, err
	}
	return n.decode(raw)
}

// BuildPrompt appends the project description and table names to a template.
func BuildPrompt(template, subject, description string, schemas []string) string {
	return fmt.Sprintf("%s\n\n**PROJECT DESCRIPTION:** \"%s\"\n**GENERATED TABLES:** %s\n\nProvide %s tailored to this specific project.",
		template, description, strings.Join(schemas, ", "), subject)
}

// StripCodeFences removes a surrounding ``` or ```json fence and whitespace.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func decodeJSON[R any](raw []byte) (R, error) {
	var r R
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return r, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
