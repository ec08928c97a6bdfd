// Package llm talks to an OpenAI-compatible chat completion API (Groq by default).
package llm

import (
	"context"
	"errors"
)

// Role is the author of a chat message sent to the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// Options tune a single completion. Zero values mean "use the client default"; Temperature and
// TopP are pointers because 0 is a meaningful value for both.
type Options struct {
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty"`
	TopP        *float64 `json:"topP,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// Request is a completion request.
type Request struct {
	Messages []Message
	Options  Options
}

// Client generates text from a conversation. Implementations must be safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Stream calls onChunk for every text delta in arrival order. Returning an error from onChunk
	// stops the stream and is returned as is.
	Stream(ctx context.Context, req Request, onChunk func(chunk string) error) error
}

var (
	ErrNotConfigured = errors.New("llm: API key is not configured")
	ErrUpstream      = errors.New("llm: upstream request failed")
	ErrEmptyResponse = errors.New("llm: no content in response")
	ErrNoMessages    = errors.New("llm: at least one message is required")
)

// Float returns a pointer to f, for filling Options.
func Float(f float64) *float64 { return &f }

// WithDefaults returns o with every unset field taken from def.
func (o Options) WithDefaults(def Options) Options {
	if o.Model == "" {
		o.Model = def.Model
	}
	if o.Temperature == nil {
		o.Temperature = def.Temperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = def.MaxTokens
	}
	if o.TopP == nil {
		o.TopP = def.TopP
	}
	if len(o.Stop) == 0 {
		o.Stop = def.Stop
	}
	return o
}

// Complete sends a single user prompt.
func Complete(ctx context.Context, c Client, prompt string, opts Options) (string, error) {
	return c.Generate(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Options:  opts,
	})
}

// ChatMessages builds the system + user message pair; an empty system message is omitted.
func ChatMessages(userMessage, systemMessage string) []Message {
	messages := make([]Message, 0, 2)
	if systemMessage != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemMessage})
	}
	return append(messages, Message{Role: RoleUser, Content: userMessage})
}

// Chat sends a user message with an optional system message.
func Chat(ctx context.Context, c Client, userMessage, systemMessage string, opts Options) (string, error) {
	return c.Generate(ctx, Request{Messages: ChatMessages(userMessage, systemMessage), Options: opts})
}
