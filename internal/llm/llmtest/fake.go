// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/rhinoback/rhinoback/internal/llm"
)

// Fake answers every request with Response (or Err) and records the requests it saw.
// Chunks, when set, is what Stream emits; otherwise Stream emits Response as one chunk.
type Fake struct {
	Response string
	Chunks   []string
	Err      error
	// Respond, when set, overrides Response and Err.
	Respond func(req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

var _ llm.Client = (*Fake)(nil)

func (f *Fake) record(req llm.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

// Requests returns a copy of the recorded requests.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

func (f *Fake) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.record(req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Respond != nil {
		return f.Respond(req)
	}
	return f.Response, f.Err
}

func (f *Fake) Stream(ctx context.Context, req llm.Request, onChunk func(string) error) error {
	f.record(req)
	if f.Err != nil {
		return f.Err
	}
	chunks := f.Chunks
	if len(chunks) == 0 {
		chunks = []string{f.Response}
	}
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}
