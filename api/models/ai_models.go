// api/models/ai_models.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rhinoback/rhinoback/internal/llm"
)

// --- Raw AI Request/Response Structs ---

// GenerateRequest is the body of /api/ai/generate and /api/ai/stream.
// Either Messages or Prompt must be set; Messages wins when both are.
type GenerateRequest struct {
	Prompt        string        `json:"prompt"`
	Messages      []llm.Message `json:"messages" binding:"omitempty,dive"`
	SystemMessage string        `json:"systemMessage"`
	Options       llm.Options   `json:"options"`
}

// GenerateResponse is returned by /api/ai/generate.
type GenerateResponse struct {
	Content string `json:"content"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// --- Recommendation Request Structs ---

// RecommendationRequest is shared by every recommendation endpoint.
type RecommendationRequest struct {
	Description string      `json:"description"`
	Schemas     SchemaNames `json:"schemas"`
	Options     llm.Options `json:"options"`
}

// SchemaNames accepts either table names or table objects carrying a "name".
type SchemaNames []string

func (s *SchemaNames) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("schemas must be an array: %w", err)
	}

	names := make(SchemaNames, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			names = append(names, name)
			continue
		}
		var table struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &table); err != nil {
			return fmt.Errorf("schema entries must be names or objects with a name: %w", err)
		}
		names = append(names, table.Name)
	}
	*s = names
	return nil
}

// ServiceStatus is the body of the GET descriptor of every endpoint.
type ServiceStatus struct {
	Status      string         `json:"status"`
	Service     string         `json:"service"`
	Description string         `json:"description,omitempty"`
	Usage       map[string]any `json:"usage,omitempty"`
	Timestamp   string         `json:"timestamp"`
}
