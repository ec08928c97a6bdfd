// api/models/sandbox_models.go
package models

import (
	"time"

	"github.com/rhinoback/rhinoback/internal/storage"
)

type SandboxResponse struct {
	ProjectID string              `json:"projectId"`
	CreatedAt time.Time           `json:"createdAt"`
	Tables    []storage.TableInfo `json:"tables"`
}
