// api/handlers/sandbox_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/storage"
	"github.com/rhinoback/rhinoback/internal/store"
)

// SandboxHandler lets clients try a project's generated CRUD endpoints against a scratch
// database built from its schema.
type SandboxHandler struct {
	Store     *store.Store
	Sandboxes *storage.Sandboxes
}

func NewSandboxHandler(st *store.Store, sandboxes *storage.Sandboxes) *SandboxHandler {
	return &SandboxHandler{Store: st, Sandboxes: sandboxes}
}

// sandbox returns the live sandbox of the :id project.
func (h *SandboxHandler) sandbox(c *gin.Context) (*storage.Sandbox, bool) {
	sb, err := h.Sandboxes.Get(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return sb, true
}

func (h *SandboxHandler) respondTables(c *gin.Context, status int, sb *storage.Sandbox) {
	tables, err := sb.ListTables(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(status, models.SandboxResponse{
		ProjectID: sb.ProjectID,
		CreatedAt: sb.CreatedAt,
		Tables:    tables,
	})
}

// Provision handles POST /api/projects/:id/sandbox. Calling it again starts over with empty tables.
func (h *SandboxHandler) Provision(c *gin.Context) {
	project, ok := h.Store.State().FindProject(c.Param("id"))
	if !ok {
		_ = c.Error(store.ErrProjectNotFound)
		return
	}
	if len(project.Schema) == 0 {
		_ = c.Error(codegen.ErrEmptySchema)
		return
	}

	sb, err := h.Sandboxes.Provision(c.Request.Context(), project)
	if err != nil {
		_ = c.Error(err)
		return
	}
	customLog.Printf("Handler: Sandbox provisioned for project %s", project.ID)
	h.respondTables(c, http.StatusCreated, sb)
}

// Describe handles GET /api/projects/:id/sandbox.
func (h *SandboxHandler) Describe(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	h.respondTables(c, http.StatusOK, sb)
}

// Drop handles DELETE /api/projects/:id/sandbox.
func (h *SandboxHandler) Drop(c *gin.Context) {
	if !h.Sandboxes.Remove(c.Param("id")) {
		_ = c.Error(storage.ErrSandboxNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRecords handles GET /api/projects/:id/sandbox/:table_name?col=value&limit=&offset=.
func (h *SandboxHandler) ListRecords(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	records, err := sb.ListRecords(c.Request.Context(), c.Param("table_name"), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateRecord handles POST /api/projects/:id/sandbox/:table_name.
func (h *SandboxHandler) CreateRecord(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	record, err := sb.InsertRecord(c.Request.Context(), c.Param("table_name"), data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetRecord handles GET /api/projects/:id/sandbox/:table_name/:record_id.
func (h *SandboxHandler) GetRecord(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	record, err := sb.GetRecord(c.Request.Context(), c.Param("table_name"), c.Param("record_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateRecord handles PUT /api/projects/:id/sandbox/:table_name/:record_id.
func (h *SandboxHandler) UpdateRecord(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	record, err := sb.UpdateRecord(c.Request.Context(), c.Param("table_name"), c.Param("record_id"), data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteRecord handles DELETE /api/projects/:id/sandbox/:table_name/:record_id.
func (h *SandboxHandler) DeleteRecord(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}
	if err := sb.DeleteRecord(c.Request.Context(), c.Param("table_name"), c.Param("record_id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
