// api/handlers/project_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/schemagen"
	"github.com/rhinoback/rhinoback/internal/storage"
	"github.com/rhinoback/rhinoback/internal/store"
)

// ProjectHandler exposes the application state and the projects it holds.
type ProjectHandler struct {
	Store *store.Store
	// Sandboxes built from a project's schema are dropped when the schema changes.
	Sandboxes *storage.Sandboxes
	Now       func() time.Time
}

func NewProjectHandler(st *store.Store, sandboxes *storage.Sandboxes) *ProjectHandler {
	return &ProjectHandler{Store: st, Sandboxes: sandboxes, Now: time.Now}
}

func (h *ProjectHandler) dropSandbox(projectID string) {
	if h.Sandboxes != nil && h.Sandboxes.Remove(projectID) {
		customLog.Printf("Handler: Dropped sandbox of project %s", projectID)
	}
}

// actionList encodes actions, keeping the first encoding error.
type actionList struct {
	actions []store.Action
	err     error
}

func (l *actionList) add(t store.ActionType, payload any) {
	if l.err != nil {
		return
	}
	a, err := store.NewAction(t, payload)
	if err != nil {
		l.err = err
		return
	}
	l.actions = append(l.actions, a)
}

// GetState handles GET /api/state.
func (h *ProjectHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.State())
}

// DispatchAction handles POST /api/state/actions with a single action.
func (h *ProjectHandler) DispatchAction(c *gin.Context) {
	var action store.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	st, err := h.Store.Dispatch(c.Request.Context(), action)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DispatchActions handles POST /api/state with a batch applied as one step.
func (h *ProjectHandler) DispatchActions(c *gin.Context) {
	var actions []store.Action
	if err := c.ShouldBindJSON(&actions); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	st, err := h.Store.DispatchAll(c.Request.Context(), actions...)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ListProjects handles GET /api/projects?limit=&offset=&sort=&order=&status=&q=.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	opts, err := core.ParseListQueryOptions(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(bindError(err))
		return
	}
	page, total := store.ListProjects(h.Store.State().Projects, opts)
	c.JSON(http.StatusOK, models.ListProjectsResponse{
		Projects: page,
		Total:    total,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	})
}

// CreateProject handles POST /api/projects. The new project becomes the current one.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	now := h.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
		Schema:      []domain.TableSchema{},
		Endpoints:   []domain.ApiEndpoint{},
	}

	var l actionList
	l.add(store.AddProject, project)
	if l.err != nil {
		_ = c.Error(l.err)
		return
	}
	if _, err := h.Store.DispatchAll(c.Request.Context(), l.actions...); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /api/projects/:id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := h.Store.State().FindProject(c.Param("id"))
	if !ok {
		_ = c.Error(store.ErrProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Store.State().FindProject(id); !ok {
		_ = c.Error(store.ErrProjectNotFound)
		return
	}

	var l actionList
	l.add(store.DeleteProject, id)
	if _, err := h.Store.DispatchAll(c.Request.Context(), l.actions...); err != nil {
		_ = c.Error(err)
		return
	}
	h.dropSandbox(id)
	c.Status(http.StatusNoContent)
}

// Chat handles POST /api/projects/:id/chat: the message is turned into a schema, endpoints
// and a database choice for the project, and both sides of the exchange join the chat history.
func (h *ProjectHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	project, ok := h.Store.State().FindProject(c.Param("id"))
	if !ok {
		_ = c.Error(store.ErrProjectNotFound)
		return
	}

	result := schemagen.Generate(req.Message)
	now := h.Now().UTC()
	userMsg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Type:      domain.MessageUser,
		Content:   req.Message,
		Timestamp: now,
	}
	reply := domain.ChatMessage{
		ID:        uuid.NewString(),
		Type:      domain.MessageAI,
		Content:   result.Message,
		Timestamp: now,
		Metadata:  result.Metadata,
	}

	var l actionList
	l.add(store.SetCurrentProject, project)
	l.add(store.AddChatMessage, userMsg)
	l.add(store.UpdateSchema, result.Schema)
	l.add(store.UpdateEndpoints, result.Endpoints)
	l.add(store.UpdateDatabase, result.Database)
	l.add(store.AddChatMessage, reply)
	if l.err != nil {
		_ = c.Error(l.err)
		return
	}

	st, err := h.Store.DispatchAll(c.Request.Context(), l.actions...)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.dropSandbox(project.ID)

	c.JSON(http.StatusOK, models.ChatResponse{
		UserMessage: userMsg,
		Reply:       reply,
		Project:     *st.CurrentProject,
		Analysis:    result.Analysis,
	})
}
