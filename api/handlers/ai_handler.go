// api/handlers/ai_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhinoback/rhinoback/api/middleware"
	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/llm"
)

const noPromptMessage = "either prompt or messages must be provided"

// AIHandler forwards raw prompts to the model.
type AIHandler struct {
	Client llm.Client
}

func NewAIHandler(client llm.Client) *AIHandler {
	return &AIHandler{Client: client}
}

// conversation builds the messages: explicit messages win, otherwise system + prompt.
func conversation(req models.GenerateRequest) []llm.Message {
	if len(req.Messages) > 0 {
		return req.Messages
	}
	if req.Prompt == "" {
		return nil
	}
	return llm.ChatMessages(req.Prompt, req.SystemMessage)
}

// Generate handles POST /api/ai/generate.
func (h *AIHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Infof("AI generate: invalid body: %v", err)
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	msgs := conversation(req)
	if len(msgs) == 0 {
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: noPromptMessage})
		return
	}

	text, err := h.Client.Generate(c.Request.Context(), llm.Request{Messages: msgs, Options: req.Options})
	if err != nil {
		status, message := middleware.StatusFor(err)
		customLog.Warnf("AI generate failed: %v", err)
		c.JSON(status, models.GenerateResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{Content: text, Success: true})
}

// Stream handles POST /api/ai/stream. The body is the plain text of the answer, flushed
// chunk by chunk. Errors before the first chunk are reported as JSON.
func (h *AIHandler) Stream(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	msgs := conversation(req)
	if len(msgs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": noPromptMessage})
		return
	}

	started := false
	err := h.Client.Stream(c.Request.Context(), llm.Request{Messages: msgs, Options: req.Options}, func(chunk string) error {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Content-Type-Options", "nosniff")
			c.Status(http.StatusOK)
			started = true
		}
		if _, err := fmt.Fprint(c.Writer, chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err == nil {
		if !started {
			c.Status(http.StatusOK)
		}
		return
	}

	if started {
		// Headers are gone; the client sees a truncated body.
		customLog.Warnf("AI stream interrupted: %v", err)
		return
	}
	status, message := middleware.StatusFor(err)
	customLog.Warnf("AI stream failed: %v", err)
	c.JSON(status, gin.H{"error": message})
}
