// api/handlers/code_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

// CodeHandler renders backend scaffolds and schemas.
type CodeHandler struct {
	Advisor *advisor.Advisor
}

func NewCodeHandler(a *advisor.Advisor) *CodeHandler {
	return &CodeHandler{Advisor: a}
}

// GenerateCode handles POST /api/generate-code.
func (h *CodeHandler) GenerateCode(c *gin.Context) {
	var req models.GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.GenerateCodeResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	codeReq := req.CodegenRequest()

	if !req.UseAI {
		code, err := codegen.Generate(codeReq)
		if errors.Is(err, codegen.ErrEmptySchema) {
			c.JSON(http.StatusBadRequest, models.GenerateCodeResponse{Error: err.Error()})
			return
		}
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.GenerateCodeResponse{Success: true, Data: code, Source: "scaffold"})
		return
	}

	out, err := h.Advisor.GenerateCode(c.Request.Context(), codeReq, req.Options)
	if err != nil {
		_ = c.Error(err)
		return
	}
	switch {
	case out.Invalid():
		c.JSON(http.StatusBadRequest, models.GenerateCodeResponse{Error: out.ErrorMessage()})
	case out.Fallback():
		c.JSON(http.StatusOK, models.GenerateCodeResponse{Data: out.Payload, Source: "scaffold", Error: out.ErrorMessage()})
	default:
		c.JSON(http.StatusOK, models.GenerateCodeResponse{Success: true, Data: out.Payload, Source: "ai"})
	}
}

// GenerateSchema handles POST /api/schema/generate: the rule-based chat flow without a project.
func (h *CodeHandler) GenerateSchema(c *gin.Context) {
	var req models.GenerateSchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	c.JSON(http.StatusOK, schemagen.Generate(req.Input))
}
