// api/handlers/advisor_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/advisor"
)

// AdvisorHandler serves the recommendation endpoints.
type AdvisorHandler struct {
	Advisor *advisor.Advisor
}

func NewAdvisorHandler(a *advisor.Advisor) *AdvisorHandler {
	return &AdvisorHandler{Advisor: a}
}

// input binds the shared request body. A body that cannot be parsed is treated like a missing
// description so the caller still gets the typed empty payload.
func input(c *gin.Context) advisor.Input {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Infof("Recommendation request on %s: invalid body: %v", c.FullPath(), err)
		return advisor.Input{}
	}
	return advisor.Input{
		Description: req.Description,
		Schemas:     req.Schemas,
		Options:     req.Options,
	}
}

// respond writes the envelope: 400 for invalid input, 200 for success and fallback alike.
func respond[T any](c *gin.Context, out advisor.Outcome[T], body gin.H) {
	status := http.StatusOK
	if out.Invalid() {
		status = http.StatusBadRequest
	}
	body["success"] = out.Success()
	if msg := out.ErrorMessage(); msg != "" {
		body["error"] = msg
	}
	c.JSON(status, body)
}

func (h *AdvisorHandler) DatabaseRecommendations(c *gin.Context) {
	out := h.Advisor.DatabaseRecommendations(c.Request.Context(), input(c))
	respond(c, out, gin.H{
		"useCase":         out.Payload.UseCase,
		"recommendations": out.Payload.Recommendations,
		"selected":        out.Payload.Selected,
	})
}

func (h *AdvisorHandler) ScalingInsights(c *gin.Context) {
	out := h.Advisor.ScalingInsights(c.Request.Context(), input(c))
	respond(c, out, gin.H{
		"insights": out.Payload.Insights,
		"metrics":  out.Payload.Metrics,
	})
}

func (h *AdvisorHandler) SecurityRecommendations(c *gin.Context) {
	out := h.Advisor.SecurityRecommendations(c.Request.Context(), input(c))
	respond(c, out, gin.H{"recommendations": out.Payload})
}

func (h *AdvisorHandler) OptimizationSuggestions(c *gin.Context) {
	out := h.Advisor.OptimizationSuggestions(c.Request.Context(), input(c))
	respond(c, out, gin.H{"suggestions": out.Payload})
}

func (h *AdvisorHandler) SmartRecommendations(c *gin.Context) {
	out := h.Advisor.SmartRecommendations(c.Request.Context(), input(c))
	respond(c, out, gin.H{"recommendations": out.Payload})
}

// BackendAnalysis runs every recommendation domain at once.
func (h *AdvisorHandler) BackendAnalysis(c *gin.Context) {
	out := h.Advisor.Analyze(c.Request.Context(), input(c))
	a := out.Payload
	respond(c, out, gin.H{
		"useCase":                 a.UseCase,
		"databaseRecommendations": a.DatabaseRecommendations,
		"selectedDatabase":        a.SelectedDatabase,
		"performanceMetrics":      a.PerformanceMetrics,
		"scalingInsights":         a.ScalingInsights,
		"smartRecommendations":    a.SmartRecommendations,
		"optimizationSuggestions": a.OptimizationSuggestions,
		"securityRecommendations": a.SecurityRecommendations,
	})
}
