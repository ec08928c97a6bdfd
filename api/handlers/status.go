package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rhinoback/rhinoback/api/middleware"
	"github.com/rhinoback/rhinoback/api/models"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// RecommendationUsage documents the shared body of the recommendation endpoints.
func RecommendationUsage(endpoint, temperature, maxTokens string) map[string]any {
	return map[string]any{
		"endpoint": endpoint,
		"body": map[string]any{
			"description": "Project description",
			"schemas":     "Optional array of database schemas",
			"options": map[string]string{
				"temperature": fmt.Sprintf("AI creativity level (0-1, default: %s)", temperature),
				"maxTokens":   fmt.Sprintf("Maximum response length (default: %s)", maxTokens),
			},
		},
	}
}

// Describe returns a GET handler reporting that the service is up and how to call it.
func Describe(service, description string, usage map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ServiceStatus{
			Status:      "OK",
			Service:     service,
			Description: description,
			Usage:       usage,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// bindError wraps a binding failure so the error middleware answers 400.
func bindError(err error) error {
	return fmt.Errorf("%w: %v", middleware.ErrInvalidRequest, err)
}
