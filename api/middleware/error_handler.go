// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors

	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/logger"
	"github.com/rhinoback/rhinoback/internal/storage"
	"github.com/rhinoback/rhinoback/internal/store"
)

var (
	customLog = logger.NewLogger()
)

// ErrInvalidRequest wraps request bodies and query strings that could not be parsed.
var ErrInvalidRequest = errors.New("invalid request")

// StatusFor maps an error to an HTTP status code and a message safe to show to the client.
func StatusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, store.ErrProjectNotFound) ||
		errors.Is(err, storage.ErrProjectNotFound) ||
		errors.Is(err, storage.ErrSandboxNotFound) ||
		errors.Is(err, storage.ErrTableNotFound) ||
		errors.Is(err, storage.ErrRecordNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, storage.ErrConstraintViolation):
		return http.StatusConflict, err.Error()

	case errors.Is(err, advisor.ErrDescriptionRequired) ||
		errors.Is(err, codegen.ErrEmptySchema) ||
		errors.Is(err, codegen.ErrInvalidIdentifier) ||
		errors.Is(err, store.ErrInvalidPayload) ||
		errors.Is(err, llm.ErrNoMessages) ||
		errors.Is(err, storage.ErrColumnNotFound) ||
		errors.Is(err, storage.ErrTypeMismatch) ||
		errors.Is(err, storage.ErrInvalidFilterValue) ||
		errors.Is(err, storage.ErrEmptyRecord) ||
		errors.Is(err, storage.ErrDuplicateColumn) ||
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()

	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			customLog.Debugf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
		}
		return http.StatusBadRequest, "Validation failed. Please check your input."

	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable, "AI provider is not configured."

	case errors.Is(err, llm.ErrUpstream) ||
		errors.Is(err, llm.ErrEmptyResponse):
		return http.StatusBadGateway, err.Error()

	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err
		statusCode, userMessage := StatusFor(err)

		if statusCode >= http.StatusInternalServerError {
			customLog.Errorf("[ErrorHandler] %s %s: %v (%T)", c.Request.Method, c.Request.URL.Path, err, err)
		} else {
			customLog.Infof("[ErrorHandler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "error": userMessage})
		}
	}
}
