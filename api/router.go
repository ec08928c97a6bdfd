// api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rhinoback/rhinoback/api/handlers"
	"github.com/rhinoback/rhinoback/api/middleware"
	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/storage"
	"github.com/rhinoback/rhinoback/internal/store"
)

// Dependencies are the long-lived services the handlers share.
type Dependencies struct {
	Config *config.Config
	Client llm.Client
	Store  *store.Store
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := core.RegisterValidations(v); err != nil {
			customLog.Fatalf("Failed to register request validations: %v", err)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(deps.Config.CORSOrigins)))

	if deps.Config.RateLimitPerMinute > 0 {
		ratelimiter := middleware.NewRateLimiter(deps.Config.RateLimitPerMinute)
		router.Use(middleware.RateLimitMiddleware(ratelimiter))
	}
	router.Use(middleware.ErrorHandler())

	adv := advisor.New(deps.Client)
	aiHandler := handlers.NewAIHandler(deps.Client)
	advisorHandler := handlers.NewAdvisorHandler(adv)
	codeHandler := handlers.NewCodeHandler(adv)
	sandboxes := storage.NewSandboxes(deps.Config.SandboxMax, deps.Config.SandboxTTL)
	projectHandler := handlers.NewProjectHandler(deps.Store, sandboxes)
	sandboxHandler := handlers.NewSandboxHandler(deps.Store, sandboxes)

	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "Hello World") })

	apiRoutes := router.Group("/api")
	{
		ai := apiRoutes.Group("/ai")
		ai.GET("/generate", handlers.Describe("AI Generation API", "", nil))
		ai.POST("/generate", aiHandler.Generate)
		ai.GET("/stream", handlers.Describe("AI Streaming API", "", nil))
		ai.POST("/stream", aiHandler.Stream)

		apiRoutes.GET("/database-recommendations", handlers.Describe(
			"Database Recommendations API",
			"Generate database recommendations from project descriptions",
			handlers.RecommendationUsage("POST /api/database-recommendations", "0.3", "2000")))
		apiRoutes.POST("/database-recommendations", advisorHandler.DatabaseRecommendations)

		apiRoutes.GET("/scaling-insights", handlers.Describe(
			"Scaling Insights API",
			"Generate scaling insights and performance metrics from project descriptions",
			handlers.RecommendationUsage("POST /api/scaling-insights", "0.3", "1500")))
		apiRoutes.POST("/scaling-insights", advisorHandler.ScalingInsights)

		apiRoutes.GET("/security-recommendations", handlers.Describe(
			"Security Recommendations API",
			"Generate security recommendations from project descriptions",
			handlers.RecommendationUsage("POST /api/security-recommendations", "0.2", "2000")))
		apiRoutes.POST("/security-recommendations", advisorHandler.SecurityRecommendations)

		apiRoutes.GET("/optimization-suggestions", handlers.Describe(
			"Optimization Suggestions API",
			"Generate optimization suggestions from project descriptions",
			handlers.RecommendationUsage("POST /api/optimization-suggestions", "0.3", "2000")))
		apiRoutes.POST("/optimization-suggestions", advisorHandler.OptimizationSuggestions)

		apiRoutes.GET("/smart-recommendations", handlers.Describe(
			"Smart Recommendations API",
			"Generate architectural recommendations from project descriptions",
			handlers.RecommendationUsage("POST /api/smart-recommendations", "0.4", "2000")))
		apiRoutes.POST("/smart-recommendations", advisorHandler.SmartRecommendations)

		apiRoutes.GET("/backend-analysis", handlers.Describe(
			"Backend Analysis API",
			"Run every recommendation at once and merge the results",
			handlers.RecommendationUsage("POST /api/backend-analysis", "per recommendation", "per recommendation")))
		apiRoutes.POST("/backend-analysis", advisorHandler.BackendAnalysis)

		apiRoutes.GET("/generate-code", handlers.Describe(
			"Code Generation API",
			"Generate a starter backend from a project schema",
			map[string]any{
				"endpoint": "POST /api/generate-code",
				"body": map[string]string{
					"project":           "Project with at least one table in schema",
					"framework":         "express | fastapi | django | spring-boot",
					"language":          "typescript | javascript | python | java",
					"includeAuth":       "Optional, adds JWT dependencies",
					"includeTests":      "Optional, adds test dependencies",
					"includeMigrations": "Optional, adds migrations/001_init.sql",
					"useAI":             "Optional, asks the model first and falls back to the scaffold",
				},
			}))
		apiRoutes.POST("/generate-code", codeHandler.GenerateCode)

		apiRoutes.GET("/schema/generate", handlers.Describe(
			"Schema Generation API",
			"Turn a description into tables, endpoints and a database choice",
			map[string]any{"endpoint": "POST /api/schema/generate", "body": map[string]string{"input": "Project description"}}))
		apiRoutes.POST("/schema/generate", codeHandler.GenerateSchema)

		apiRoutes.GET("/state", projectHandler.GetState)
		apiRoutes.POST("/state", projectHandler.DispatchActions)
		apiRoutes.POST("/state/actions", projectHandler.DispatchAction)

		apiRoutes.GET("/projects", projectHandler.ListProjects)
		apiRoutes.POST("/projects", projectHandler.CreateProject)
		apiRoutes.GET("/projects/:id", projectHandler.GetProject)
		apiRoutes.DELETE("/projects/:id", projectHandler.DeleteProject)
		apiRoutes.POST("/projects/:id/chat", projectHandler.Chat)

		sandbox := apiRoutes.Group("/projects/:id/sandbox")
		sandbox.POST("", sandboxHandler.Provision)
		sandbox.GET("", sandboxHandler.Describe)
		sandbox.DELETE("", sandboxHandler.Drop)
		sandbox.GET("/:table_name", sandboxHandler.ListRecords)
		sandbox.POST("/:table_name", sandboxHandler.CreateRecord)
		sandbox.GET("/:table_name/:record_id", sandboxHandler.GetRecord)
		sandbox.PUT("/:table_name/:record_id", sandboxHandler.UpdateRecord)
		sandbox.DELETE("/:table_name/:record_id", sandboxHandler.DeleteRecord)
	}

	return router
}
