// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rhinoback/rhinoback/api"
	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting RhinoBack server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// 2. Model client, state store and its database
	deps, closeDB, err := api.Bootstrap(context.Background(), cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	defer closeDB()

	// 3. Setup Router
	router := api.SetupRouter(deps)

	// 4. Start Server
	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}
