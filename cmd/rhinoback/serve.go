package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rhinoback/rhinoback/api"
	"github.com/rhinoback/rhinoback/config"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.ServerPort = servePort
	}

	deps, closeDB, err := api.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	color.Green("🦏 RhinoBack %s listening on :%s", Version, cfg.ServerPort)
	return api.SetupRouter(deps).Run(":" + cfg.ServerPort)
}
