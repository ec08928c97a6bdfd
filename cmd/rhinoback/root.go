package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rhinoback/rhinoback/internal/logger"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "rhinoback",
	Short: "Turn a plain-language app description into a backend",
	Long: `
RhinoBack analyses a description of an application, derives its tables,
REST endpoints and database choice, and scaffolds a starter backend.

The same engine is available as an HTTP API (serve), from the terminal
(analyze, scaffold) and to MCP clients over stdio (mcp).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != serveCmd.Name() {
			logger.RedirectAll(os.Stderr)
		}
	},
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
