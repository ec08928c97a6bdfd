package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/logger"
	"github.com/rhinoback/rhinoback/internal/mcptools"
)

var (
	customLog = logger.NewLogger()
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generator as MCP tools over stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tools := &mcptools.Tools{}
	if cfg.AIAPIKey != "" {
		tools.Advisor = advisor.New(llm.NewGroqClient(cfg))
	} else {
		customLog.Warn("GROQ_API_KEY is not set: analyze_backend is disabled")
	}

	customLog.Println("RhinoBack MCP server starting (stdio)")
	return mcptools.NewServer(tools).Run(cmd.Context(), &mcp.StdioTransport{})
}
