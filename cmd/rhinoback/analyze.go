package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/domain"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/schemagen"
)

var (
	analyzeFormat string
	analyzeAdvise bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Show the tables, endpoints and database derived from a description",
	Example: `  rhinoback analyze "an online shop with reviews"
  rhinoback analyze --format yaml "a chat app"
  rhinoback analyze --advise "a social network"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "output format: table, json or yaml")
	analyzeCmd.Flags().BoolVar(&analyzeAdvise, "advise", false, "also ask the AI advisor (needs GROQ_API_KEY)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	result := schemagen.Generate(input)
	r := newReport(result)

	if analyzeAdvise {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		out := advisor.New(llm.NewGroqClient(cfg)).Analyze(cmd.Context(), advisor.Input{
			Description: input,
			Schemas:     domain.TableNames(result.Schema),
		})
		r.Advice = &out.Payload
		r.AdviceError = out.ErrorMessage()
	}

	return writeReport(cmd.OutOrStdout(), r, analyzeFormat)
}
