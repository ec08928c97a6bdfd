package schemagen

import (
	"fmt"
	"strings"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// ActionSchemaUpdate tags assistant messages that replaced the project schema.
const ActionSchemaUpdate = "schema_update"

// Result is everything one chat turn produces for the current project.
type Result struct {
	Analysis  EntityAnalysis          `json:"analysis"`
	Schema    []domain.TableSchema    `json:"schema"`
	Database  domain.DatabaseConfig   `json:"database"`
	Endpoints []domain.ApiEndpoint    `json:"endpoints"`
	Message   string                  `json:"message"`
	Metadata  *domain.MessageMetadata `json:"metadata"`
}

var engineEmoji = map[domain.DatabaseType]string{
	domain.PostgreSQL:    "🐘",
	domain.MongoDB:       "🍃",
	domain.Redis:         "🚀",
	domain.Pinecone:      "🌲",
	domain.InfluxDB:      "📊",
	domain.Elasticsearch: "🔍",
	domain.MySQL:         "🐬",
	domain.SQLite:        "📁",
}

// Generate runs the full pipeline for a description: analysis, tables, database config,
// endpoints and the assistant reply.
func Generate(input string) Result {
	analysis := AnalyzeEntities(input)
	tables := GenerateTables(analysis)
	endpoints := GenerateEndpoints(tables)

	return Result{
		Analysis:  analysis,
		Schema:    tables,
		Database:  GenerateDatabaseConfig(analysis),
		Endpoints: endpoints,
		Message:   ResponseMessage(analysis),
		Metadata: &domain.MessageMetadata{
			TablesGenerated:  len(tables),
			EndpointsCreated: len(endpoints),
			Action:           ActionSchemaUpdate,
		},
	}
}

// ResponseMessage renders the assistant reply for an analysis.
func ResponseMessage(analysis EntityAnalysis) string {
	emoji, ok := engineEmoji[analysis.SuggestedDatabase]
	if !ok {
		emoji = "💾"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Perfect! I've analyzed your requirements and I'm building something amazing! %s\n\n", emoji)
	fmt.Fprintf(&b, "**Database Choice:** %s\n", strings.ToUpper(string(analysis.SuggestedDatabase)))
	fmt.Fprintf(&b, "**Why?** %s\n\n", analysis.Reasoning)
	fmt.Fprintf(&b, "**Generated Tables:** %s\n", strings.Join(analysis.Entities, ", "))
	fmt.Fprintf(&b, "**Key Features:** %s\n\n", strings.Join(analysis.Features, ", "))
	b.WriteString("I've created a comprehensive schema with proper relationships, indexes, and field validations. Your backend is going to be rock solid! 🏗️")
	return b.String()
}
