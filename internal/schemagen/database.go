package schemagen

import "github.com/rhinoback/rhinoback/internal/domain"

// DefaultDatabaseName is the database name put into every generated config.
const DefaultDatabaseName = "app_database"

var defaultPorts = map[domain.DatabaseType]int{
	domain.PostgreSQL:    5432,
	domain.MySQL:         3306,
	domain.SQLite:        0,
	domain.MongoDB:       27017,
	domain.Redis:         6379,
	domain.Pinecone:      443,
	domain.InfluxDB:      8086,
	domain.Elasticsearch: 9200,
}

// DefaultPort returns the conventional port of an engine. SQLite has none and reports 0;
// unknown engines get the PostgreSQL port.
func DefaultPort(dbType domain.DatabaseType) int {
	if port, ok := defaultPorts[dbType]; ok {
		return port
	}
	return defaultPorts[domain.PostgreSQL]
}

// GenerateDatabaseConfig copies the engine choice of an analysis into a DatabaseConfig.
func GenerateDatabaseConfig(analysis EntityAnalysis) domain.DatabaseConfig {
	return domain.DatabaseConfig{
		Type:      analysis.SuggestedDatabase,
		Port:      DefaultPort(analysis.SuggestedDatabase),
		Database:  DefaultDatabaseName,
		Reasoning: analysis.Reasoning,
		Features:  append([]string(nil), analysis.Features...),
	}
}
