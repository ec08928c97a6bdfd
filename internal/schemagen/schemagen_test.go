package schemagen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinoback/rhinoback/internal/domain"
)

func TestAnalyzeEntities(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		archetype string
		database  domain.DatabaseType
	}{
		{"social", "Build a SOCIAL network", "social", domain.PostgreSQL},
		{"social wins over ecommerce", "social shop", "social", domain.PostgreSQL},
		{"ecommerce keyword", "an ecommerce backend", "ecommerce", domain.PostgreSQL},
		{"shop", "my little shop", "ecommerce", domain.PostgreSQL},
		{"cart", "shopping cart service", "ecommerce", domain.PostgreSQL},
		{"blog", "I need a blog CMS", "blog", domain.MongoDB},
		{"chat", "real-time chat", "chat", domain.Redis},
		{"analytics", "usage analytics", "analytics", domain.InfluxDB},
		{"ai search", "vector search engine", "ai", domain.Pinecone},
		{"default", "xyz", "default", domain.PostgreSQL},
		{"empty", "", "default", domain.PostgreSQL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AnalyzeEntities(tc.input)
			assert.Equal(t, tc.archetype, got.Archetype)
			assert.Equal(t, tc.database, got.SuggestedDatabase)
			assert.NotEmpty(t, got.Reasoning)
			assert.NotEmpty(t, got.Features)
		})
	}
}

func TestAnalyzeEntitiesSocialAndEcommerceEntities(t *testing.T) {
	social := AnalyzeEntities("social app")
	assert.Equal(t, []string{"users", "posts", "comments", "likes", "follows", "media"}, social.Entities)

	for _, input := range []string{"ecommerce", "shop", "product catalog", "order tracking", "cart"} {
		got := AnalyzeEntities(input)
		assert.Equal(t, []string{"users", "products", "categories", "orders", "order_items", "reviews", "inventory", "payments"}, got.Entities, input)
		assert.Equal(t, domain.PostgreSQL, got.SuggestedDatabase, input)
	}
}

func TestAnalyzeEntitiesFallback(t *testing.T) {
	got := AnalyzeEntities("xyz")
	assert.Equal(t, []string{"users", "items"}, got.Entities)
	assert.Equal(t, domain.PostgreSQL, got.SuggestedDatabase)
	require.Len(t, got.Relationships, 1)
	assert.Equal(t, RelationshipSpec{From: "items", To: "users", Type: domain.ManyToOne}, got.Relationships[0])
}

func TestAnalyzeEntitiesReturnsFreshSlices(t *testing.T) {
	first := AnalyzeEntities("xyz")
	first.Entities[0] = "mutated"
	assert.Equal(t, "users", AnalyzeEntities("xyz").Entities[0])
}

func TestGenerateFieldSchema(t *testing.T) {
	testCases := []struct {
		field    string
		wantType domain.FieldType
		required bool
		unique   bool
		rule     domain.RuleType
	}{
		{"id", domain.FieldUUID, true, true, ""},
		{"email_address", domain.FieldEmail, true, true, domain.RulePattern},
		{"password_hash", domain.FieldPassword, true, false, domain.RuleMinLength},
		{"created_at", domain.FieldDateTime, true, false, ""},
		{"stock_quantity", domain.FieldNumber, true, false, domain.RuleMin},
		{"price", domain.FieldDecimal, true, false, domain.RuleMin},
		{"total_amount", domain.FieldDecimal, true, false, domain.RuleMin},
		{"bio", domain.FieldTextarea, false, false, ""},
		{"verified", domain.FieldBoolean, false, false, ""},
		{"avatar_url", domain.FieldText, false, false, domain.RulePattern},
		{"status", domain.FieldEnum, true, false, ""},
		{"username", domain.FieldText, true, false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			got := GenerateFieldSchema("users", tc.field)
			assert.Equal(t, tc.field, got.Name)
			assert.Equal(t, tc.wantType, got.Type)
			assert.Equal(t, tc.required, got.IsRequired)
			assert.Equal(t, tc.unique, got.IsUnique)
			assert.True(t, strings.HasPrefix(got.ID, "users_"+tc.field+"_"))
			if tc.rule == "" {
				assert.Empty(t, got.Validation)
				return
			}
			require.Len(t, got.Validation, 1)
			assert.Equal(t, tc.rule, got.Validation[0].Type)
		})
	}
}

func TestGenerateFieldSchemaDetails(t *testing.T) {
	price := GenerateFieldSchema("products", "price")
	assert.Equal(t, "Price in cents", price.Description)
	assert.Equal(t, float64(0), price.Validation[0].Value)

	status := GenerateFieldSchema("posts", "status")
	assert.Equal(t, []string{"active", "inactive", "pending", "deleted"}, status.EnumOptions)
	assert.Equal(t, "active", status.DefaultValue)

	flag := GenerateFieldSchema("products", "active")
	assert.Equal(t, false, flag.DefaultValue)

	other := GenerateFieldSchema("items", "sku")
	assert.Equal(t, "sku field", other.Description)
}

func TestValidationPatterns(t *testing.T) {
	email := regexp.MustCompile(EmailPattern)
	assert.True(t, email.MatchString("a@b.co"))
	assert.False(t, email.MatchString("a@b"))
	assert.False(t, email.MatchString("x a@b.co"))

	url := regexp.MustCompile(URLPattern)
	assert.True(t, url.MatchString("https://rhinoback.dev/x"))
	assert.False(t, url.MatchString("see https://rhinoback.dev"))
	assert.False(t, url.MatchString("ftp://host"))
}

func TestGenerateTableSchemaUsers(t *testing.T) {
	analysis := AnalyzeEntities("social")
	table := GenerateTableSchema("users", analysis)

	require.NotEmpty(t, table.Fields)
	first := table.Fields[0]
	assert.Equal(t, "id", first.Name)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, domain.FieldUUID, first.Type)

	require.NotEmpty(t, table.Indexes)
	assert.Equal(t, domain.Index{Name: "users_pkey", Fields: []string{"id"}, IsUnique: true}, table.Indexes[0])

	assert.Len(t, table.Fields, 11)
	assert.Equal(t, "Users table", table.Description)
	assert.Equal(t, "#10b981", table.Color)
	assert.Equal(t, 10000, table.EstimatedRows)

	names := []string{}
	for _, idx := range table.Indexes {
		names = append(names, idx.Name)
	}
	assert.Equal(t, []string{"users_pkey", "users_created_at_idx", "users_email_idx"}, names)
}

func TestGenerateTableSchemaPrimaryKeyForAllArchetypes(t *testing.T) {
	for _, input := range []string{"social", "shop", "blog", "chat", "analytics", "vector", "xyz"} {
		analysis := AnalyzeEntities(input)
		for _, table := range GenerateTables(analysis) {
			primaries := 0
			for _, f := range table.Fields {
				if f.IsPrimary {
					primaries++
				}
			}
			assert.Equal(t, 1, primaries, "%s/%s", input, table.Name)
			assert.Equal(t, "id", table.Fields[0].Name)
			assert.Equal(t, table.Name+"_pkey", table.Indexes[0].Name)
		}
	}
}

func TestGenerateTableSchemaRelationships(t *testing.T) {
	analysis := AnalyzeEntities("shop")

	products := GenerateTableSchema("products", analysis)
	var toCategories *domain.Relationship
	for i := range products.Relationships {
		if products.Relationships[i].TargetTable == "categories" {
			toCategories = &products.Relationships[i]
		}
	}
	require.NotNil(t, toCategories)
	assert.Equal(t, domain.ManyToOne, toCategories.Type)
	assert.Equal(t, "category_id", toCategories.SourceField)
	assert.Equal(t, "id", toCategories.TargetField)

	for _, f := range products.Fields {
		if f.Name == "category_id" {
			assert.True(t, f.IsForeignKey)
			assert.True(t, f.HasIndex)
		}
	}

	categories := GenerateTableSchema("categories", analysis)
	require.Len(t, categories.Relationships, 1)
	assert.Equal(t, domain.Relationship{
		Type:        domain.OneToMany,
		TargetTable: "products",
		SourceField: "id",
		TargetField: "category_id",
	}, categories.Relationships[0])
}

func TestGenerateTableSchemaEmailIndexUsesFieldName(t *testing.T) {
	comments := GenerateTableSchema("comments", AnalyzeEntities("blog"))
	last := comments.Indexes[len(comments.Indexes)-1]
	assert.Equal(t, "comments_email_idx", last.Name)
	assert.Equal(t, []string{"author_email"}, last.Fields)
	assert.True(t, last.IsUnique)
}

func TestGenerateTableSchemaDefaultsAndPosition(t *testing.T) {
	orig := randFloat
	t.Cleanup(func() { randFloat = orig })
	randFloat = func() float64 { return 0.5 }

	table := GenerateTableSchema("widgets", AnalyzeEntities("xyz"))
	assert.Equal(t, DefaultColor, table.Color)
	assert.Equal(t, DefaultEstimatedRows, table.EstimatedRows)
	require.NotNil(t, table.Position)
	assert.Equal(t, domain.Position{X: 300, Y: 300}, *table.Position)
	assert.Len(t, table.Fields, 5)
}

func TestGenerateTableSchemaPositionRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := GenerateTableSchema("users", AnalyzeEntities("")).Position
		assert.GreaterOrEqual(t, p.X, 100.0)
		assert.Less(t, p.X, 500.0)
		assert.GreaterOrEqual(t, p.Y, 100.0)
		assert.Less(t, p.Y, 500.0)
	}
}

func TestGenerateDatabaseConfigPorts(t *testing.T) {
	want := map[domain.DatabaseType]int{
		domain.PostgreSQL:    5432,
		domain.MySQL:         3306,
		domain.SQLite:        0,
		domain.MongoDB:       27017,
		domain.Redis:         6379,
		domain.Pinecone:      443,
		domain.InfluxDB:      8086,
		domain.Elasticsearch: 9200,
	}
	for _, dbType := range domain.AllDatabaseTypes {
		t.Run(string(dbType), func(t *testing.T) {
			cfg := GenerateDatabaseConfig(EntityAnalysis{SuggestedDatabase: dbType, Reasoning: "r", Features: []string{"f"}})
			assert.Equal(t, want[dbType], cfg.Port)
			assert.Equal(t, dbType, cfg.Type)
			assert.Equal(t, "app_database", cfg.Database)
			assert.Equal(t, "r", cfg.Reasoning)
		})
	}
	assert.Equal(t, 5432, DefaultPort("cassandra"))
}

func TestSingularize(t *testing.T) {
	testCases := map[string]string{
		"users":        "user",
		"categories":   "category",
		"order_items":  "order_item",
		"media":        "media",
		"inventory":    "inventory",
		"search_index": "search_index",
		"address":      "address",
		"s":            "s",
	}
	for in, want := range testCases {
		assert.Equal(t, want, Singularize(in), in)
	}
}

func TestGenerateEndpoints(t *testing.T) {
	tables := GenerateTables(AnalyzeEntities("xyz"))
	endpoints := GenerateEndpoints(tables)
	require.Len(t, endpoints, 10)

	assert.Equal(t, "GET", endpoints[0].Method)
	assert.Equal(t, "/api/users", endpoints[0].Path)
	assert.False(t, endpoints[0].Auth)
	assert.Equal(t, "/api/users/:id", endpoints[4].Path)
	assert.Equal(t, "DELETE", endpoints[4].Method)
	assert.True(t, endpoints[4].Auth)
	assert.NotContains(t, endpoints[2].Parameters, "id")
	assert.Equal(t, "items", endpoints[5].Group)
}

func TestGenerate(t *testing.T) {
	res := Generate("I want a blog")
	assert.Equal(t, "blog", res.Analysis.Archetype)
	assert.Len(t, res.Schema, 7)
	assert.Equal(t, domain.MongoDB, res.Database.Type)
	assert.Len(t, res.Endpoints, 35)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, 7, res.Metadata.TablesGenerated)
	assert.Equal(t, 35, res.Metadata.EndpointsCreated)
	assert.Equal(t, ActionSchemaUpdate, res.Metadata.Action)
	assert.Contains(t, res.Message, "🍃")
	assert.Contains(t, res.Message, "**Database Choice:** MONGODB")
	assert.Contains(t, res.Message, "**Generated Tables:** users, posts, categories, tags, comments, media, pages")
}

func TestResponseMessageUnknownEngine(t *testing.T) {
	msg := ResponseMessage(EntityAnalysis{SuggestedDatabase: "cassandra"})
	assert.Contains(t, msg, "💾")
}
