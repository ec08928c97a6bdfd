package schemagen

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rhinoback/rhinoback/internal/domain"
)

var entityFields = map[string][]string{
	"users":      {"username", "email", "password_hash", "first_name", "last_name", "bio", "avatar_url", "verified", "created_at", "updated_at"},
	"posts":      {"title", "content", "excerpt", "featured_image", "status", "published_at", "created_at", "updated_at"},
	"products":   {"name", "description", "price", "sku", "category_id", "stock_quantity", "images", "active", "created_at", "updated_at"},
	"orders":     {"order_number", "total_amount", "status", "shipping_address", "billing_address", "created_at", "updated_at"},
	"categories": {"name", "description", "slug", "parent_id", "active", "created_at"},
	"comments":   {"content", "author_email", "author_name", "approved", "created_at"},
	"messages":   {"content", "message_type", "read_at", "created_at"},
	"events":     {"event_type", "data", "user_agent", "ip_address", "timestamp"},
	"reviews":    {"rating", "title", "content", "verified_purchase", "created_at"},
}

var defaultEntityFields = []string{"name", "description", "created_at", "updated_at"}

var entityColors = map[string]string{
	"users":      "#10b981",
	"posts":      "#3b82f6",
	"products":   "#f59e0b",
	"orders":     "#8b5cf6",
	"categories": "#06b6d4",
	"comments":   "#84cc16",
	"messages":   "#ec4899",
	"events":     "#6366f1",
	"reviews":    "#f97316",
}

// DefaultColor is used for entities without a palette entry.
const DefaultColor = "#6b7280"

var estimatedRows = map[string]int{
	"users":      10000,
	"posts":      50000,
	"products":   5000,
	"orders":     25000,
	"categories": 100,
	"comments":   100000,
	"messages":   500000,
	"events":     1000000,
	"reviews":    15000,
}

// DefaultEstimatedRows is the row estimate for unknown entities.
const DefaultEstimatedRows = 1000

// randFloat returns a value in [0, 1). Tests replace it to pin table positions.
var randFloat = rand.Float64

// FieldNames returns the field list used for an entity, without the leading id.
func FieldNames(entityName string) []string {
	if fields, ok := entityFields[entityName]; ok {
		return append([]string(nil), fields...)
	}
	return append([]string(nil), defaultEntityFields...)
}

// GenerateTableSchema builds a full table for entityName. The id primary key is always the
// first field and <table>_pkey always the first index.
func GenerateTableSchema(entityName string, analysis EntityAnalysis) domain.TableSchema {
	fields := []domain.FieldSchema{GenerateFieldSchema(entityName, "id")}
	for _, name := range FieldNames(entityName) {
		if name == "id" {
			continue
		}
		fields = append(fields, GenerateFieldSchema(entityName, name))
	}

	relationships := tableRelationships(entityName, analysis.Relationships)
	markForeignKeys(fields, relationships)
	indexes := tableIndexes(entityName, fields)

	return domain.TableSchema{
		ID:            fmt.Sprintf("table_%s_%s", entityName, newID()),
		Name:          entityName,
		Description:   capitalize(entityName) + " table",
		Fields:        fields,
		Relationships: relationships,
		Indexes:       indexes,
		Position:      &domain.Position{X: randFloat()*400 + 100, Y: randFloat()*400 + 100},
		Color:         colorFor(entityName),
		EstimatedRows: rowsFor(entityName),
	}
}

// GenerateTables builds one table per entity of the analysis, in entity order.
func GenerateTables(analysis EntityAnalysis) []domain.TableSchema {
	tables := make([]domain.TableSchema, 0, len(analysis.Entities))
	for _, entity := range analysis.Entities {
		tables = append(tables, GenerateTableSchema(entity, analysis))
	}
	return tables
}

// tableRelationships keeps the edges touching entityName, seen from its side. An edge the
// entity receives is reported with the inverse cardinality.
func tableRelationships(entityName string, specs []RelationshipSpec) []domain.Relationship {
	relationships := []domain.Relationship{}
	for _, rel := range specs {
		switch entityName {
		case rel.From:
			relationships = append(relationships, domain.Relationship{
				Type:        rel.Type,
				TargetTable: rel.To,
				SourceField: Singularize(rel.To) + "_id",
				TargetField: "id",
			})
			if rel.To != entityName {
				continue
			}
			// self reference: also record the inbound side below
			fallthrough
		case rel.To:
			relationships = append(relationships, domain.Relationship{
				Type:        inverse(rel.Type),
				TargetTable: rel.From,
				SourceField: "id",
				TargetField: Singularize(entityName) + "_id",
			})
		}
	}
	return relationships
}

func inverse(t domain.RelationshipType) domain.RelationshipType {
	switch t {
	case domain.ManyToOne:
		return domain.OneToMany
	case domain.OneToMany:
		return domain.ManyToOne
	default:
		return t
	}
}

func markForeignKeys(fields []domain.FieldSchema, relationships []domain.Relationship) {
	for _, rel := range relationships {
		if rel.SourceField == "id" {
			continue
		}
		for i := range fields {
			if fields[i].Name == rel.SourceField {
				fields[i].IsForeignKey = true
				fields[i].HasIndex = true
			}
		}
	}
}

func tableIndexes(entityName string, fields []domain.FieldSchema) []domain.Index {
	indexes := []domain.Index{
		{Name: entityName + "_pkey", Fields: []string{"id"}, IsUnique: true},
	}

	addIndex := func(suffix, match string, unique bool) {
		for i := range fields {
			if strings.Contains(fields[i].Name, match) {
				fields[i].HasIndex = true
				indexes = append(indexes, domain.Index{
					Name:     fmt.Sprintf("%s_%s_idx", entityName, suffix),
					Fields:   []string{fields[i].Name},
					IsUnique: unique,
				})
				return
			}
		}
	}
	addIndex("created_at", "created_at", false)
	addIndex("status", "status", false)
	addIndex("email", "email", true)

	return indexes
}

func colorFor(entityName string) string {
	if c, ok := entityColors[entityName]; ok {
		return c
	}
	return DefaultColor
}

func rowsFor(entityName string) int {
	if n, ok := estimatedRows[entityName]; ok {
		return n
	}
	return DefaultEstimatedRows
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
