// Package schemagen turns a free-text backend description into a schema, a database choice and
// a REST endpoint list using fixed keyword archetypes. Nothing here calls out to a model.
package schemagen

import (
	"strings"

	"github.com/rhinoback/rhinoback/internal/domain"
)

// RelationshipSpec is an edge between two entity names of an analysis.
type RelationshipSpec struct {
	From string                  `json:"from"`
	To   string                  `json:"to"`
	Type domain.RelationshipType `json:"type"`
}

// EntityAnalysis is the archetype chosen for a description.
type EntityAnalysis struct {
	Archetype         string              `json:"archetype"`
	Entities          []string            `json:"entities"`
	Relationships     []RelationshipSpec  `json:"relationships"`
	SuggestedDatabase domain.DatabaseType `json:"suggestedDatabase"`
	Reasoning         string              `json:"reasoning"`
	Features          []string            `json:"features"`
}

// archetype pairs a keyword predicate with the analysis it produces.
type archetype struct {
	name     string
	keywords []string
	build    func() EntityAnalysis
}

func (a archetype) matches(lowerInput string) bool {
	for _, kw := range a.keywords {
		if strings.Contains(lowerInput, kw) {
			return true
		}
	}
	return false
}

// Evaluated in order; the first match wins.
var archetypes = []archetype{
	{name: "social", keywords: []string{"social", "post", "follow", "like"}, build: socialAnalysis},
	{name: "ecommerce", keywords: []string{"ecommerce", "shop", "product", "order", "cart"}, build: ecommerceAnalysis},
	{name: "blog", keywords: []string{"blog", "cms", "article", "content"}, build: blogAnalysis},
	{name: "chat", keywords: []string{"chat", "message", "real-time", "notification"}, build: chatAnalysis},
	{name: "analytics", keywords: []string{"analytics", "tracking", "metric", "time-series"}, build: analyticsAnalysis},
	{name: "ai", keywords: []string{"ai", "recommendation", "ml", "vector", "search"}, build: aiAnalysis},
}

// AnalyzeEntities maps a description to the first matching archetype.
// Every input, including the empty string, resolves to an analysis.
func AnalyzeEntities(input string) EntityAnalysis {
	lowerInput := strings.ToLower(input)
	for _, a := range archetypes {
		if a.matches(lowerInput) {
			return a.build()
		}
	}
	return defaultAnalysis()
}

// Archetypes returns the archetype names in evaluation order, followed by "default".
func Archetypes() []string {
	names := make([]string, 0, len(archetypes)+1)
	for _, a := range archetypes {
		names = append(names, a.name)
	}
	return append(names, "default")
}

func socialAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "social",
		Entities:  []string{"users", "posts", "comments", "likes", "follows", "media"},
		Relationships: []RelationshipSpec{
			{From: "posts", To: "users", Type: domain.ManyToOne},
			{From: "comments", To: "posts", Type: domain.ManyToOne},
			{From: "comments", To: "users", Type: domain.ManyToOne},
			{From: "likes", To: "posts", Type: domain.ManyToOne},
			{From: "likes", To: "users", Type: domain.ManyToOne},
			{From: "follows", To: "users", Type: domain.ManyToMany},
			{From: "media", To: "posts", Type: domain.OneToMany},
		},
		SuggestedDatabase: domain.PostgreSQL,
		Reasoning:         "PostgreSQL is ideal for social media apps with complex relationships, ACID compliance, and excellent performance for read-heavy workloads.",
		Features:          []string{"Complex relationships", "ACID transactions", "Full-text search", "JSON support"},
	}
}

func ecommerceAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "ecommerce",
		Entities:  []string{"users", "products", "categories", "orders", "order_items", "reviews", "inventory", "payments"},
		Relationships: []RelationshipSpec{
			{From: "products", To: "categories", Type: domain.ManyToOne},
			{From: "orders", To: "users", Type: domain.ManyToOne},
			{From: "order_items", To: "orders", Type: domain.ManyToOne},
			{From: "order_items", To: "products", Type: domain.ManyToOne},
			{From: "reviews", To: "products", Type: domain.ManyToOne},
			{From: "reviews", To: "users", Type: domain.ManyToOne},
			{From: "inventory", To: "products", Type: domain.OneToOne},
			{From: "payments", To: "orders", Type: domain.OneToOne},
		},
		SuggestedDatabase: domain.PostgreSQL,
		Reasoning:         "PostgreSQL provides strong consistency for financial transactions, complex inventory management, and excellent support for e-commerce analytics.",
		Features:          []string{"ACID transactions", "Complex queries", "JSON support", "Reliable for payments"},
	}
}

func blogAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "blog",
		Entities:  []string{"users", "posts", "categories", "tags", "comments", "media", "pages"},
		Relationships: []RelationshipSpec{
			{From: "posts", To: "users", Type: domain.ManyToOne},
			{From: "posts", To: "categories", Type: domain.ManyToOne},
			{From: "posts", To: "tags", Type: domain.ManyToMany},
			{From: "comments", To: "posts", Type: domain.ManyToOne},
			{From: "comments", To: "users", Type: domain.ManyToOne},
			{From: "media", To: "posts", Type: domain.ManyToOne},
			{From: "pages", To: "users", Type: domain.ManyToOne},
		},
		SuggestedDatabase: domain.MongoDB,
		Reasoning:         "MongoDB excels for content management with flexible document structure, easy content versioning, and excellent full-text search capabilities.",
		Features:          []string{"Flexible schema", "Document storage", "Full-text search", "Easy scaling"},
	}
}

func chatAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "chat",
		Entities:  []string{"users", "conversations", "messages", "participants", "notifications"},
		Relationships: []RelationshipSpec{
			{From: "conversations", To: "users", Type: domain.ManyToMany},
			{From: "messages", To: "conversations", Type: domain.ManyToOne},
			{From: "messages", To: "users", Type: domain.ManyToOne},
			{From: "participants", To: "conversations", Type: domain.ManyToOne},
			{From: "participants", To: "users", Type: domain.ManyToOne},
			{From: "notifications", To: "users", Type: domain.ManyToOne},
		},
		SuggestedDatabase: domain.Redis,
		Reasoning:         "Redis is perfect for real-time messaging with its pub/sub capabilities, lightning-fast performance, and excellent session management.",
		Features:          []string{"Pub/Sub messaging", "Ultra-fast reads/writes", "Session storage", "Real-time capabilities"},
	}
}

func analyticsAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "analytics",
		Entities:  []string{"events", "users", "sessions", "metrics", "dashboards"},
		Relationships: []RelationshipSpec{
			{From: "events", To: "users", Type: domain.ManyToOne},
			{From: "events", To: "sessions", Type: domain.ManyToOne},
			{From: "metrics", To: "events", Type: domain.ManyToOne},
			{From: "dashboards", To: "users", Type: domain.ManyToOne},
		},
		SuggestedDatabase: domain.InfluxDB,
		Reasoning:         "InfluxDB is purpose-built for time-series data with excellent compression, fast aggregations, and built-in analytics functions.",
		Features:          []string{"Time-series optimization", "Fast aggregations", "Data compression", "Analytics functions"},
	}
}

func aiAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "ai",
		Entities:  []string{"users", "items", "embeddings", "recommendations", "search_index"},
		Relationships: []RelationshipSpec{
			{From: "embeddings", To: "items", Type: domain.OneToOne},
			{From: "recommendations", To: "users", Type: domain.ManyToOne},
			{From: "recommendations", To: "items", Type: domain.ManyToOne},
			{From: "search_index", To: "items", Type: domain.OneToOne},
		},
		SuggestedDatabase: domain.Pinecone,
		Reasoning:         "Pinecone is optimized for vector similarity search and AI-powered recommendations with excellent performance and scalability.",
		Features:          []string{"Vector similarity search", "AI/ML optimization", "Real-time recommendations", "Scalable indexing"},
	}
}

func defaultAnalysis() EntityAnalysis {
	return EntityAnalysis{
		Archetype: "default",
		Entities:  []string{"users", "items"},
		Relationships: []RelationshipSpec{
			{From: "items", To: "users", Type: domain.ManyToOne},
		},
		SuggestedDatabase: domain.PostgreSQL,
		Reasoning:         "PostgreSQL is a reliable, full-featured database perfect for most applications with excellent performance and extensive feature set.",
		Features:          []string{"ACID compliance", "Complex queries", "JSON support", "Extensible"},
	}
}
