package advisor

import (
	"context"
	"sort"
	"strings"
)

const defaultSelectedDatabase = "PostgreSQL"

const databasePrompt = `You are a senior database architect. Analyze the project requirements and recommend the databases that fit it best.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "useCase": {
    "key": "social|ecommerce|blog|tasks|saas|analytics|gaming|etc",
    "label": "Human readable use case name",
    "features": ["key feature 1", "key feature 2", "key feature 3"],
    "complexity": "simple|medium|complex"
  },
  "recommendations": [
    {
      "name": "PostgreSQL|MySQL|MongoDB|Redis|etc",
      "score": 85,
      "reasons": ["specific technical reason 1", "specific reason 2"],
      "bestFor": "what this DB excels at for this use case",
      "pros": ["advantage 1", "advantage 2", "advantage 3"],
      "cons": ["limitation 1", "limitation 2"],
      "whyForUseCase": ["use case specific reason 1", "use case specific reason 2"]
    }
  ],
  "selected": "name of the highest scoring database",
  "success": true
}

**REQUIREMENTS:**
1. Determine the use case from the description
2. Recommend 3-4 databases with realistic scores (0-100) for this use case
3. Order recommendations from best to worst fit
4. Give concrete, use case specific reasons, not generic advice

Return ONLY the JSON object with no additional formatting or text.`

func emptyDatabaseRecommendations() DatabaseRecommendations {
	return DatabaseRecommendations{
		UseCase: UseCase{
			Key:        "generic",
			Label:      "General Application",
			Features:   []string{},
			Complexity: "simple",
		},
		Recommendations: []DatabaseRecommendation{},
		Selected:        defaultSelectedDatabase,
	}
}

var databaseNormalizer = normalizer[DatabaseRecommendations]{
	name:        "database recommendations",
	prompt:      databasePrompt,
	schema:      "database",
	temperature: 0.3,
	maxTokens:   2000,
	empty:       emptyDatabaseRecommendations,
	fallback:    func(Input) DatabaseRecommendations { return DatabaseFallback() },
	decode: func(raw []byte) (DatabaseRecommendations, error) {
		resp, err := decodeJSON[DatabaseRecommendations](raw)
		if err != nil {
			return resp, err
		}

		resp.UseCase.Key = orDefault(resp.UseCase.Key, "generic")
		resp.UseCase.Label = orDefault(resp.UseCase.Label, "General Application")
		resp.UseCase.Features = nonNil(resp.UseCase.Features)
		switch strings.ToLower(resp.UseCase.Complexity) {
		case "simple", "medium", "complex":
			resp.UseCase.Complexity = strings.ToLower(resp.UseCase.Complexity)
		default:
			resp.UseCase.Complexity = "medium"
		}

		recs := nonNil(resp.Recommendations)
		for i := range recs {
			r := &recs[i]
			r.Name = orDefault(r.Name, "Unknown")
			r.Score = clampScore(r.Score)
			r.Reasons = nonNil(r.Reasons)
			r.BestFor = orDefault(r.BestFor, "General purpose workloads")
			r.Pros = nonNil(r.Pros)
			r.Cons = nonNil(r.Cons)
			r.WhyForUseCase = nonNil(r.WhyForUseCase)
		}
		resp.Recommendations = recs
		if strings.TrimSpace(resp.Selected) == "" {
			resp.Selected = topDatabase(recs)
		}
		return resp, nil
	},
}

// DatabaseRecommendations asks which database engines suit the described project.
func (a *Advisor) DatabaseRecommendations(ctx context.Context, in Input) Outcome[DatabaseRecommendations] {
	return run(ctx, a.client, databaseNormalizer, in)
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}

// topDatabase returns the name of the best scored recommendation, or PostgreSQL when there is none.
func topDatabase(recs []DatabaseRecommendation) string {
	if len(recs) == 0 {
		return defaultSelectedDatabase
	}
	best := make([]DatabaseRecommendation, len(recs))
	copy(best, recs)
	sort.SliceStable(best, func(i, j int) bool { return best[i].Score > best[j].Score })
	return best[0].Name
}

func DatabaseFallback() DatabaseRecommendations {
	recs := []DatabaseRecommendation{
		{
			Name:          "PostgreSQL",
			Score:         90,
			Reasons:       []string{"ACID compliance", "Rich relational model with JSON support"},
			BestFor:       "Structured data with relationships",
			Pros:          []string{"Mature and reliable", "Powerful indexing", "Large ecosystem"},
			Cons:          []string{"Vertical scaling limits", "Requires tuning at high write volume"},
			WhyForUseCase: []string{"Handles most application workloads well", "Strong consistency for core data"},
		},
		{
			Name:          "MongoDB",
			Score:         75,
			Reasons:       []string{"Flexible document schema", "Horizontal scaling with sharding"},
			BestFor:       "Rapidly evolving or semi-structured data",
			Pros:          []string{"Schema flexibility", "Easy horizontal scaling", "Developer friendly"},
			Cons:          []string{"Weaker relational guarantees", "Joins are limited"},
			WhyForUseCase: []string{"Good fit when the data model is still changing"},
		},
		{
			Name:          "Redis",
			Score:         65,
			Reasons:       []string{"In-memory speed", "Built-in data structures for caching and queues"},
			BestFor:       "Caching, sessions and real-time features",
			Pros:          []string{"Very low latency", "Pub/sub support", "Simple operations"},
			Cons:          []string{"Memory bound", "Not a primary store for relational data"},
			WhyForUseCase: []string{"Complements a primary database as a cache layer"},
		},
	}
	return DatabaseRecommendations{
		UseCase: UseCase{
			Key:        "generic",
			Label:      "General Application",
			Features:   []string{},
			Complexity: "medium",
		},
		Recommendations: recs,
		Selected:        topDatabase(recs),
	}
}
