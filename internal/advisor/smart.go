package advisor

import (
	"context"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

const smartPrompt = `You are a senior software architect. Analyze the project requirements and provide smart, actionable recommendations.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "recommendations": [
    {
      "title": "Specific actionable recommendation title",
      "description": "Detailed implementation advice and why it's beneficial",
      "type": "architecture|performance|security|scalability",
      "priority": "High|Medium|Low",
      "implementationEffort": "Low|Medium|High"
    }
  ],
  "success": true
}

**REQUIREMENTS:**
1. Generate 4-6 recommendations tailored to the specific use case
2. Each recommendation must be actionable and specific
3. Provide clear implementation guidance in description
4. Balance different types: architecture, performance, security, scalability
5. Set realistic priority and effort levels
6. Make recommendations relevant to the project scale and complexity

**RECOMMENDATION TYPES:**
- architecture: Design patterns, service structure, modularity
- performance: Optimization, caching, indexing strategies
- security: Authentication, authorization, data protection
- scalability: Load handling, database scaling, infrastructure

Return ONLY the JSON object with no additional formatting or text.`

var smartNormalizer = normalizer[[]SmartRecommendation]{
	name:        "smart recommendations",
	prompt:      smartPrompt,
	schema:      "smart",
	temperature: 0.4,
	maxTokens:   2000,
	empty:       func() []SmartRecommendation { return []SmartRecommendation{} },
	fallback:    func(Input) []SmartRecommendation { return SmartFallback() },
	decode: func(raw []byte) ([]SmartRecommendation, error) {
		resp, err := decodeJSON[struct {
			Recommendations []SmartRecommendation `json:"recommendations"`
		}](raw)
		if err != nil {
			return nil, err
		}
		recs := nonNil(resp.Recommendations)
		for i := range recs {
			r := &recs[i]
			r.Title = orDefault(r.Title, "General Recommendation")
			r.Description = orDefault(r.Description, "Implementation advice not specified")
			r.Type = orDefault(r.Type, "architecture")
			r.Priority = core.NormalizeLevel(r.Priority, domain.LevelMedium)
			r.ImplementationEffort = core.NormalizeLevel(r.ImplementationEffort, domain.LevelMedium)
		}
		return recs, nil
	},
}

// SmartRecommendations asks for architectural advice for the described project.
func (a *Advisor) SmartRecommendations(ctx context.Context, in Input) Outcome[[]SmartRecommendation] {
	return run(ctx, a.client, smartNormalizer, in)
}

func SmartFallback() []SmartRecommendation {
	return []SmartRecommendation{
		{
			Title:                "Implement Clean Architecture",
			Description:          "Structure your application with clear separation of concerns using clean architecture principles.",
			Type:                 "architecture",
			Priority:             domain.LevelHigh,
			ImplementationEffort: domain.LevelMedium,
		},
		{
			Title:                "Add Database Indexing",
			Description:          "Create indexes on frequently queried columns to improve query performance.",
			Type:                 "performance",
			Priority:             domain.LevelMedium,
			ImplementationEffort: domain.LevelLow,
		},
		{
			Title:                "Implement Authentication",
			Description:          "Add secure user authentication and authorization mechanisms.",
			Type:                 "security",
			Priority:             domain.LevelHigh,
			ImplementationEffort: domain.LevelMedium,
		},
	}
}
