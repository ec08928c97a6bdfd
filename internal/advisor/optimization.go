package advisor

import (
	"context"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

const optimizationPrompt = `You are a performance optimization expert. Analyze the project requirements and provide specific optimization suggestions.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "suggestions": [
    {
      "type": "indexing|caching|monitoring|backup|performance|infrastructure|security|maintenance",
      "title": "Specific optimization technique",
      "description": "How to implement and why it helps performance",
      "impact": "High|Medium|Low",
      "complexity": "Low|Medium|High"
    }
  ],
  "success": true
}

**REQUIREMENTS:**
1. Generate 5-7 optimization suggestions relevant to the project
2. Each suggestion must be specific and actionable
3. Provide clear implementation guidance
4. Explain the performance impact and why it helps
5. Set realistic impact and complexity levels
6. Cover different optimization areas: database, caching, infrastructure, etc.

**OPTIMIZATION TYPES:**
- indexing: Database indexes, query optimization
- caching: Redis, CDN, application-level caching
- monitoring: Performance tracking, alerting, metrics
- backup: Data protection, disaster recovery
- performance: Query optimization, connection pooling
- infrastructure: Load balancing, auto-scaling
- security: Efficient authentication, rate limiting
- maintenance: Automated cleanup, log rotation

Return ONLY the JSON object with no additional formatting or text.`

var optimizationNormalizer = normalizer[[]OptimizationSuggestion]{
	name:        "optimization suggestions",
	prompt:      optimizationPrompt,
	schema:      "optimization",
	temperature: 0.3,
	maxTokens:   2000,
	empty:       func() []OptimizationSuggestion { return []OptimizationSuggestion{} },
	fallback:    func(Input) []OptimizationSuggestion { return OptimizationFallback() },
	decode: func(raw []byte) ([]OptimizationSuggestion, error) {
		resp, err := decodeJSON[struct {
			Suggestions []OptimizationSuggestion `json:"suggestions"`
		}](raw)
		if err != nil {
			return nil, err
		}
		suggestions := nonNil(resp.Suggestions)
		for i := range suggestions {
			s := &suggestions[i]
			s.Type = orDefault(s.Type, "performance")
			s.Title = orDefault(s.Title, "General Optimization")
			s.Description = orDefault(s.Description, "Implementation details not specified")
			s.Impact = core.NormalizeLevel(s.Impact, domain.LevelMedium)
			s.Complexity = core.NormalizeLevel(s.Complexity, domain.LevelMedium)
		}
		return suggestions, nil
	},
}

// OptimizationSuggestions asks for performance suggestions for the described project.
func (a *Advisor) OptimizationSuggestions(ctx context.Context, in Input) Outcome[[]OptimizationSuggestion] {
	return run(ctx, a.client, optimizationNormalizer, in)
}

func OptimizationFallback() []OptimizationSuggestion {
	return []OptimizationSuggestion{
		{
			Type:        "indexing",
			Title:       "Create Database Indexes",
			Description: "Add indexes on frequently queried columns to improve query performance significantly.",
			Impact:      domain.LevelHigh,
			Complexity:  domain.LevelLow,
		},
		{
			Type:        "caching",
			Title:       "Implement Redis Caching",
			Description: "Use Redis to cache frequently accessed data and reduce database load.",
			Impact:      domain.LevelHigh,
			Complexity:  domain.LevelMedium,
		},
		{
			Type:        "monitoring",
			Title:       "Set Up Performance Monitoring",
			Description: "Implement comprehensive monitoring to track application performance and identify bottlenecks.",
			Impact:      domain.LevelMedium,
			Complexity:  domain.LevelMedium,
		},
		{
			Type:        "backup",
			Title:       "Automated Database Backups",
			Description: "Set up automated, regular database backups to ensure data protection.",
			Impact:      domain.LevelHigh,
			Complexity:  domain.LevelLow,
		},
	}
}
