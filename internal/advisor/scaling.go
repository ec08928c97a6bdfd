package advisor

import (
	"context"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

const scalingPrompt = `You are a backend scalability expert. Analyze the project requirements and estimate how the backend will need to scale.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "insights": {
    "expectedLoad": "Low|Medium|High",
    "readWriteRatio": "80:20",
    "cachingStrategy": "Redis + CDN|Application-level|etc",
    "indexingPriority": [
      {
        "table": "table_name",
        "priority": "High|Medium|Low",
        "reason": "why this table needs priority indexing"
      }
    ]
  },
  "metrics": [
    {
      "label": "Expected QPS",
      "value": "1000-5000",
      "description": "Queries per second estimate"
    }
  ],
  "success": true
}

**REQUIREMENTS:**
1. Estimate the expected load from the scale described
2. Give a realistic read/write ratio for the usage pattern
3. Recommend a caching strategy that matches the load
4. Prioritize indexing for the generated tables
5. Provide 3-4 performance metrics with concrete estimates

Return ONLY the JSON object with no additional formatting or text.`

func emptyScalingInsights() ScalingInsights {
	return ScalingInsights{
		Insights: ScalingInsight{
			ExpectedLoad:     domain.LevelMedium,
			ReadWriteRatio:   "70:30",
			CachingStrategy:  "Application-level",
			IndexingPriority: []IndexingPriority{},
		},
		Metrics: []PerformanceMetric{},
	}
}

var scalingNormalizer = normalizer[ScalingInsights]{
	name:        "scaling insights",
	prompt:      scalingPrompt,
	schema:      "scaling",
	temperature: 0.3,
	maxTokens:   1500,
	empty:       emptyScalingInsights,
	fallback:    func(in Input) ScalingInsights { return ScalingFallback(in.Schemas) },
	decode: func(raw []byte) (ScalingInsights, error) {
		resp, err := decodeJSON[ScalingInsights](raw)
		if err != nil {
			return resp, err
		}

		ins := &resp.Insights
		ins.ExpectedLoad = core.NormalizeLevel(ins.ExpectedLoad, domain.LevelMedium)
		ins.ReadWriteRatio = orDefault(ins.ReadWriteRatio, "70:30")
		ins.CachingStrategy = orDefault(ins.CachingStrategy, "Application-level")
		ins.IndexingPriority = nonNil(ins.IndexingPriority)
		for i := range ins.IndexingPriority {
			p := &ins.IndexingPriority[i]
			p.Table = orDefault(p.Table, "unknown")
			p.Priority = core.NormalizeLevel(p.Priority, domain.LevelMedium)
			p.Reason = orDefault(p.Reason, "Frequently queried table")
		}

		resp.Metrics = nonNil(resp.Metrics)
		for i := range resp.Metrics {
			m := &resp.Metrics[i]
			m.Label = orDefault(m.Label, "Metric")
			m.Value = orDefault(m.Value, "N/A")
			m.Description = orDefault(m.Description, "No description provided")
		}
		return resp, nil
	},
}

// ScalingInsights asks for load, caching and indexing estimates for the described project.
func (a *Advisor) ScalingInsights(ctx context.Context, in Input) Outcome[ScalingInsights] {
	return run(ctx, a.client, scalingNormalizer, in)
}

// ScalingFallback builds canned insights; the first table gets high indexing priority.
func ScalingFallback(tables []string) ScalingInsights {
	priorities := make([]IndexingPriority, 0, len(tables))
	for i, t := range tables {
		p := IndexingPriority{
			Table:    t,
			Priority: domain.LevelMedium,
			Reason:   "Index foreign keys and frequently filtered columns",
		}
		if i == 0 {
			p.Priority = domain.LevelHigh
			p.Reason = "Primary entity, queried on most requests"
		}
		priorities = append(priorities, p)
	}

	return ScalingInsights{
		Insights: ScalingInsight{
			ExpectedLoad:     domain.LevelMedium,
			ReadWriteRatio:   "70:30",
			CachingStrategy:  "Application-level",
			IndexingPriority: priorities,
		},
		Metrics: []PerformanceMetric{
			{Label: "Expected QPS", Value: "100-1000", Description: "Queries per second estimate"},
			{Label: "Data Growth", Value: "10GB/year", Description: "Estimated data growth"},
			{Label: "Response Time", Value: "<200ms", Description: "Target p95 API latency"},
		},
	}
}
