package advisor

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BackendAnalysis merges every recommendation domain for one description.
type BackendAnalysis struct {
	UseCase                 UseCase                  `json:"useCase" yaml:"useCase"`
	DatabaseRecommendations []DatabaseRecommendation `json:"databaseRecommendations" yaml:"databaseRecommendations"`
	SelectedDatabase        string                   `json:"selectedDatabase" yaml:"selectedDatabase"`
	PerformanceMetrics      []PerformanceMetric      `json:"performanceMetrics" yaml:"performanceMetrics"`
	ScalingInsights         ScalingInsight           `json:"scalingInsights" yaml:"scalingInsights"`
	SmartRecommendations    []SmartRecommendation    `json:"smartRecommendations" yaml:"smartRecommendations"`
	OptimizationSuggestions []OptimizationSuggestion `json:"optimizationSuggestions" yaml:"optimizationSuggestions"`
	SecurityRecommendations []SecurityRecommendation `json:"securityRecommendations" yaml:"securityRecommendations"`
}

// Analyze runs the five recommendation domains concurrently. The outcome succeeds only if every
// domain succeeded; otherwise Err joins the domain errors and the failed parts hold fallbacks.
func (a *Advisor) Analyze(ctx context.Context, in Input) Outcome[BackendAnalysis] {
	if strings.TrimSpace(in.Description) == "" {
		db := emptyDatabaseRecommendations()
		scaling := emptyScalingInsights()
		return Outcome[BackendAnalysis]{
			Payload: BackendAnalysis{
				UseCase:                 db.UseCase,
				DatabaseRecommendations: db.Recommendations,
				SelectedDatabase:        db.Selected,
				PerformanceMetrics:      scaling.Metrics,
				ScalingInsights:         scaling.Insights,
				SmartRecommendations:    []SmartRecommendation{},
				OptimizationSuggestions: []OptimizationSuggestion{},
				SecurityRecommendations: []SecurityRecommendation{},
			},
			Err: ErrDescriptionRequired,
		}
	}

	var (
		db           Outcome[DatabaseRecommendations]
		scaling      Outcome[ScalingInsights]
		smart        Outcome[[]SmartRecommendation]
		optimization Outcome[[]OptimizationSuggestion]
		security     Outcome[[]SecurityRecommendation]
	)

	// Each domain degrades to its own fallback, so no goroutine returns an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { db = a.DatabaseRecommendations(gctx, in); return nil })
	g.Go(func() error { scaling = a.ScalingInsights(gctx, in); return nil })
	g.Go(func() error { smart = a.SmartRecommendations(gctx, in); return nil })
	g.Go(func() error { optimization = a.OptimizationSuggestions(gctx, in); return nil })
	g.Go(func() error { security = a.SecurityRecommendations(gctx, in); return nil })
	_ = g.Wait()

	return Outcome[BackendAnalysis]{
		Payload: BackendAnalysis{
			UseCase:                 db.Payload.UseCase,
			DatabaseRecommendations: db.Payload.Recommendations,
			SelectedDatabase:        db.Payload.Selected,
			PerformanceMetrics:      scaling.Payload.Metrics,
			ScalingInsights:         scaling.Payload.Insights,
			SmartRecommendations:    smart.Payload,
			OptimizationSuggestions: optimization.Payload,
			SecurityRecommendations: security.Payload,
		},
		Err: errors.Join(db.Err, scaling.Err, smart.Err, optimization.Err, security.Err),
	}
}
