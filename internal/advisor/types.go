package advisor

import "github.com/rhinoback/rhinoback/internal/domain"

type SecurityRecommendation struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Priority    domain.Level `json:"priority" yaml:"priority"`
	Category    string       `json:"category" yaml:"category"`
}

type SmartRecommendation struct {
	Title                string       `json:"title" yaml:"title"`
	Description          string       `json:"description" yaml:"description"`
	Type                 string       `json:"type" yaml:"type"`
	Priority             domain.Level `json:"priority" yaml:"priority"`
	ImplementationEffort domain.Level `json:"implementationEffort" yaml:"implementationEffort"`
}

type OptimizationSuggestion struct {
	Type        string       `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Impact      domain.Level `json:"impact" yaml:"impact"`
	Complexity  domain.Level `json:"complexity" yaml:"complexity"`
}

// UseCase is the model's classification of the described project.
type UseCase struct {
	Key        string   `json:"key" yaml:"key"`
	Label      string   `json:"label" yaml:"label"`
	Features   []string `json:"features" yaml:"features"`
	Complexity string   `json:"complexity" yaml:"complexity"` // simple, medium or complex
}

type DatabaseRecommendation struct {
	Name          string   `json:"name" yaml:"name"`
	Score         float64  `json:"score" yaml:"score"`
	Reasons       []string `json:"reasons" yaml:"reasons"`
	BestFor       string   `json:"bestFor" yaml:"bestFor"`
	Pros          []string `json:"pros" yaml:"pros"`
	Cons          []string `json:"cons" yaml:"cons"`
	WhyForUseCase []string `json:"whyForUseCase" yaml:"whyForUseCase"`
}

// DatabaseRecommendations is the payload of the database recommendation domain.
type DatabaseRecommendations struct {
	UseCase         UseCase                  `json:"useCase" yaml:"useCase"`
	Recommendations []DatabaseRecommendation `json:"recommendations" yaml:"recommendations"`
	Selected        string                   `json:"selected" yaml:"selected"`
}

type IndexingPriority struct {
	Table    string       `json:"table" yaml:"table"`
	Priority domain.Level `json:"priority" yaml:"priority"`
	Reason   string       `json:"reason" yaml:"reason"`
}

type ScalingInsight struct {
	ExpectedLoad     domain.Level       `json:"expectedLoad" yaml:"expectedLoad"`
	ReadWriteRatio   string             `json:"readWriteRatio" yaml:"readWriteRatio"`
	CachingStrategy  string             `json:"cachingStrategy" yaml:"cachingStrategy"`
	IndexingPriority []IndexingPriority `json:"indexingPriority" yaml:"indexingPriority"`
}

type PerformanceMetric struct {
	Label       string `json:"label" yaml:"label"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// ScalingInsights is the payload of the scaling domain.
type ScalingInsights struct {
	Insights ScalingInsight      `json:"insights" yaml:"insights"`
	Metrics  []PerformanceMetric `json:"metrics" yaml:"metrics"`
}
