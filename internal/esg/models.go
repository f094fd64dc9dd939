package esg

import "time"

// Risk rating tiers derived from the overall score.
const (
	RiskLow        = "Low Risk"
	RiskMediumLow  = "Medium-Low Risk"
	RiskMedium     = "Medium Risk"
	RiskMediumHigh = "Medium-High Risk"
	RiskHigh       = "High Risk"
)

// Result is a computed ESG rating. Overall is always derived from the three
// sub-scores by the fixed blend weights and never set independently.
type Result struct {
	Symbol        string    `json:"symbol"`
	Environmental float64   `json:"environmental"`
	Social        float64   `json:"social"`
	Governance    float64   `json:"governance"`
	Overall       float64   `json:"overall"`
	RiskRating    string    `json:"risk_rating"`
	BenchmarkUsed string    `json:"benchmark_used"`
	ComputedAt    time.Time `json:"computed_at"`
}

// PillarComparison relates one computed sub-score to its sector baseline.
type PillarComparison struct {
	Score      float64 `json:"score"`
	Benchmark  float64 `json:"benchmark"`
	Difference float64 `json:"difference"`
}

// Comparison relates a Result to its industry benchmark.
type Comparison struct {
	Environmental PillarComparison `json:"environmental"`
	Social        PillarComparison `json:"social"`
	Governance    PillarComparison `json:"governance"`
	OverallScore  float64          `json:"overall_score"`
	Baseline      float64          `json:"overall_benchmark"`
	Percentile    float64          `json:"percentile"`
}
