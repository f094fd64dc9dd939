package analysis

import (
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/esg"
	"github.com/aristath/esglens/internal/sentiment"
)

// Request is the payload for POST /api/analyze.
type Request struct {
	Symbol   string `json:"symbol"`
	DaysBack int    `json:"days_back"`
}

// Response is the full analysis result returned to API clients.
type Response struct {
	Symbol            string                  `json:"symbol"`
	CompanyName       string                  `json:"company_name"`
	ESGScores         esg.Result              `json:"esg_scores"`
	BenchmarkCompare  esg.Comparison          `json:"benchmark_comparison"`
	FinancialMetrics  domain.FinancialMetrics `json:"financial_metrics"`
	SentimentData     sentiment.Summary       `json:"sentiment_data"`
	AnalysisTimestamp time.Time               `json:"analysis_timestamp"`
}
