package esg

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/sentiment"
)

func newTestCalculator() *Calculator {
	return NewCalculator(zerolog.Nop())
}

func TestCalculate_BaselinesOnly(t *testing.T) {
	// No metrics, neutral sentiment, unknown sector: pure Default baselines.
	result := newTestCalculator().Calculate(
		domain.FinancialMetrics{Sector: "Unknown-Sector-XYZ"},
		sentiment.EmptySummary(),
		"TEST",
	)

	assert.Equal(t, "TEST", result.Symbol)
	assert.Equal(t, DefaultSector, result.BenchmarkUsed)
	assert.InDelta(t, 60.0, result.Environmental, 1e-9)
	assert.InDelta(t, 65.0, result.Social, 1e-9)
	assert.InDelta(t, 70.0, result.Governance, 1e-9)
	assert.InDelta(t, 64.75, result.Overall, 1e-9)
	assert.Equal(t, RiskMedium, result.RiskRating)
}

func TestCalculate_OverallIsWeightedBlend(t *testing.T) {
	roe := 0.18
	pe := 15.0
	result := newTestCalculator().Calculate(
		domain.FinancialMetrics{
			Sector:    "Technology",
			ROE:       &roe,
			PERatio:   &pe,
			MarketCap: domain.Float64Ptr(120e9),
		},
		sentiment.Summary{OverallSentiment: 0.2, KeyTopics: []string{sentiment.CategoryEnvironmental}},
		"TECH",
	)

	expected := result.Environmental*WeightEnvironmental +
		result.Social*WeightSocial +
		result.Governance*WeightGovernance
	assert.InDelta(t, expected, result.Overall, 1e-9)
}

func TestCalculate_EnvironmentalRules(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		metrics  domain.FinancialMetrics
		expected float64
	}{
		{
			name:     "high revenue growth adds",
			metrics:  domain.FinancialMetrics{RevenueGrowth: domain.Float64Ptr(12)},
			expected: 65, // 60 + 5
		},
		{
			name:     "shrinking revenue subtracts",
			metrics:  domain.FinancialMetrics{RevenueGrowth: domain.Float64Ptr(-6)},
			expected: 55,
		},
		{
			name:     "mega cap adds more than large cap",
			metrics:  domain.FinancialMetrics{MarketCap: domain.Float64Ptr(150e9)},
			expected: 68, // 60 + 8
		},
		{
			name:     "large cap adds",
			metrics:  domain.FinancialMetrics{MarketCap: domain.Float64Ptr(20e9)},
			expected: 65,
		},
		{
			name:     "small cap subtracts",
			metrics:  domain.FinancialMetrics{MarketCap: domain.Float64Ptr(0.5e9)},
			expected: 57,
		},
		{
			name:     "absent metrics contribute nothing",
			metrics:  domain.FinancialMetrics{},
			expected: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Calculate(tt.metrics, sentiment.EmptySummary(), "TEST")
			assert.InDelta(t, tt.expected, result.Environmental, 1e-9)
		})
	}
}

func TestCalculate_CarbonIntensityAdjustments(t *testing.T) {
	calc := newTestCalculator()

	// Energy carbon factor 1.5 > 1.2: penalty on the baseline of 45.
	energy := calc.Calculate(domain.FinancialMetrics{Sector: "Energy"}, sentiment.EmptySummary(), "OIL")
	assert.InDelta(t, 35.0, energy.Environmental, 1e-9)

	// Financials carbon factor 0.7 < 0.8: bonus on the baseline of 60.
	financials := calc.Calculate(domain.FinancialMetrics{Sector: "Financials"}, sentiment.EmptySummary(), "BANK")
	assert.InDelta(t, 68.0, financials.Environmental, 1e-9)
}

func TestCalculate_GovernanceSectorExample(t *testing.T) {
	// Financials with strong fundamentals hits the clamp:
	// 85 + 10 (ROE) + 5 (P/E) + 8 (D/E) + 8 (sector bonus) = 116 -> 100.
	result := newTestCalculator().Calculate(
		domain.FinancialMetrics{
			Sector:       "Financials",
			ROE:          domain.Float64Ptr(0.25),
			PERatio:      domain.Float64Ptr(15),
			DebtToEquity: domain.Float64Ptr(0.3),
		},
		sentiment.EmptySummary(),
		"BANK",
	)

	assert.InDelta(t, 100.0, result.Governance, 1e-9)
}

func TestCalculate_PresentZeroMetricFiresRules(t *testing.T) {
	// A present zero is a value, not a gap: D/E of exactly 0 counts as low
	// leverage for both the social and governance rules.
	result := newTestCalculator().Calculate(
		domain.FinancialMetrics{DebtToEquity: domain.Float64Ptr(0)},
		sentiment.EmptySummary(),
		"TEST",
	)

	assert.InDelta(t, 73.0, result.Social, 1e-9)     // 65 + 8
	assert.InDelta(t, 78.0, result.Governance, 1e-9) // 70 + 8
}

func TestCalculate_ScoresClampedToRange(t *testing.T) {
	calc := newTestCalculator()

	pessimal := calc.Calculate(
		domain.FinancialMetrics{Sector: "Energy", ROE: domain.Float64Ptr(-0.5)},
		sentiment.Summary{OverallSentiment: -1},
		"TEST",
	)
	optimal := calc.Calculate(
		domain.FinancialMetrics{
			Sector:        "Technology",
			MarketCap:     domain.Float64Ptr(500e9),
			ROE:           domain.Float64Ptr(0.3),
			RevenueGrowth: domain.Float64Ptr(25),
			DebtToEquity:  domain.Float64Ptr(0.1),
			PERatio:       domain.Float64Ptr(20),
		},
		sentiment.Summary{
			OverallSentiment: 1,
			KeyTopics:        []string{sentiment.CategoryEnvironmental, sentiment.CategorySocial, sentiment.CategoryGovernance},
		},
		"TEST",
	)

	for _, score := range []float64{pessimal.Environmental, pessimal.Social, pessimal.Governance} {
		assert.Equal(t, 0.0, score)
	}
	for _, score := range []float64{optimal.Environmental, optimal.Social, optimal.Governance} {
		assert.Equal(t, 100.0, score)
	}
	assert.GreaterOrEqual(t, pessimal.Overall, 0.0)
	assert.LessOrEqual(t, optimal.Overall, 100.0)
}

func TestCalculate_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	metrics := domain.FinancialMetrics{
		Sector:    "Healthcare",
		MarketCap: domain.Float64Ptr(80e9),
		ROE:       domain.Float64Ptr(0.12),
	}
	summary := sentiment.Summary{OverallSentiment: 0.25, KeyTopics: []string{sentiment.CategorySocial}}

	first := calc.Calculate(metrics, summary, "HC")
	second := calc.Calculate(metrics, summary, "HC")

	assert.Equal(t, first.Environmental, second.Environmental)
	assert.Equal(t, first.Social, second.Social)
	assert.Equal(t, first.Governance, second.Governance)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.RiskRating, second.RiskRating)
}

func TestSentimentImpact(t *testing.T) {
	tests := []struct {
		name     string
		summary  sentiment.Summary
		category string
		expected float64
	}{
		{
			name:     "polarity stretched to plus minus twenty",
			summary:  sentiment.Summary{OverallSentiment: 0.5},
			category: sentiment.CategoryEnvironmental,
			expected: 10,
		},
		{
			name: "top ranked topic earns the full bonus",
			summary: sentiment.Summary{
				OverallSentiment: 0.4,
				KeyTopics:        []string{sentiment.CategoryEnvironmental},
			},
			category: sentiment.CategoryEnvironmental,
			expected: 18, // 0.4*20 + 10
		},
		{
			name: "bonus decreases with rank",
			summary: sentiment.Summary{
				KeyTopics: []string{sentiment.CategoryEnvironmental, sentiment.CategorySocial, sentiment.CategoryGovernance},
			},
			category: sentiment.CategoryGovernance,
			expected: 6, // rank 2
		},
		{
			name: "unranked category gets no bonus",
			summary: sentiment.Summary{
				OverallSentiment: -0.3,
				KeyTopics:        []string{sentiment.CategoryEnvironmental},
			},
			category: sentiment.CategoryGovernance,
			expected: -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, sentimentImpact(tt.summary, tt.category), 1e-9)
		})
	}
}

func TestRiskRating_Bands(t *testing.T) {
	tests := []struct {
		overall  float64
		expected string
	}{
		{100, RiskLow},
		{80, RiskLow},
		{79.99, RiskMediumLow},
		{65, RiskMediumLow},
		{64.99, RiskMedium},
		{50, RiskMedium},
		{49.99, RiskMediumHigh},
		{35, RiskMediumHigh},
		{34.99, RiskHigh},
		{0, RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, riskRating(tt.overall), "overall=%v", tt.overall)
	}
}

func TestCompare_AgainstSectorBaseline(t *testing.T) {
	calc := newTestCalculator()
	result := calc.Calculate(
		domain.FinancialMetrics{Sector: "Unknown-Sector-XYZ"},
		sentiment.EmptySummary(),
		"TEST",
	)

	comparison := calc.Compare(result, "Unknown-Sector-XYZ")

	// With pure baselines the overall equals the blended benchmark exactly.
	assert.InDelta(t, 64.75, comparison.Baseline, 1e-9)
	assert.InDelta(t, 50.0, comparison.Percentile, 1e-9)
	assert.InDelta(t, 0.0, comparison.Environmental.Difference, 1e-9)
	assert.InDelta(t, 0.0, comparison.Social.Difference, 1e-9)
	assert.InDelta(t, 0.0, comparison.Governance.Difference, 1e-9)
}

func TestCompare_PercentileClamped(t *testing.T) {
	calc := newTestCalculator()

	low := calc.Compare(Result{Overall: 0}, "Technology")
	assert.Equal(t, 1.0, low.Percentile)

	high := calc.Compare(Result{Overall: 100}, "Energy")
	assert.InDelta(t, 93.75, high.Percentile, 1e-9) // 50 + (100 - 56.25)
	assert.LessOrEqual(t, high.Percentile, 99.0)
}
