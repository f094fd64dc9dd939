// Package esg implements the ESG score calculator: it blends aggregated
// news sentiment, financial fundamentals and industry benchmarks into
// bounded sub-scores, a weighted overall score and a qualitative risk tier.
package esg

import (
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/sentiment"
	"github.com/rs/zerolog"
)

// Final ESG blend weights. They must sum to 1.0.
const (
	WeightEnvironmental = 0.35
	WeightSocial        = 0.35
	WeightGovernance    = 0.30
)

// Per-pillar sentiment weights. These scale the sentiment impact inside
// each sub-score and are unrelated to the final blend weights above.
const (
	SentimentWeightEnvironmental = 30.0
	SentimentWeightSocial        = 35.0
	SentimentWeightGovernance    = 25.0
)

// Calculator computes ESG ratings.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates an ESG score calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("component", "esg_calculator").Logger(),
	}
}

// Calculate blends financial metrics, the aggregated sentiment summary and
// the sector benchmark into an ESG result. Missing metrics contribute
// nothing; unknown sectors fall back to the Default benchmark. The call
// never fails: scoring is best-effort over incomplete data and callers that
// need strict validation must check field presence beforehand.
func (c *Calculator) Calculate(metrics domain.FinancialMetrics, summary sentiment.Summary, symbol string) Result {
	bench, benchUsed := LookupBenchmark(metrics.Sector)

	environmental := c.environmentalScore(metrics, summary, bench)
	social := c.socialScore(metrics, summary, bench)
	governance := c.governanceScore(metrics, summary, bench)

	overall := environmental*WeightEnvironmental +
		social*WeightSocial +
		governance*WeightGovernance

	result := Result{
		Symbol:        symbol,
		Environmental: environmental,
		Social:        social,
		Governance:    governance,
		Overall:       overall,
		RiskRating:    riskRating(overall),
		BenchmarkUsed: benchUsed,
		ComputedAt:    time.Now().UTC(),
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("benchmark", benchUsed).
		Float64("overall", overall).
		Str("risk_rating", result.RiskRating).
		Msg("ESG score calculated")

	return result
}

// environmentalScore = baseline + sentiment + financial + industry, clamped
// to [0, 100]. Rule conditions on different metrics are checked
// independently; multiple rules may fire and their deltas sum.
func (c *Calculator) environmentalScore(m domain.FinancialMetrics, s sentiment.Summary, bench Benchmark) float64 {
	score := bench.EnvironmentalBaseline
	score += sentimentImpact(s, sentiment.CategoryEnvironmental) * SentimentWeightEnvironmental

	if m.RevenueGrowth != nil {
		switch {
		case *m.RevenueGrowth > 10:
			score += 5
		case *m.RevenueGrowth < -5:
			score -= 5
		}
	}
	if m.MarketCap != nil {
		switch {
		case *m.MarketCap > 100e9:
			score += 8
		case *m.MarketCap > 10e9:
			score += 5
		case *m.MarketCap < 1e9:
			score -= 3
		}
	}

	switch {
	case bench.CarbonIntensityFactor > 1.2:
		score -= 10
	case bench.CarbonIntensityFactor < 0.8:
		score += 8
	}
	if containsTopic(s.KeyTopics, sentiment.CategoryEnvironmental) {
		score += 5
	}

	return clampScore(score)
}

func (c *Calculator) socialScore(m domain.FinancialMetrics, s sentiment.Summary, bench Benchmark) float64 {
	score := bench.SocialBaseline
	score += sentimentImpact(s, sentiment.CategorySocial) * SentimentWeightSocial

	if m.DebtToEquity != nil {
		switch {
		case *m.DebtToEquity < 0.3:
			score += 8
		case *m.DebtToEquity > 1.0:
			score -= 5
		}
	}
	if m.ROE != nil {
		switch {
		case *m.ROE > 0.15:
			score += 6
		case *m.ROE < 0:
			score -= 8
		}
	}

	if m.MarketCap != nil && *m.MarketCap > 50e9 {
		score += 6
	}
	if containsTopic(s.KeyTopics, sentiment.CategorySocial) {
		score += 7
	}
	if m.Sector == "Healthcare" {
		score += bench.SectorBonus
	}

	return clampScore(score)
}

func (c *Calculator) governanceScore(m domain.FinancialMetrics, s sentiment.Summary, bench Benchmark) float64 {
	score := bench.GovernanceBaseline
	score += sentimentImpact(s, sentiment.CategoryGovernance) * SentimentWeightGovernance

	if m.ROE != nil {
		switch {
		case *m.ROE > 0.20:
			score += 10
		case *m.ROE > 0.10:
			score += 5
		case *m.ROE < 0:
			score -= 10
		}
	}
	if m.PERatio != nil {
		switch {
		case *m.PERatio >= 10 && *m.PERatio <= 25:
			score += 5
		case *m.PERatio > 50:
			score -= 5
		}
	}
	if m.DebtToEquity != nil {
		switch {
		case *m.DebtToEquity < 0.5:
			score += 8
		case *m.DebtToEquity > 1.5:
			score -= 8
		}
	}

	if m.Sector == "Financials" {
		score += bench.SectorBonus
	}
	if containsTopic(s.KeyTopics, sentiment.CategoryGovernance) {
		score += 8
	}
	switch {
	case s.OverallSentiment > 0.3:
		score += 5
	case s.OverallSentiment < -0.3:
		score -= 5
	}

	return clampScore(score)
}

// Compare relates a result to its sector baselines and estimates a
// simplified percentile rank against the benchmark blend.
func (c *Calculator) Compare(result Result, sector string) Comparison {
	bench, _ := LookupBenchmark(sector)

	baseline := bench.EnvironmentalBaseline*WeightEnvironmental +
		bench.SocialBaseline*WeightSocial +
		bench.GovernanceBaseline*WeightGovernance

	percentile := 50 + (result.Overall - baseline)
	if percentile > 99 {
		percentile = 99
	}
	if percentile < 1 {
		percentile = 1
	}

	return Comparison{
		Environmental: PillarComparison{
			Score:      result.Environmental,
			Benchmark:  bench.EnvironmentalBaseline,
			Difference: result.Environmental - bench.EnvironmentalBaseline,
		},
		Social: PillarComparison{
			Score:      result.Social,
			Benchmark:  bench.SocialBaseline,
			Difference: result.Social - bench.SocialBaseline,
		},
		Governance: PillarComparison{
			Score:      result.Governance,
			Benchmark:  bench.GovernanceBaseline,
			Difference: result.Governance - bench.GovernanceBaseline,
		},
		OverallScore: result.Overall,
		Baseline:     baseline,
		Percentile:   percentile,
	}
}

// sentimentImpact scales the batch sentiment into a per-pillar impact:
// polarity is stretched to ±20, plus a rank bonus when the pillar appears
// in the key topics (10 for rank 0, decreasing by 2 per rank).
func sentimentImpact(s sentiment.Summary, category string) float64 {
	impact := s.OverallSentiment * 20

	for position, topic := range s.KeyTopics {
		if topic == category {
			bonus := 10 - float64(position)*2
			if bonus > 0 {
				impact += bonus
			}
			break
		}
	}

	return impact
}

// riskRating maps an overall score to its qualitative tier. Bands are
// half-open with the lower bound inclusive.
func riskRating(overall float64) string {
	switch {
	case overall >= 80:
		return RiskLow
	case overall >= 65:
		return RiskMediumLow
	case overall >= 50:
		return RiskMedium
	case overall >= 35:
		return RiskMediumHigh
	default:
		return RiskHigh
	}
}

func containsTopic(topics []string, category string) bool {
	for _, t := range topics {
		if t == category {
			return true
		}
	}
	return false
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
