// Package analysis orchestrates a full company analysis: fetch financial
// metrics and news, score sentiment, calculate the ESG rating, persist the
// result and notify subscribers.
package analysis

import (
	"context"
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/esg"
	"github.com/aristath/esglens/internal/events"
	"github.com/aristath/esglens/internal/sentiment"
	"github.com/rs/zerolog"
)

// NewsProvider returns recent articles for a company.
type NewsProvider interface {
	CompanyNews(ctx context.Context, symbol, companyName string, daysBack int) ([]domain.Document, error)
}

// FinancialProvider returns company fundamentals.
type FinancialProvider interface {
	CompanyOverview(ctx context.Context, symbol string) (domain.FinancialMetrics, error)
}

// Service runs the analysis pipeline.
type Service struct {
	news       NewsProvider
	financial  FinancialProvider
	analyzer   *sentiment.Analyzer
	calculator *esg.Calculator
	repo       *Repository
	bus        *events.Bus
	log        zerolog.Logger
}

// NewService creates the analysis service.
func NewService(
	news NewsProvider,
	financial FinancialProvider,
	analyzer *sentiment.Analyzer,
	calculator *esg.Calculator,
	repo *Repository,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		news:       news,
		financial:  financial,
		analyzer:   analyzer,
		calculator: calculator,
		repo:       repo,
		bus:        bus,
		log:        log.With().Str("service", "analysis").Logger(),
	}
}

// Analyze runs the full pipeline for one symbol. Provider failures degrade
// gracefully: missing fundamentals score with no financial adjustments and
// missing news scores against an empty batch. Persistence failures are
// logged but do not fail the analysis itself.
func (s *Service) Analyze(ctx context.Context, symbol string, daysBack int) (*Response, error) {
	if daysBack <= 0 {
		daysBack = 30
	}

	metrics, err := s.financial.CompanyOverview(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Financial data unavailable, scoring without fundamentals")
		metrics = domain.FinancialMetrics{Symbol: symbol}
	}

	docs, err := s.news.CompanyNews(ctx, symbol, metrics.CompanyName, daysBack)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("News unavailable, scoring empty batch")
		docs = nil
	}

	summary := s.analyzer.AnalyzeBatch(docs)
	result := s.calculator.Calculate(metrics, summary, symbol)

	if err := s.repo.StoreAnalysis(result, metrics, summary); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to persist analysis")
	}
	if metrics.CurrentPrice != nil {
		if err := s.repo.RecordPrice(symbol, time.Now(), *metrics.CurrentPrice); err != nil {
			s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to record price point")
		}
	}

	s.bus.Publish(&events.AnalysisCompletedData{
		Symbol:        symbol,
		Environmental: result.Environmental,
		Social:        result.Social,
		Governance:    result.Governance,
		Overall:       result.Overall,
		RiskRating:    result.RiskRating,
		Articles:      summary.TotalArticles,
	})

	s.log.Info().
		Str("symbol", symbol).
		Float64("overall", result.Overall).
		Str("risk_rating", result.RiskRating).
		Int("articles", summary.TotalArticles).
		Msg("Analysis completed")

	return &Response{
		Symbol:            symbol,
		CompanyName:       metrics.CompanyName,
		ESGScores:         result,
		BenchmarkCompare:  s.calculator.Compare(result, metrics.Sector),
		FinancialMetrics:  metrics,
		SentimentData:     summary,
		AnalysisTimestamp: result.ComputedAt,
	}, nil
}

// Companies lists all companies that have at least one stored analysis.
func (s *Service) Companies() ([]domain.Company, error) {
	return s.repo.Companies()
}
