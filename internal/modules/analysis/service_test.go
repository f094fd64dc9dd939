package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/esg"
	"github.com/aristath/esglens/internal/events"
	"github.com/aristath/esglens/internal/sentiment"
)

type stubNewsProvider struct {
	docs     []domain.Document
	err      error
	daysBack int
}

func (p *stubNewsProvider) CompanyNews(_ context.Context, _, _ string, daysBack int) ([]domain.Document, error) {
	p.daysBack = daysBack
	return p.docs, p.err
}

type stubFinancialProvider struct {
	metrics domain.FinancialMetrics
	err     error
}

func (p *stubFinancialProvider) CompanyOverview(_ context.Context, symbol string) (domain.FinancialMetrics, error) {
	if p.err != nil {
		return domain.FinancialMetrics{}, p.err
	}
	metrics := p.metrics
	metrics.Symbol = symbol
	return metrics, nil
}

func newServiceUnderTest(t *testing.T, news *stubNewsProvider, financial *stubFinancialProvider) (*Service, *events.Bus) {
	t.Helper()
	bus := events.NewBus(zerolog.Nop())
	service := NewService(
		news,
		financial,
		sentiment.NewAnalyzer(sentiment.NewLexiconEngine(), zerolog.Nop()),
		esg.NewCalculator(zerolog.Nop()),
		NewRepository(setupTestDB(t)),
		bus,
		zerolog.Nop(),
	)
	return service, bus
}

func TestAnalyze_FullPipeline(t *testing.T) {
	news := &stubNewsProvider{docs: []domain.Document{
		{Title: "Company reports strong growth", PublishedAt: "2026-08-12", Source: "Wire"},
		{Title: "Lawsuit filed over emissions", PublishedAt: "2026-08-11", Source: "Wire"},
	}}
	financial := &stubFinancialProvider{metrics: domain.FinancialMetrics{
		CompanyName:  "Test Corp",
		Sector:       "Technology",
		MarketCap:    domain.Float64Ptr(120e9),
		CurrentPrice: domain.Float64Ptr(150),
	}}
	service, _ := newServiceUnderTest(t, news, financial)

	resp, err := service.Analyze(context.Background(), "TEST", 30)
	require.NoError(t, err)

	assert.Equal(t, "TEST", resp.Symbol)
	assert.Equal(t, "Test Corp", resp.CompanyName)
	assert.Equal(t, "Technology", resp.ESGScores.BenchmarkUsed)
	assert.Equal(t, 2, resp.SentimentData.TotalArticles)
	assert.NotEmpty(t, resp.ESGScores.RiskRating)

	// The blend identity holds on the returned scores.
	expected := resp.ESGScores.Environmental*esg.WeightEnvironmental +
		resp.ESGScores.Social*esg.WeightSocial +
		resp.ESGScores.Governance*esg.WeightGovernance
	assert.InDelta(t, expected, resp.ESGScores.Overall, 1e-9)

	// The analysis was persisted.
	companies, err := service.Companies()
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "TEST", companies[0].Symbol)
}

func TestAnalyze_DefaultsDaysBack(t *testing.T) {
	news := &stubNewsProvider{}
	service, _ := newServiceUnderTest(t, news, &stubFinancialProvider{})

	_, err := service.Analyze(context.Background(), "TEST", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, news.daysBack)
}

func TestAnalyze_NewsFailureDegradesToEmptyBatch(t *testing.T) {
	news := &stubNewsProvider{err: errors.New("provider down")}
	service, _ := newServiceUnderTest(t, news, &stubFinancialProvider{
		metrics: domain.FinancialMetrics{CompanyName: "Test Corp", Sector: "Energy"},
	})

	resp, err := service.Analyze(context.Background(), "TEST", 30)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.SentimentData.TotalArticles)
	assert.Empty(t, resp.SentimentData.KeyTopics)
	// Scores still come out of the sector baselines.
	assert.Equal(t, "Energy", resp.ESGScores.BenchmarkUsed)
}

func TestAnalyze_FinancialFailureScoresWithoutFundamentals(t *testing.T) {
	news := &stubNewsProvider{docs: []domain.Document{{Title: "strong growth", PublishedAt: "2026-08-12"}}}
	service, _ := newServiceUnderTest(t, news, &stubFinancialProvider{err: errors.New("rate limited")})

	resp, err := service.Analyze(context.Background(), "TEST", 30)
	require.NoError(t, err)

	// No sector means the Default benchmark.
	assert.Equal(t, esg.DefaultSector, resp.ESGScores.BenchmarkUsed)
	assert.Nil(t, resp.FinancialMetrics.MarketCap)
}

func TestAnalyze_PublishesCompletionEvent(t *testing.T) {
	service, bus := newServiceUnderTest(t, &stubNewsProvider{}, &stubFinancialProvider{})

	eventCh, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	_, err := service.Analyze(context.Background(), "TEST", 30)
	require.NoError(t, err)

	select {
	case event := <-eventCh:
		assert.Equal(t, events.AnalysisCompleted, event.Type)
		data, ok := event.Data.(*events.AnalysisCompletedData)
		require.True(t, ok)
		assert.Equal(t, "TEST", data.Symbol)
	case <-time.After(time.Second):
		t.Fatal("expected an analysis completion event")
	}
}
