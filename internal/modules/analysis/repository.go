package analysis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/aristath/esglens/internal/esg"
	"github.com/aristath/esglens/internal/sentiment"
	"github.com/google/uuid"
)

// Repository persists analysis results, company records and per-article
// sentiment rows.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an analysis repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// StoreAnalysis writes a complete analysis: the company record is upserted,
// the scored result is appended to esg_analyses, and each article of the
// sentiment trend is recorded in news_sentiment. The sentiment summary and
// financial metrics are stored alongside the scores as JSON for later
// inspection.
func (r *Repository) StoreAnalysis(result esg.Result, metrics domain.FinancialMetrics, summary sentiment.Summary) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin analysis transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO companies (symbol, name, sector, industry, market_cap, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			sector = excluded.sector,
			industry = excluded.industry,
			market_cap = excluded.market_cap,
			updated_at = excluded.updated_at`,
		result.Symbol, metrics.CompanyName, metrics.Sector, metrics.Industry,
		nullableFloat(metrics.MarketCap), now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", result.Symbol, err)
	}

	sentimentJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal sentiment summary: %w", err)
	}
	financialJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal financial metrics: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO esg_analyses
			(id, symbol, environmental_score, social_score, governance_score,
			 overall_score, risk_rating, benchmark_used, sentiment_data,
			 financial_data, analysis_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), result.Symbol,
		result.Environmental, result.Social, result.Governance, result.Overall,
		result.RiskRating, result.BenchmarkUsed,
		string(sentimentJSON), string(financialJSON), result.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store analysis for %s: %w", result.Symbol, err)
	}

	for _, point := range summary.SentimentTrend {
		_, err = tx.Exec(`
			INSERT INTO news_sentiment
				(symbol, article_title, source, sentiment_score, sentiment_label, published_at, analyzed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			result.Symbol, point.Title, point.Source,
			point.Sentiment, string(labelForPolarity(point.Sentiment)),
			point.Date, now,
		)
		if err != nil {
			return fmt.Errorf("failed to store article sentiment for %s: %w", result.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis for %s: %w", result.Symbol, err)
	}
	return nil
}

// RecordPrice appends a daily closing price used for trend calculations.
// One row per symbol and day; re-analysis on the same day overwrites.
func (r *Repository) RecordPrice(symbol string, date time.Time, close float64) error {
	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO price_history (symbol, date, close) VALUES (?, ?, ?)",
		symbol, date.UTC().Format("2006-01-02"), close,
	)
	if err != nil {
		return fmt.Errorf("failed to record price for %s: %w", symbol, err)
	}
	return nil
}

// Companies returns all tracked companies ordered by symbol.
func (r *Repository) Companies() ([]domain.Company, error) {
	rows, err := r.db.Query(`
		SELECT symbol, name, sector, industry, market_cap, updated_at
		FROM companies ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		var marketCap sql.NullFloat64
		if err := rows.Scan(&c.Symbol, &c.Name, &c.Sector, &c.Industry, &marketCap, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		if marketCap.Valid {
			c.MarketCap = &marketCap.Float64
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// labelForPolarity mirrors the per-document labeling thresholds.
func labelForPolarity(polarity float64) sentiment.Label {
	switch {
	case polarity > 0.1:
		return sentiment.LabelPositive
	case polarity < -0.1:
		return sentiment.LabelNegative
	default:
		return sentiment.LabelNeutral
	}
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
