package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Entry is one historical analysis row for a company.
type Entry struct {
	Environmental float64   `json:"environmental_score"`
	Social        float64   `json:"social_score"`
	Governance    float64   `json:"governance_score"`
	Overall       float64   `json:"overall_score"`
	RiskRating    string    `json:"risk_rating"`
	AnalysisDate  time.Time `json:"analysis_date"`
}

// TrendingCompany is a company ranked by recent ESG score movement.
type TrendingCompany struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	LatestScore   float64  `json:"latest_score"`
	ScoreChange   float64  `json:"score_change"`
	PriceChange   *float64 `json:"price_change,omitempty"`
	PriceMomentum *float64 `json:"price_momentum,omitempty"`
}

// SectorStats aggregates the latest analyses per sector.
type SectorStats struct {
	Sector           string  `json:"sector"`
	CompanyCount     int     `json:"company_count"`
	AvgEnvironmental float64 `json:"avg_environmental"`
	AvgSocial        float64 `json:"avg_social"`
	AvgGovernance    float64 `json:"avg_governance"`
	AvgOverall       float64 `json:"avg_overall"`
}

// Repository reads historical analyses.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a history repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CompanyHistory returns the analyses for a symbol within the last `days`
// days, newest first.
func (r *Repository) CompanyHistory(symbol string, days int) ([]Entry, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := r.db.Query(`
		SELECT environmental_score, social_score, governance_score,
		       overall_score, risk_rating, analysis_date
		FROM esg_analyses
		WHERE symbol = ? AND analysis_date >= ?
		ORDER BY analysis_date DESC`,
		symbol, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", symbol, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Environmental, &e.Social, &e.Governance, &e.Overall, &e.RiskRating, &e.AnalysisDate); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TrendingCompanies ranks companies with at least two analyses in the last
// 30 days by the absolute change between their two most recent overall
// scores.
func (r *Repository) TrendingCompanies(limit int) ([]TrendingCompany, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(`
		WITH recent_analyses AS (
			SELECT symbol, overall_score, analysis_date,
			       ROW_NUMBER() OVER (PARTITION BY symbol ORDER BY analysis_date DESC) AS rn
			FROM esg_analyses
			WHERE analysis_date >= datetime('now', '-30 days')
		),
		score_changes AS (
			SELECT
				r1.symbol,
				r1.overall_score AS latest_score,
				(r1.overall_score - r2.overall_score) AS score_change
			FROM recent_analyses r1
			JOIN recent_analyses r2 ON r1.symbol = r2.symbol AND r2.rn = 2
			WHERE r1.rn = 1
		)
		SELECT sc.symbol, c.name, c.sector, sc.latest_score, sc.score_change
		FROM score_changes sc
		JOIN companies c ON sc.symbol = c.symbol
		ORDER BY ABS(sc.score_change) DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending companies: %w", err)
	}
	defer rows.Close()

	trending := []TrendingCompany{}
	for rows.Next() {
		var t TrendingCompany
		if err := rows.Scan(&t.Symbol, &t.Name, &t.Sector, &t.LatestScore, &t.ScoreChange); err != nil {
			return nil, fmt.Errorf("failed to scan trending row: %w", err)
		}
		trending = append(trending, t)
	}
	return trending, rows.Err()
}

// SectorAnalysis averages the most recent analysis of every company per
// sector over the last 30 days, best sector first.
func (r *Repository) SectorAnalysis() ([]SectorStats, error) {
	rows, err := r.db.Query(`
		WITH latest_analyses AS (
			SELECT
				e.symbol,
				e.environmental_score,
				e.social_score,
				e.governance_score,
				e.overall_score,
				c.sector,
				ROW_NUMBER() OVER (PARTITION BY e.symbol ORDER BY e.analysis_date DESC) AS rn
			FROM esg_analyses e
			JOIN companies c ON e.symbol = c.symbol
			WHERE e.analysis_date >= datetime('now', '-30 days')
		)
		SELECT
			sector,
			COUNT(*) AS company_count,
			AVG(environmental_score),
			AVG(social_score),
			AVG(governance_score),
			AVG(overall_score)
		FROM latest_analyses
		WHERE rn = 1 AND sector IS NOT NULL AND sector != ''
		GROUP BY sector
		ORDER BY AVG(overall_score) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sector analysis: %w", err)
	}
	defer rows.Close()

	stats := []SectorStats{}
	for rows.Next() {
		var s SectorStats
		if err := rows.Scan(&s.Sector, &s.CompanyCount, &s.AvgEnvironmental, &s.AvgSocial, &s.AvgGovernance, &s.AvgOverall); err != nil {
			return nil, fmt.Errorf("failed to scan sector row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Closes returns up to `limit` daily closing prices for a symbol in
// ascending date order.
func (r *Repository) Closes(symbol string, limit int) ([]float64, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.Query(`
		SELECT close FROM (
			SELECT date, close FROM price_history
			WHERE symbol = ?
			ORDER BY date DESC
			LIMIT ?
		) ORDER BY date ASC`,
		symbol, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices for %s: %w", symbol, err)
	}
	defer rows.Close()

	var closes []float64
	for rows.Next() {
		var c float64
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		closes = append(closes, c)
	}
	return closes, rows.Err()
}
