// Package domain contains the pure domain models shared across the
// application. This layer has no infrastructure dependencies.
package domain

import "time"

// Document is a single news article as delivered by a news provider.
// Documents are immutable once fetched.
type Document struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"` // RFC3339 or provider-native string; compared lexicographically
	Source      string `json:"source"`
}

// FinancialMetrics holds per-company fundamentals. Every metric is optional:
// a nil pointer means the provider had no value, and scoring treats it as
// "no adjustment" rather than zero-valued evidence.
type FinancialMetrics struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"company_name"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	MarketCap     *float64 `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	ROE           *float64 `json:"roe"`
	RevenueGrowth *float64 `json:"revenue_growth"` // Year-over-year, percent
	CurrentPrice  *float64 `json:"current_price"`
}

// Company is the persisted company record.
type Company struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Industry  string    `json:"industry"`
	MarketCap *float64  `json:"market_cap"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Float64Ptr returns a pointer to v. Convenience for building optional
// metrics in providers and tests.
func Float64Ptr(v float64) *float64 {
	return &v
}
