// Package history serves historical ESG analyses, trending companies and
// sector aggregates from the analysis database.
package history

import (
	"github.com/aristath/esglens/pkg/formulas"
	"github.com/rs/zerolog"
)

// momentumPeriod is the SMA window for the price momentum indicator.
const momentumPeriod = 10

// Service reads historical views and enriches trending entries with price
// movement indicators.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a history service.
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "history").Logger(),
	}
}

// CompanyHistory returns recent analyses for a symbol, newest first.
func (s *Service) CompanyHistory(symbol string, days int) ([]Entry, error) {
	if days <= 0 {
		days = 90
	}
	return s.repo.CompanyHistory(symbol, days)
}

// Trending returns companies ranked by recent score movement, with price
// change and momentum attached where price history exists.
func (s *Service) Trending(limit int) ([]TrendingCompany, error) {
	trending, err := s.repo.TrendingCompanies(limit)
	if err != nil {
		return nil, err
	}

	for i := range trending {
		closes, err := s.repo.Closes(trending[i].Symbol, 30)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", trending[i].Symbol).Msg("Price history unavailable")
			continue
		}
		trending[i].PriceChange = formulas.PriceChange(closes)
		trending[i].PriceMomentum = formulas.PriceMomentum(closes, momentumPeriod)
	}

	return trending, nil
}

// Sectors returns per-sector score averages.
func (s *Service) Sectors() ([]SectorStats, error) {
	return s.repo.SectorAnalysis()
}
