package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/esglens/internal/modules/analysis"
	"github.com/rs/zerolog"
)

// refreshTimeout bounds one full refresh cycle.
const refreshTimeout = 10 * time.Minute

// RefreshJob periodically re-analyzes the configured tracked symbols so
// dashboards and trend queries keep receiving fresh scores.
type RefreshJob struct {
	service  *analysis.Service
	symbols  []string
	daysBack int
	log      zerolog.Logger
}

// NewRefreshJob creates a refresh job for the given symbols.
func NewRefreshJob(service *analysis.Service, symbols []string, daysBack int, log zerolog.Logger) *RefreshJob {
	if daysBack <= 0 {
		daysBack = 30
	}
	return &RefreshJob{
		service:  service,
		symbols:  symbols,
		daysBack: daysBack,
		log:      log.With().Str("job", "refresh").Logger(),
	}
}

// Name implements Job.
func (j *RefreshJob) Name() string {
	return "company_refresh"
}

// Run re-analyzes every tracked symbol. Individual failures do not abort
// the cycle; the first error is reported after all symbols were attempted.
func (j *RefreshJob) Run() error {
	if len(j.symbols) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	var firstErr error
	for _, symbol := range j.symbols {
		if _, err := j.service.Analyze(ctx, symbol, j.daysBack); err != nil {
			j.log.Error().Err(err).Str("symbol", symbol).Msg("Refresh analysis failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("refresh failed for %s: %w", symbol, err)
			}
		}
	}
	return firstErr
}
