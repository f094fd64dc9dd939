package scheduler

import (
	"github.com/aristath/esglens/internal/clientdata"
	"github.com/rs/zerolog"
)

// CacheCleanupJob removes expired client cache entries.
type CacheCleanupJob struct {
	repo *clientdata.Repository
	log  zerolog.Logger
}

// NewCacheCleanupJob creates a cache cleanup job.
func NewCacheCleanupJob(repo *clientdata.Repository, log zerolog.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		repo: repo,
		log:  log.With().Str("job", "cache_cleanup").Logger(),
	}
}

// Name implements Job.
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Run implements Job.
func (j *CacheCleanupJob) Run() error {
	deleted, err := j.repo.DeleteExpired()
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Expired cache entries removed")
	}
	return nil
}
