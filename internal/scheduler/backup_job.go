package scheduler

import (
	"context"
	"time"

	"github.com/aristath/esglens/internal/reliability"
	"github.com/rs/zerolog"
)

const backupTimeout = 15 * time.Minute

// BackupJob archives and uploads the databases on a schedule.
type BackupJob struct {
	backups *reliability.BackupService
	log     zerolog.Logger
}

// NewBackupJob creates a scheduled backup job.
func NewBackupJob(backups *reliability.BackupService, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		backups: backups,
		log:     log.With().Str("job", "backup").Logger(),
	}
}

// Name implements Job.
func (j *BackupJob) Name() string {
	return "backup"
}

// Run implements Job.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := j.backups.CreateAndUploadBackup(ctx); err != nil {
		j.log.Error().Err(err).Msg("Scheduled backup failed")
		return err
	}
	return nil
}
