package eventlog

import (
	"context"
	"time"

	"github.com/moniyo/financequest/internal/logger"
)

// CleanupJob prunes activity past the retention window. It satisfies worker.Job.
type CleanupJob struct {
	service   Service
	retention time.Duration
}

// NewCleanupJob creates a cleanup job keeping retentionDays of history
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:   service,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Process runs one prune pass
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	removed, err := j.service.Prune(ctx, j.retention)
	if err != nil {
		log.Error(LogMsgCleanupFailed, LogFieldError, err, LogFieldDuration, time.Since(start))
		return err
	}
	log.Info(LogMsgCleanupCompleted, LogFieldRemoved, removed, LogFieldRetention, j.retention.String(), LogFieldDuration, time.Since(start))
	return nil
}
