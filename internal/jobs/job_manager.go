// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3. DocumentSweeperJob runs nightly and removes
// waybill document files no longer referenced by any departure.
package jobs

import (
	"fmt"
	"log/slog"

	"transit/internal/core/ports"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	documentSweeperJob *DocumentSweeperJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(db *gorm.DB, sweeper ports.WaybillDocumentSweeper, logger *slog.Logger) *JobManager {
	return &JobManager{
		documentSweeperJob: NewDocumentSweeperJob(db, sweeper, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.documentSweeperJob.Start(); err != nil {
		return fmt.Errorf("failed to start document sweeper job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.documentSweeperJob.Stop()
}
