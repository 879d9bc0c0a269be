package jobs

import (
	"context"
	"log/slog"

	"transit/internal/core/ports"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DocumentSweeperJob periodically removes waybill document files that no
// departure references anymore, e.g. leftovers from deleted departures.
// Runs nightly; documents are regenerated on demand, so sweeping is safe.
type DocumentSweeperJob struct {
	db      *gorm.DB
	sweeper ports.WaybillDocumentSweeper
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDocumentSweeperJob creates a nightly sweep of orphaned waybill documents.
func NewDocumentSweeperJob(db *gorm.DB, sweeper ports.WaybillDocumentSweeper, logger *slog.Logger) *DocumentSweeperJob {
	return &DocumentSweeperJob{
		db:      db,
		sweeper: sweeper,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "document_sweeper_job"),
	}
}

// Start schedules the sweep to run every night at 03:00.
func (j *DocumentSweeperJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", func() {
		ctx := context.Background()

		removed, err := j.run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Document sweep failed", "error", err)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Swept orphaned waybill documents", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Document sweeper job started (nightly at 03:00)")
	return nil
}

// Stop stops the document sweeper job.
func (j *DocumentSweeperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Document sweeper job stopped")
}

func (j *DocumentSweeperJob) run(ctx context.Context) (int, error) {
	rows, err := j.db.WithContext(ctx).
		Raw(`SELECT document_path FROM departures WHERE document_path <> ''`).
		Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	keep := make(map[string]struct{})
	for rows.Next() {
		var path string
		if err = rows.Scan(&path); err != nil {
			return 0, err
		}
		keep[path] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return 0, err
	}

	return j.sweeper.Sweep(ctx, keep)
}
