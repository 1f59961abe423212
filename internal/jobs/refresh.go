package jobs

import (
	"context"
	"log/slog"

	"funnelpulse/internal/store"
)

// SnapshotRefreshJob keeps the in-memory event snapshot in step with the
// database while the server runs.
type SnapshotRefreshJob struct {
	store  *store.Store
	logger *slog.Logger
}

func NewSnapshotRefreshJob(st *store.Store, logger *slog.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		store:  st,
		logger: logger,
	}
}

// Run reloads the snapshot from the events table.
func (j *SnapshotRefreshJob) Run() error {
	if err := j.store.Reload(context.Background()); err != nil {
		j.logger.Error("Snapshot refresh failed", slog.Any("error", err))
		return err
	}

	j.logger.Info("Snapshot refresh completed", slog.Int("events", j.store.Len()))
	return nil
}
