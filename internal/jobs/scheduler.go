// Package jobs runs the periodic background work of the server. Currently
// that is the snapshot refresh loop; the scheduler serializes executions
// and survives panics inside a job.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"funnelpulse/internal/config"
	"funnelpulse/internal/store"
)

// Scheduler is responsible for running background jobs
type Scheduler struct {
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	enabled   bool
	isRunning bool
	cfg       *config.Config

	// Mutex to prevent concurrent job executions
	processingMutex sync.Mutex
	isProcessing    bool

	refreshJob    *SnapshotRefreshJob
	refreshTicker *time.Ticker
}

func NewScheduler(st *store.Store, logger *slog.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.GetConfig()

	s := &Scheduler{
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		enabled:    true,
		isRunning:  false,
		cfg:        cfg,
		refreshJob: NewSnapshotRefreshJob(st, logger),
	}

	return s, nil
}

// executeJobSafely runs a job only if no other job is currently executing
func (s *Scheduler) executeJobSafely(jobName string, jobFunc func() error) {
	s.processingMutex.Lock()
	if s.isProcessing {
		s.logger.Debug("Skipping job execution - previous job still running", slog.String("job", jobName))
		s.processingMutex.Unlock()
		return
	}
	s.isProcessing = true
	s.processingMutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", jobName),
				slog.Any("panic", r))
		}

		s.processingMutex.Lock()
		s.isProcessing = false
		s.processingMutex.Unlock()
	}()

	if err := jobFunc(); err != nil {
		s.logger.Error("Error executing job", slog.String("job", jobName), slog.Any("error", err))
	}
}

// Start begins all background jobs
func (s *Scheduler) Start() error {
	if !s.enabled {
		s.logger.Info("Background jobs are disabled.")
		return nil
	}

	if s.isRunning {
		s.logger.Info("Background jobs already running.")
		return nil
	}

	s.logger.Info("Starting background jobs...")

	s.isRunning = true
	s.startSnapshotRefreshJob()

	s.logger.Info("Background jobs started",
		slog.Bool("enabled", s.enabled),
		slog.Bool("isRunning", s.isRunning))

	return nil
}

func (s *Scheduler) startSnapshotRefreshJob() {
	interval := time.Duration(s.cfg.RefreshIntervalSeconds) * time.Second
	s.logger.Info("Starting snapshot refresh job", slog.Duration("interval", interval))
	s.refreshTicker = time.NewTicker(interval)

	go func() {
		// Warm the snapshot before the first tick
		s.logger.Info("Running initial snapshot refresh...")
		s.executeJobSafely("snapshot_refresh", s.refreshJob.Run)

		for {
			select {
			case <-s.refreshTicker.C:
				s.executeJobSafely("snapshot_refresh", s.refreshJob.Run)
			case <-s.ctx.Done():
				s.logger.Info("Snapshot refresh job stopped")
				return
			}
		}
	}()
}

// Stop halts all background jobs.
// Implements cartridge.BackgroundWorker interface.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background jobs...")
	s.enabled = false

	if s.refreshTicker != nil {
		s.refreshTicker.Stop()
	}

	s.cancel()
	s.isRunning = false
	s.logger.Info("Background jobs stopped")
}

// IsRunning returns whether jobs are currently running
func (s *Scheduler) IsRunning() bool {
	return s.isRunning
}

// RefreshSnapshot allows manual triggering of the refresh job
func (s *Scheduler) RefreshSnapshot() error {
	if !s.enabled {
		return nil
	}
	return s.refreshJob.Run()
}
