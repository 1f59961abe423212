// Package store holds the in-memory event snapshot the analytics engine
// reads from. The snapshot is loaded from the database once, shared by
// reference across requests, and swapped atomically on reload.
package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/karloscodes/cartridge"

	"funnelpulse/internal/events"
)

// Store caches the full event set. Snapshot readers never block writers:
// Reload builds the new slice off to the side and swaps the pointer.
type Store struct {
	dbManager cartridge.DBManager
	logger    *slog.Logger

	snapshot atomic.Pointer[[]events.Event]
	loadMu   sync.Mutex
}

func New(dbManager cartridge.DBManager, logger *slog.Logger) *Store {
	return &Store{
		dbManager: dbManager,
		logger:    logger,
	}
}

// Snapshot returns the cached event set, loading it on first use. A load
// failure logs and returns an empty set without caching it, so the next
// call retries.
func (s *Store) Snapshot() []events.Event {
	if snap := s.snapshot.Load(); snap != nil {
		return *snap
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have loaded while we waited on the lock.
	if snap := s.snapshot.Load(); snap != nil {
		return *snap
	}

	loaded, err := events.LoadAll(s.dbManager.GetConnection())
	if err != nil {
		s.logger.Error("failed to load event snapshot", "error", err)
		return []events.Event{}
	}

	s.snapshot.Store(&loaded)
	s.logger.Info("event snapshot loaded", "events", len(loaded))
	return loaded
}

// Reload replaces the snapshot with a fresh read of the events table. The
// previous snapshot stays live for readers until the swap.
func (s *Store) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	loaded, err := events.LoadAll(s.dbManager.GetConnection())
	if err != nil {
		s.logger.Error("failed to reload event snapshot", "error", err)
		return err
	}

	s.snapshot.Store(&loaded)
	s.logger.Info("event snapshot reloaded", "events", len(loaded))
	return nil
}

// Invalidate drops the cached snapshot so the next Snapshot call reads
// from the database again.
func (s *Store) Invalidate() {
	s.snapshot.Store(nil)
}

// Len reports the size of the cached snapshot without triggering a load.
func (s *Store) Len() int {
	if snap := s.snapshot.Load(); snap != nil {
		return len(*snap)
	}
	return 0
}
