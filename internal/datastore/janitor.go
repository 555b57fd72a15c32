package datastore

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CursorPruner drops cursors that were not written since cutoff.
type CursorPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Janitor periodically expires idle session cursors and their mutexes.
type Janitor struct {
	store    CursorPruner
	locks    *SessionMutexManager
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewJanitor creates a janitor that removes sessions idle for longer than ttl
// every interval. locks may be nil.
func NewJanitor(store CursorPruner, locks *SessionMutexManager, ttl, interval time.Duration, logger zerolog.Logger) *Janitor {
	return &Janitor{
		store:    store,
		locks:    locks,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("component", "SessionJanitor").Logger(),
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			j.logger.Debug().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep expires everything idle since now - ttl.
func (j *Janitor) Sweep(ctx context.Context) {
	cutoff := j.now().Add(-j.ttl)

	removed, err := j.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to prune session cursors")
		return
	}

	pruned := 0
	if j.locks != nil {
		pruned = j.locks.PruneIdle(cutoff)
	}

	if removed > 0 || pruned > 0 {
		j.logger.Info().Int64("cursors", removed).Int("mutexes", pruned).Msg("Expired idle sessions")
	}
}
