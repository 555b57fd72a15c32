package datastore

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type sessionMutex struct {
	mu       *sync.Mutex
	lastUsed atomic.Int64 // unix nanoseconds
}

// SessionMutexManager hands out one mutex per session so a session's cursor
// read-modify-write runs as one unit.
type SessionMutexManager struct {
	mutexes map[string]*sessionMutex
	mapLock sync.RWMutex
	enabled bool
	now     func() time.Time
	logger  zerolog.Logger
}

// NewSessionMutexManager creates a new session mutex manager
func NewSessionMutexManager(enabled bool, logger zerolog.Logger) *SessionMutexManager {
	return &SessionMutexManager{
		mutexes: make(map[string]*sessionMutex),
		enabled: enabled,
		now:     time.Now,
		logger:  logger.With().Str("component", "SessionMutexManager").Logger(),
	}
}

// GetMutex returns the mutex for sessionID, creating it on first use.
func (m *SessionMutexManager) GetMutex(sessionID string) *sync.Mutex {
	if !m.enabled {
		// Fresh mutex per call: safe to lock, serializes nothing.
		return &sync.Mutex{}
	}

	// The touch happens under the read lock so PruneIdle cannot drop a mutex
	// that was just handed out.
	m.mapLock.RLock()
	entry, exists := m.mutexes[sessionID]
	if exists {
		entry.lastUsed.Store(m.now().UnixNano())
	}
	m.mapLock.RUnlock()

	if exists {
		return entry.mu
	}

	m.mapLock.Lock()
	defer m.mapLock.Unlock()

	// Double-check after acquiring write lock
	if entry, exists := m.mutexes[sessionID]; exists {
		entry.lastUsed.Store(m.now().UnixNano())
		return entry.mu
	}

	entry = &sessionMutex{mu: &sync.Mutex{}}
	entry.lastUsed.Store(m.now().UnixNano())
	m.mutexes[sessionID] = entry
	return entry.mu
}

// PruneIdle drops mutexes not handed out since cutoff and not currently held.
// It returns the number removed.
func (m *SessionMutexManager) PruneIdle(cutoff time.Time) int {
	if !m.enabled {
		return 0
	}

	m.mapLock.Lock()
	defer m.mapLock.Unlock()

	removed := 0
	for id, entry := range m.mutexes {
		if entry.lastUsed.Load() >= cutoff.UnixNano() {
			continue
		}
		if !entry.mu.TryLock() {
			continue
		}
		delete(m.mutexes, id)
		entry.mu.Unlock()
		removed++
	}

	m.logger.Debug().
		Int("removed", removed).
		Int("active_mutexes", len(m.mutexes)).
		Msg("Pruned idle session mutexes")
	return removed
}

// Len is the number of tracked sessions.
func (m *SessionMutexManager) Len() int {
	m.mapLock.RLock()
	defer m.mapLock.RUnlock()
	return len(m.mutexes)
}
