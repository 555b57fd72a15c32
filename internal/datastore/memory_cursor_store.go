package datastore

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/snapgallery/internal/gallery"
)

type memoryRecord struct {
	cursor    gallery.Cursor
	updatedAt time.Time
}

// MemoryCursorStore is a process-local cursor store. Sessions do not survive restarts.
type MemoryCursorStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

// NewMemoryCursorStore returns an empty store.
func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

func (s *MemoryCursorStore) Get(ctx context.Context, sessionID string) (gallery.Cursor, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	return rec.cursor, ok, nil
}

func (s *MemoryCursorStore) Set(ctx context.Context, sessionID string, cursor gallery.Cursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = memoryRecord{cursor: cursor, updatedAt: s.now()}
	return nil
}

func (s *MemoryCursorStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, rec := range s.records {
		if rec.updatedAt.Before(cutoff) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op.
func (s *MemoryCursorStore) Close() error { return nil }
