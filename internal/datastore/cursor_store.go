package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/snapgallery/internal/gallery"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteCursorStore keeps one pagination cursor per session in SQLite.
type SQLiteCursorStore struct {
	db       *sql.DB
	location *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSQLiteCursorStore opens (or creates) the database at path and ensures the schema.
// Timestamps are read back in loc.
func NewSQLiteCursorStore(path string, loc *time.Location, logger zerolog.Logger) (*SQLiteCursorStore, error) {
	logger = logger.With().Str("component", "SQLiteCursorStore").Logger()
	logger.Info().Str("db_path", path).Msg("Initializing session database connection")

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create session database directory")
		return nil, fmt.Errorf("failed to create session database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error().Err(err).Str("db_path", path).Msg("Failed to open session database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	dbInstance.SetMaxOpenConns(1)

	if loc == nil {
		loc = time.Local
	}
	store := &SQLiteCursorStore{
		db:       dbInstance,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", path).Msg("Session database initialized and schema verified")
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteCursorStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the session_cursors table if it doesn't already exist.
func (s *SQLiteCursorStore) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS session_cursors (
		session_id TEXT PRIMARY KEY,
		last_timestamp INTEGER,
		anchor INTEGER NOT NULL,
		interval_minutes INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_cursors_updated_at ON session_cursors (updated_at);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	s.logger.Debug().Msg("Schema initialized (session_cursors table ensured)")
	return nil
}

// Get returns the cursor stored for sessionID. ok is false when there is none.
func (s *SQLiteCursorStore) Get(ctx context.Context, sessionID string) (gallery.Cursor, bool, error) {
	query := `SELECT last_timestamp, anchor, interval_minutes FROM session_cursors WHERE session_id = ?`

	var (
		last     sql.NullInt64
		anchor   int64
		interval int
	)
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&last, &anchor, &interval)
	if errors.Is(err, sql.ErrNoRows) {
		return gallery.Cursor{}, false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to query cursor")
		return gallery.Cursor{}, false, fmt.Errorf("failed to query cursor for session %s: %w", sessionID, err)
	}

	cursor := gallery.Cursor{
		Anchor:   time.Unix(anchor, 0).In(s.location),
		Interval: interval,
	}
	if last.Valid {
		cursor.LastTimestamp = time.Unix(last.Int64, 0).In(s.location)
	}
	return cursor, true, nil
}

// Set upserts the cursor for sessionID and refreshes its last-used time.
func (s *SQLiteCursorStore) Set(ctx context.Context, sessionID string, cursor gallery.Cursor) error {
	query := `
	INSERT INTO session_cursors (session_id, last_timestamp, anchor, interval_minutes, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		last_timestamp = excluded.last_timestamp,
		anchor = excluded.anchor,
		interval_minutes = excluded.interval_minutes,
		updated_at = excluded.updated_at`

	last := sql.NullInt64{Int64: cursor.LastTimestamp.Unix(), Valid: !cursor.LastTimestamp.IsZero()}
	_, err := s.db.ExecContext(ctx, query, sessionID, last, cursor.Anchor.Unix(), cursor.Interval, s.now().Unix())
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to store cursor")
		return fmt.Errorf("failed to store cursor for session %s: %w", sessionID, err)
	}
	return nil
}

// DeleteOlderThan prunes sessions whose cursor was last written before cutoff.
func (s *SQLiteCursorStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM session_cursors WHERE updated_at < ?`, cutoff.Unix())
	if err != nil {
		s.logger.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to prune session cursors")
		return 0, fmt.Errorf("failed to prune session cursors: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	s.logger.Info().Int64("removed", n).Time("cutoff", cutoff).Msg("Pruned stale session cursors")
	return n, nil
}
