package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/snapshot"
	"github.com/rs/zerolog"
)

// ErrNoCursor is returned by LoadMore when the session never opened the gallery.
var ErrNoCursor = errors.New("no pagination cursor for session")

// CursorStore persists one cursor per session.
type CursorStore interface {
	Get(ctx context.Context, sessionID string) (Cursor, bool, error)
	Set(ctx context.Context, sessionID string, cursor Cursor) error
}

// SessionLocker hands out one mutex per session id.
type SessionLocker interface {
	GetMutex(key string) *sync.Mutex
}

// Clock returns the current time.
type Clock func() time.Time

// Service binds the paginator to session cursors. Each call holds the
// session's mutex across read, compute and write, and writes the cursor only
// after the page was computed.
type Service struct {
	paginator       *Paginator
	store           CursorStore
	locks           SessionLocker
	clock           Clock
	defaultInterval int
	logger          zerolog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides time.Now, e.g. to pin "now" for a demo data set.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService creates a Service. defaultInterval must be an allowed resolution.
func NewService(paginator *Paginator, store CursorStore, locks SessionLocker, defaultInterval int, logger zerolog.Logger, opts ...ServiceOption) (*Service, error) {
	if paginator == nil || store == nil || locks == nil {
		return nil, common.NewError("gallery service requires a paginator, a cursor store and a session locker")
	}
	if err := paginator.sampler.Validate(defaultInterval); err != nil {
		return nil, err
	}

	s := &Service{
		paginator:       paginator,
		store:           store,
		locks:           locks,
		clock:           time.Now,
		defaultInterval: defaultInterval,
		logger:          logger.With().Str("component", "GalleryService").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DefaultInterval is the resolution used when a request names none.
func (s *Service) DefaultInterval() int {
	return s.defaultInterval
}

// Resolutions lists the allowed resolutions in ascending order.
func (s *Service) Resolutions() []int {
	return s.paginator.sampler.Allowed()
}

// Window is the nightly capture window pages are cut from.
func (s *Service) Window() snapshot.Window {
	return s.paginator.Window()
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock()
}

// Open starts a fresh pagination for the session at the current time and
// returns the first page. interval <= 0 selects the default resolution.
func (s *Service) Open(ctx context.Context, sessionID string, interval int) (Page, error) {
	if interval <= 0 {
		interval = s.defaultInterval
	}

	mu := s.locks.GetMutex(sessionID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock()
	page, cursor, err := s.paginator.FirstPage(ctx, now, interval)
	if err != nil {
		return Page{}, err
	}

	if err := s.store.Set(ctx, sessionID, cursor); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to store cursor")
		return Page{}, common.WrapError(err, "failed to store pagination cursor")
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("interval", interval).
		Int("items", page.Len()).
		Str("outcome", page.Outcome.String()).
		Msg("Opened gallery")
	return page, nil
}

// LoadMore returns the page after the session's cursor and advances it.
// An empty page leaves the stored cursor untouched.
func (s *Service) LoadMore(ctx context.Context, sessionID string) (Page, error) {
	mu := s.locks.GetMutex(sessionID)
	mu.Lock()
	defer mu.Unlock()

	cursor, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load cursor")
		return Page{}, common.WrapError(err, "failed to load pagination cursor")
	}
	if !ok {
		return Page{}, ErrNoCursor
	}

	page, next, err := s.paginator.NextPage(ctx, cursor)
	if err != nil {
		return Page{}, err
	}

	if page.Outcome != OutcomeEmpty {
		if err := s.store.Set(ctx, sessionID, next); err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to store cursor")
			return Page{}, common.WrapError(err, "failed to store pagination cursor")
		}
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("items", page.Len()).
		Str("outcome", page.Outcome.String()).
		Msg("Loaded more snapshots")
	return page, nil
}
