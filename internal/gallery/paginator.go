// Package gallery drives paging through the snapshots of one capture window.
package gallery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/snapshot"
	"github.com/rs/zerolog"
)

// Lister returns the raw filenames of the snapshot directory, in any order.
type Lister interface {
	ListFilenames(ctx context.Context) ([]string, error)
}

// Settings holds the page layout.
type Settings struct {
	PageSize       int
	RowWidth       int
	ImageURLPrefix string
}

// Paginator computes gallery pages. It keeps no state between calls; the
// cursor is passed in and handed back.
type Paginator struct {
	settings   Settings
	window     snapshot.Window
	sampler    *snapshot.Sampler
	enumerator snapshot.Enumerator
	lister     Lister
	logger     zerolog.Logger
}

// NewPaginator validates the layout and window and returns a Paginator.
func NewPaginator(settings Settings, window snapshot.Window, sampler *snapshot.Sampler, enumerator snapshot.Enumerator, lister Lister, logger zerolog.Logger) (*Paginator, error) {
	if settings.PageSize <= 0 {
		return nil, common.NewConfigurationError("gallery", "page_size", fmt.Sprintf("must be positive, got %d", settings.PageSize))
	}
	if settings.RowWidth <= 0 {
		return nil, common.NewConfigurationError("gallery", "row_width", fmt.Sprintf("must be positive, got %d", settings.RowWidth))
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil || lister == nil {
		return nil, common.NewError("paginator requires a sampler and a lister")
	}

	return &Paginator{
		settings:   settings,
		window:     window,
		sampler:    sampler,
		enumerator: enumerator,
		lister:     lister,
		logger:     logger.With().Str("component", "Paginator").Logger(),
	}, nil
}

// Window returns the configured capture window.
func (p *Paginator) Window() snapshot.Window {
	return p.window
}

// FirstPage returns the newest page of the window occurrence for now.
// The returned cursor is anchored at now.
func (p *Paginator) FirstPage(ctx context.Context, now time.Time, interval int) (Page, Cursor, error) {
	if err := p.sampler.Validate(interval); err != nil {
		return Page{}, Cursor{}, err
	}

	resolved, err := p.window.Resolve(now)
	if err != nil {
		return Page{}, Cursor{}, err
	}

	upper := now
	if resolved.End.Before(upper) {
		upper = resolved.End
	}

	start := Cursor{Anchor: now, Interval: interval}
	return p.collect(ctx, resolved.Start, upper, start)
}

// NextPage continues from cursor. The window is re-resolved against the
// cursor's anchor, never the wall clock.
func (p *Paginator) NextPage(ctx context.Context, cursor Cursor) (Page, Cursor, error) {
	if err := p.sampler.Validate(cursor.Interval); err != nil {
		return Page{}, Cursor{}, err
	}
	if cursor.Exhausted() {
		return emptyPage(), cursor, nil
	}

	resolved, err := p.window.Resolve(cursor.Anchor)
	if err != nil {
		return Page{}, Cursor{}, err
	}

	// Strictly older than the last delivered entry; names have minute precision.
	upper := cursor.LastTimestamp.Add(-time.Minute)
	if upper.Before(resolved.Start) {
		return emptyPage(), cursor, nil
	}

	return p.collect(ctx, resolved.Start, upper, cursor)
}

func (p *Paginator) collect(ctx context.Context, since, to time.Time, prev Cursor) (Page, Cursor, error) {
	names, err := p.lister.ListFilenames(ctx)
	if err != nil {
		return Page{}, Cursor{}, common.WrapError(err, "failed to list snapshots")
	}

	entries := p.enumerator.Enumerate(names, since, to)
	p.logger.Debug().
		Int("listed", len(names)).
		Int("in_range", len(entries)).
		Time("since", since).
		Time("to", to).
		Msg("Enumerated snapshots")

	if len(entries) == 0 {
		return emptyPage(), prev, nil
	}

	sampled, err := p.sampler.Sample(entries, prev.Interval)
	if err != nil {
		return Page{}, Cursor{}, err
	}

	outcome := OutcomeLast
	if len(sampled) > p.settings.PageSize {
		sampled = sampled[:p.settings.PageSize]
		outcome = OutcomeMore
	}

	items := make([]Item, 0, len(sampled))
	for _, e := range sampled {
		items = append(items, p.item(e))
	}

	next := Cursor{
		LastTimestamp: sampled[len(sampled)-1].Timestamp,
		Anchor:        prev.Anchor,
		Interval:      prev.Interval,
	}
	page := Page{
		Rows:       snapshot.GroupRows(items, p.settings.RowWidth),
		IsLastPage: outcome == OutcomeLast,
		Outcome:    outcome,
	}
	return page, next, nil
}

func (p *Paginator) item(e snapshot.Entry) Item {
	prefix := strings.TrimSuffix(p.settings.ImageURLPrefix, "/")
	return Item{
		Entry: e,
		Label: e.Label(),
		URL:   prefix + "/" + e.Filename,
	}
}
