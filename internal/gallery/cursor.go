package gallery

import "time"

// Cursor is the pagination state carried between "load more" requests.
// It is owned by the session store; the paginator only reads and returns it.
type Cursor struct {
	// LastTimestamp is the oldest entry already delivered. Zero when nothing was delivered.
	LastTimestamp time.Time `json:"last_timestamp"`
	// Anchor is the "now" of the first page. Later pages resolve the window
	// against it so a session keeps paging through the same night.
	Anchor time.Time `json:"anchor"`
	// Interval is the sampling resolution in minutes.
	Interval int `json:"interval"`
}

// IsZero reports whether the cursor was never set.
func (c Cursor) IsZero() bool {
	return c.Anchor.IsZero() && c.LastTimestamp.IsZero() && c.Interval == 0
}

// Exhausted reports whether the cursor has no delivered entry to page from.
func (c Cursor) Exhausted() bool {
	return c.LastTimestamp.IsZero()
}
