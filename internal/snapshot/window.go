package snapshot

import (
	"fmt"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, common.NewValidationError("time_of_day", fmt.Sprintf("%d:%d", hour, minute), "hour must be 0-23 and minute 0-59")
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, common.WrapErrorf(err, "invalid time of day %q", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf extracts the time of day from t, dropping seconds.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes() < o.minutes() }

// After reports whether t is later in the day than o.
func (t TimeOfDay) After(o TimeOfDay) bool { return t.minutes() > o.minutes() }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors t to the calendar date of day, shifted by dayOffset days, in day's location.
func (t TimeOfDay) On(day time.Time, dayOffset int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+dayOffset, t.Hour, t.Minute, 0, 0, day.Location())
}

// Window is the recurring daily capture window. Start after End means the
// window crosses midnight (22:00 -> 07:00). Start == End is rejected.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewWindow builds a validated window.
func NewWindow(start, end TimeOfDay) (Window, error) {
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate rejects the degenerate start == end configuration, which could
// mean either the whole day or nothing.
func (w Window) Validate() error {
	if w.Start == w.End {
		return common.NewConfigurationError("gallery", "capture_window",
			fmt.Sprintf("capture start and end are both %s; a window must have distinct bounds", w.Start))
	}
	return nil
}

// CrossesMidnight reports whether the window wraps past 00:00.
func (w Window) CrossesMidnight() bool {
	return w.Start.After(w.End)
}

// Duration is the length of one occurrence of the window.
func (w Window) Duration() time.Duration {
	span := w.End.minutes() - w.Start.minutes()
	if span < 0 {
		span += minutesPerDay
	}
	return time.Duration(span) * time.Minute
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Contains reports whether t falls in the window, bounds included.
func (w Window) Contains(t TimeOfDay) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}
	if w.CrossesMidnight() {
		return !t.Before(w.Start) || !t.After(w.End), nil
	}
	return !t.Before(w.Start) && !t.After(w.End), nil
}

// ResolvedWindow is one occurrence of a Window anchored to calendar dates.
type ResolvedWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End].
func (r ResolvedWindow) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type resolveKey struct {
	inWindow    bool
	crosses     bool
	beforeStart bool
}

type dayOffsets struct {
	start int
	end   int
}

// resolveTable maps the state of "now" relative to the window onto the day
// offsets (from now's date) of the occurrence to use. A crossing window
// always ends on now's date, so in its evening part the occurrence is the
// one that ended this morning, not the one in progress. Combinations that
// cannot occur (a crossing window with now >= start is always in the window;
// a non-crossing window cannot contain a time before its start) are absent.
var resolveTable = map[resolveKey]dayOffsets{
	{inWindow: true, crosses: true, beforeStart: true}:    {start: -1, end: 0},
	{inWindow: true, crosses: true, beforeStart: false}:   {start: -1, end: 0},
	{inWindow: false, crosses: true, beforeStart: true}:   {start: -1, end: 0},
	{inWindow: true, crosses: false, beforeStart: false}:  {start: 0, end: 0},
	{inWindow: false, crosses: false, beforeStart: false}: {start: 0, end: 0},
	{inWindow: false, crosses: false, beforeStart: true}:  {start: -1, end: -1},
}

// Resolve anchors the window to a concrete occurrence. A same-day window
// uses today's occurrence unless now is before its start. A crossing window
// always runs from the previous date's start to now's date end, which in
// the evening part is the night that already finished.
func (w Window) Resolve(now time.Time) (ResolvedWindow, error) {
	tod := TimeOfDayOf(now)
	inWindow, err := w.Contains(tod)
	if err != nil {
		return ResolvedWindow{}, err
	}

	key := resolveKey{
		inWindow:    inWindow,
		crosses:     w.CrossesMidnight(),
		beforeStart: tod.Before(w.Start),
	}
	offsets, ok := resolveTable[key]
	if !ok {
		return ResolvedWindow{}, common.NewConfigurationError("gallery", "capture_window",
			fmt.Sprintf("cannot resolve window %s at %s", w, now.Format(time.RFC3339)))
	}

	resolved := ResolvedWindow{
		Start: w.Start.On(now, offsets.start),
		End:   w.End.On(now, offsets.end),
	}
	if !resolved.Start.Before(resolved.End) {
		return ResolvedWindow{}, common.NewConfigurationError("gallery", "capture_window",
			fmt.Sprintf("window %s resolved to an empty range at %s", w, now.Format(time.RFC3339)))
	}
	return resolved, nil
}
