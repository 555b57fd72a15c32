// Package snapshot holds the time-window, enumeration, sampling and row
// grouping logic behind the gallery. Everything here is pure computation
// over filenames and timestamps; directory access lives in snapdir.
package snapshot

import (
	"strings"
	"time"
)

const (
	// TimestampLayout is the stem format of every snapshot filename (YYYYMMDD_HHMM).
	TimestampLayout = "20060102_1504"
	// DefaultExtension is the image extension written by the capture job.
	DefaultExtension = ".png"
	// LabelLayout renders the 12-hour clock label shown under each image, e.g. "06:59 AM".
	LabelLayout = "03:04 PM"
)

// Entry is a snapshot file whose name parsed into a timestamp.
type Entry struct {
	Filename  string
	Timestamp time.Time
}

// ParseFilename splits name on its first "." and parses the stem with
// TimestampLayout in loc (time.Local when nil). ok is false for anything
// that is not a snapshot name; callers skip those silently.
func ParseFilename(name string, loc *time.Location) (Entry, bool) {
	if loc == nil {
		loc = time.Local
	}

	stem, _, _ := strings.Cut(name, ".")
	if len(stem) != len(TimestampLayout) {
		return Entry{}, false
	}

	ts, err := time.ParseInLocation(TimestampLayout, stem, loc)
	if err != nil {
		return Entry{}, false
	}
	entry := Entry{Filename: name, Timestamp: ts}
	// Zone transitions can shift a wall-clock time; such names do not round-trip.
	if entry.Stem() != stem {
		return Entry{}, false
	}
	return entry, true
}

// Stem formats the timestamp back into the filename stem.
func (e Entry) Stem() string {
	return e.Timestamp.Format(TimestampLayout)
}

// Label is the display label for the entry.
func (e Entry) Label() string {
	return e.Timestamp.Format(LabelLayout)
}
