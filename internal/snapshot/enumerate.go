package snapshot

import (
	"sort"
	"strings"
	"time"
)

// Enumerator turns a raw directory listing into entries within a time range.
type Enumerator struct {
	// Extension is the image suffix to keep, e.g. ".png".
	Extension string
	// Location is the zone snapshot names are written in.
	Location *time.Location
}

// NewEnumerator returns an Enumerator for ext in loc. Empty ext means DefaultExtension.
func NewEnumerator(ext string, loc *time.Location) Enumerator {
	if ext == "" {
		ext = DefaultExtension
	}
	if loc == nil {
		loc = time.Local
	}
	return Enumerator{Extension: ext, Location: loc}
}

// Enumerate returns the entries with since <= timestamp <= to, newest first.
// names may be in any order. Names are YYYYMMDD_HHMM-prefixed, so a
// descending string sort is a newest-first sort and the walk stops at the
// first entry older than since.
func (en Enumerator) Enumerate(names []string, since, to time.Time) []Entry {
	files := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, en.Extension) {
			files = append(files, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	var out []Entry
	for _, name := range files {
		entry, ok := ParseFilename(name, en.Location)
		if !ok {
			continue
		}
		if entry.Timestamp.After(to) {
			continue
		}
		if entry.Timestamp.Before(since) {
			break
		}
		out = append(out, entry)
	}
	return out
}
