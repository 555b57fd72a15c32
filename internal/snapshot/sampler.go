package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
)

// Sampler downsamples newest-first entries to roughly one per interval minutes.
type Sampler struct {
	allowed []int
}

// NewSampler returns a Sampler accepting only the given resolutions (minutes).
func NewSampler(allowed []int) *Sampler {
	set := append([]int(nil), allowed...)
	sort.Ints(set)
	return &Sampler{allowed: set}
}

// Allowed returns the accepted resolutions in ascending order.
func (s *Sampler) Allowed() []int {
	return append([]int(nil), s.allowed...)
}

// Validate rejects resolutions outside the allowed set.
func (s *Sampler) Validate(interval int) error {
	for _, v := range s.allowed {
		if v == interval {
			return nil
		}
	}
	return common.NewConfigurationError("gallery", "interval",
		fmt.Sprintf("resolution %d is not allowed; must be one of: %s", interval, common.JoinInts(s.allowed)))
}

// Sample keeps the newest entry and then every entry at least interval
// minutes older than the previously kept one. It only selects existing
// entries, so irregular capture spacing yields approximate spacing.
func (s *Sampler) Sample(entries []Entry, interval int) ([]Entry, error) {
	if err := s.Validate(interval); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	delta := time.Duration(interval) * time.Minute
	last := entries[0].Timestamp.Add(delta)

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if last.Sub(e.Timestamp) < delta {
			continue
		}
		out = append(out, e)
		last = e.Timestamp
	}
	return out, nil
}
