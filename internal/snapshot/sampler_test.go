package snapshot

import (
	"testing"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultResolutions = []int{1, 2, 5, 10, 15}

func entriesAt(times ...time.Time) []Entry {
	out := make([]Entry, 0, len(times))
	for _, ts := range times {
		out = append(out, Entry{Filename: ts.Format(TimestampLayout) + DefaultExtension, Timestamp: ts})
	}
	return out
}

func tenMinutes() []Entry {
	var times []time.Time
	for m := 10; m >= 1; m-- {
		times = append(times, at(2021, 1, 1, 0, m))
	}
	return entriesAt(times...)
}

func TestSampler_IntervalTwoScenario(t *testing.T) {
	s := NewSampler(defaultResolutions)

	got, err := s.Sample(tenMinutes(), 2)
	require.NoError(t, err)

	var minutes []int
	for _, e := range got {
		minutes = append(minutes, e.Timestamp.Minute())
	}
	assert.Equal(t, []int{10, 8, 6, 4, 2}, minutes)
}

func TestSampler_IntervalOneIsIdentity(t *testing.T) {
	s := NewSampler(defaultResolutions)
	src := tenMinutes()

	got, err := s.Sample(src, 1)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestSampler_RejectsUnknownResolution(t *testing.T) {
	s := NewSampler(defaultResolutions)

	for _, interval := range []int{0, 3, -1, 60} {
		got, err := s.Sample(tenMinutes(), interval)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, common.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "1, 2, 5, 10, 15")
	}
}

func TestSampler_EmptyInput(t *testing.T) {
	s := NewSampler(defaultResolutions)

	got, err := s.Sample(nil, 5)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSampler_IrregularSpacing(t *testing.T) {
	s := NewSampler(defaultResolutions)
	src := entriesAt(
		at(2021, 4, 7, 6, 59),
		at(2021, 4, 7, 6, 57),
		at(2021, 4, 7, 6, 56),
		at(2021, 4, 7, 6, 50),
		at(2021, 4, 7, 6, 49),
		at(2021, 4, 7, 6, 45),
		at(2021, 4, 7, 6, 41),
	)

	got, err := s.Sample(src, 5)
	require.NoError(t, err)

	assert.Equal(t, entriesAt(at(2021, 4, 7, 6, 59), at(2021, 4, 7, 6, 50), at(2021, 4, 7, 6, 45)), got)
}

func TestSampler_Properties(t *testing.T) {
	s := NewSampler(defaultResolutions)

	// Irregular source: gaps of 1, 2 and 3 minutes repeating.
	var times []time.Time
	ts := at(2021, 4, 7, 7, 0)
	for i := 0; i < 300; i++ {
		times = append(times, ts)
		ts = ts.Add(-time.Duration(1+i%3) * time.Minute)
	}
	src := entriesAt(times...)

	for _, interval := range defaultResolutions {
		got, err := s.Sample(src, interval)
		require.NoError(t, err)
		require.NotEmpty(t, got)

		assert.Equal(t, src[0], got[0], "interval %d must keep the newest entry", interval)

		// Subsequence check.
		j := 0
		for _, e := range src {
			if j < len(got) && e == got[j] {
				j++
			}
		}
		assert.Equal(t, len(got), j, "interval %d output is not a subsequence", interval)

		for i := 1; i < len(got); i++ {
			gap := got[i-1].Timestamp.Sub(got[i].Timestamp)
			assert.GreaterOrEqual(t, gap, time.Duration(interval)*time.Minute, "interval %d at %d", interval, i)
		}
	}
}

func TestSampler_AllowedIsSortedCopy(t *testing.T) {
	s := NewSampler([]int{15, 1, 5})
	allowed := s.Allowed()
	assert.Equal(t, []int{1, 5, 15}, allowed)

	allowed[0] = 99
	assert.Equal(t, []int{1, 5, 15}, s.Allowed())
}
