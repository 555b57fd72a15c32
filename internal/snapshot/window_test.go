package snapshot

import (
	"testing"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("22:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 22, Minute: 5}, v)
	assert.Equal(t, "22:05", v.String())

	for _, bad := range []string{"", "24:00", "7", "07:60", "ab:cd"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewTimeOfDay(t *testing.T) {
	_, err := NewTimeOfDay(23, 59)
	assert.NoError(t, err)

	_, err = NewTimeOfDay(24, 0)
	assert.Error(t, err)
	_, err = NewTimeOfDay(0, -1)
	assert.Error(t, err)
}

func TestNewWindow_RejectsDegenerate(t *testing.T) {
	_, err := NewWindow(TimeOfDay{Hour: 7}, TimeOfDay{Hour: 7})
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))

	var cfgErr *common.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "capture_window", cfgErr.Field)
}

func TestWindow_Contains_NonCrossingMatchesInterval(t *testing.T) {
	w, err := NewWindow(TimeOfDay{Hour: 9, Minute: 30}, TimeOfDay{Hour: 17})
	require.NoError(t, err)
	assert.False(t, w.CrossesMidnight())

	for m := 0; m < minutesPerDay; m++ {
		now := TimeOfDay{Hour: m / 60, Minute: m % 60}
		got, err := w.Contains(now)
		require.NoError(t, err)
		want := m >= 9*60+30 && m <= 17*60
		assert.Equal(t, want, got, now.String())
	}
}

func TestWindow_Contains_Crossing(t *testing.T) {
	w, err := NewWindow(TimeOfDay{Hour: 22}, TimeOfDay{Hour: 7})
	require.NoError(t, err)
	assert.True(t, w.CrossesMidnight())

	for m := 0; m < minutesPerDay; m++ {
		now := TimeOfDay{Hour: m / 60, Minute: m % 60}
		got, err := w.Contains(now)
		require.NoError(t, err)
		want := m >= 22*60 || m <= 7*60
		assert.Equal(t, want, got, now.String())
	}
}

func TestWindow_Contains_Degenerate(t *testing.T) {
	w := Window{Start: TimeOfDay{Hour: 3}, End: TimeOfDay{Hour: 3}}
	_, err := w.Contains(TimeOfDay{Hour: 3})
	assert.True(t, common.IsConfigurationError(err))
}

func TestWindow_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "crossing, inside, morning part",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 4, 7, 6, 59),
			wantStart: at(2021, 4, 6, 22, 0),
			wantEnd:   at(2021, 4, 7, 7, 0),
		},
		{
			name:      "crossing, inside, exactly at end",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 4, 7, 7, 0),
			wantStart: at(2021, 4, 6, 22, 0),
			wantEnd:   at(2021, 4, 7, 7, 0),
		},
		{
			name:      "crossing, inside, evening part",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 4, 7, 23, 15),
			wantStart: at(2021, 4, 6, 22, 0),
			wantEnd:   at(2021, 4, 7, 7, 0),
		},
		{
			name:      "crossing, inside, exactly at start",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 4, 7, 22, 0),
			wantStart: at(2021, 4, 6, 22, 0),
			wantEnd:   at(2021, 4, 7, 7, 0),
		},
		{
			name:      "crossing, outside, uses last night",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 4, 7, 12, 0),
			wantStart: at(2021, 4, 6, 22, 0),
			wantEnd:   at(2021, 4, 7, 7, 0),
		},
		{
			name:      "crossing, outside, month boundary",
			start:     "22:00",
			end:       "07:00",
			now:       at(2021, 3, 1, 8, 0),
			wantStart: at(2021, 2, 28, 22, 0),
			wantEnd:   at(2021, 3, 1, 7, 0),
		},
		{
			name:      "same day, inside",
			start:     "09:00",
			end:       "17:00",
			now:       at(2021, 4, 7, 12, 0),
			wantStart: at(2021, 4, 7, 9, 0),
			wantEnd:   at(2021, 4, 7, 17, 0),
		},
		{
			name:      "same day, after today's window",
			start:     "09:00",
			end:       "17:00",
			now:       at(2021, 4, 7, 20, 0),
			wantStart: at(2021, 4, 7, 9, 0),
			wantEnd:   at(2021, 4, 7, 17, 0),
		},
		{
			name:      "same day, before today's window",
			start:     "09:00",
			end:       "17:00",
			now:       at(2021, 4, 7, 8, 0),
			wantStart: at(2021, 4, 6, 9, 0),
			wantEnd:   at(2021, 4, 6, 17, 0),
		},
		{
			name:      "same day, year boundary",
			start:     "09:00",
			end:       "17:00",
			now:       at(2021, 1, 1, 1, 0),
			wantStart: at(2020, 12, 31, 9, 0),
			wantEnd:   at(2020, 12, 31, 17, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(tod(t, tt.start), tod(t, tt.end))
			require.NoError(t, err)

			got, err := w.Resolve(tt.now)
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(got.Start), "start: got %s want %s", got.Start, tt.wantStart)
			assert.True(t, tt.wantEnd.Equal(got.End), "end: got %s want %s", got.End, tt.wantEnd)
			assert.True(t, got.Start.Before(got.End))
		})
	}
}

func TestWindow_Resolve_InWindowScenario(t *testing.T) {
	w, err := NewWindow(TimeOfDay{Hour: 22}, TimeOfDay{Hour: 7})
	require.NoError(t, err)
	now := at(2021, 4, 7, 6, 59)

	inWindow, err := w.Contains(TimeOfDayOf(now))
	require.NoError(t, err)
	assert.True(t, inWindow)

	got, err := w.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, at(2021, 4, 6, 22, 0), got.Start)
	assert.Equal(t, at(2021, 4, 7, 7, 0), got.End)
	assert.True(t, got.Contains(now))
}

func TestWindow_Resolve_NeverStartsInFutureAndAlwaysOrdered(t *testing.T) {
	windows := [][2]string{{"22:00", "07:00"}, {"09:00", "17:00"}, {"00:00", "23:59"}, {"23:59", "00:00"}, {"12:00", "11:59"}}
	day := at(2021, 4, 7, 0, 0)

	for _, pair := range windows {
		w, err := NewWindow(tod(t, pair[0]), tod(t, pair[1]))
		require.NoError(t, err)

		for m := 0; m < minutesPerDay; m += 13 {
			now := day.Add(time.Duration(m) * time.Minute)
			got, err := w.Resolve(now)
			require.NoError(t, err, "%s at %s", w, now)
			assert.True(t, got.Start.Before(got.End), "%s at %s", w, now)
			assert.False(t, got.Start.After(now), "%s at %s starts in the future", w, now)
			assert.Equal(t, w.Duration(), got.End.Sub(got.Start), "%s at %s", w, now)

			// Only the morning part of a crossing window, or a same-day window
			// in progress, resolves to an occurrence containing now.
			inWindow, _ := w.Contains(TimeOfDayOf(now))
			eveningPart := w.CrossesMidnight() && !TimeOfDayOf(now).Before(w.Start)
			assert.Equal(t, inWindow && !eveningPart, got.Contains(now), "%s at %s", w, now)
			if !got.Contains(now) {
				assert.True(t, got.End.Before(now), "%s at %s ends in the future", w, now)
			}
		}
	}
}

func TestWindow_Resolve_Degenerate(t *testing.T) {
	w := Window{Start: TimeOfDay{Hour: 22}, End: TimeOfDay{Hour: 22}}
	_, err := w.Resolve(at(2021, 4, 7, 22, 0))
	assert.True(t, common.IsConfigurationError(err))
}
