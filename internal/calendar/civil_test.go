package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysFromCivilRoundTrip(t *testing.T) {
	dates := []DateOnly{
		{1970, 1, 1},
		{2000, 2, 29},
		{2025, 8, 31},
		{4, 1, 31},
		{1, 1, 1},
		{1899, 12, 31},
	}
	for _, d := range dates {
		got := civilFromDays(d.DayNumber())
		assert.Equal(t, d, got)
	}
	assert.Equal(t, int64(0), DateOnly{1970, 1, 1}.DayNumber())
	assert.Equal(t, int64(-1), DateOnly{1969, 12, 31}.DayNumber())
}

func TestDaysFromCivilMatchesTime(t *testing.T) {
	// Spot-check against the standard library over a leap boundary.
	start := time.Date(1999, time.December, 25, 0, 0, 0, 0, time.UTC)
	base := daysFromCivil(1999, 12, 25)
	for i := 0; i < 500; i++ {
		ts := start.AddDate(0, 0, i)
		y, m, d := ts.Date()
		require.Equal(t, base+int64(i), daysFromCivil(y, int(m), d), "%s", ts)
	}
}

func TestDateOnlyCompare(t *testing.T) {
	a := DateOnly{2025, 6, 21}
	assert.Equal(t, 0, a.Compare(DateOnly{2025, 6, 21}))
	assert.True(t, a.Before(DateOnly{2025, 6, 22}))
	assert.True(t, a.Before(DateOnly{2025, 7, 1}))
	assert.True(t, a.Before(DateOnly{2026, 1, 1}))
	assert.False(t, a.Before(DateOnly{2025, 6, 21}))
	assert.False(t, a.Before(DateOnly{2024, 12, 31}))
}

func TestLocalDateOffsets(t *testing.T) {
	// 2025-01-28 20:00 UTC is already Jan 29 in CST (+8) and still
	// Jan 28 in UTC and points west.
	instant := time.Date(2025, time.January, 28, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, DateOnly{2025, 1, 29}, localDate(instant, 8*3600))
	assert.Equal(t, DateOnly{2025, 1, 28}, localDate(instant, 0))
	assert.Equal(t, DateOnly{2025, 1, 28}, localDate(instant, -5*3600))

	hour, minute := localClock(instant, 8*3600)
	assert.Equal(t, 4, hour)
	assert.Equal(t, 0, minute)
}
