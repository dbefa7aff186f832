package calendar_test

import (
	"testing"
	"time"

	"github.com/limbo/missions/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	// 2024-02-05 03:00 in Seoul is still 2024-02-04 in UTC
	got := calendar.Day(time.Date(2024, 2, 5, 3, 0, 0, 0, seoul))
	assert.Equal(t, time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, got == calendar.Day(got))
}

func TestParseAndFormat(t *testing.T) {
	d, err := calendar.Parse("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-01-10", calendar.Format(d))

	_, err = calendar.Parse("10/01/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 9, calendar.DaysBetween(a, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, calendar.DaysBetween(a, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	// across the leap day
	assert.Equal(t, 29, calendar.DaysBetween(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	// wider than a time.Duration can hold
	old := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
	far := calendar.AddDays(old, 140000)
	assert.Equal(t, 140000, calendar.DaysBetween(old, far))
	assert.Equal(t, -140000, calendar.DaysBetween(far, old))
	assert.Equal(t, 3652058, calendar.DaysBetween(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekdayAndBetween(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, calendar.Weekday(monday))
	assert.Equal(t, 0, calendar.Weekday(calendar.AddDays(monday, 6)))

	assert.True(t, calendar.Between(monday, monday, monday))
	assert.False(t, calendar.Between(calendar.AddDays(monday, 1), monday, monday))
	assert.False(t, calendar.Between(monday, calendar.AddDays(monday, 1), monday))
}
