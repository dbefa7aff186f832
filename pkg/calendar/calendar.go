// Package calendar works with calendar dates represented as time.Time values
// pinned to 00:00:00 UTC. Every date that enters or leaves the missions core
// goes through Day so that equal dates compare equal with ==.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the YYYY-MM-DD wire format of a date.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day returns the UTC calendar date of t.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date as a UTC calendar date.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Format renders the calendar date of t in Layout.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// DaysBetween returns the number of whole days from a to b, negative when b is before a.
// It counts on Unix day numbers, so spans wider than a time.Duration still hold.
func DaysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / secondsPerDay)
}

// AddDays moves the calendar date of t by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// Weekday index with Sunday=0..Saturday=6.
func Weekday(t time.Time) int {
	return int(Day(t).Weekday())
}

// Between reports whether from <= t <= to on the calendar.
func Between(t, from, to time.Time) bool {
	t = Day(t)
	return !t.Before(Day(from)) && !t.After(Day(to))
}
