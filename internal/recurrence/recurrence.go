// Package recurrence decides which calendar dates a subscription is due on.
//
// All functions are pure: they read nothing but their arguments and are safe
// for any number of concurrent callers. Dates are normalised with calendar.Day,
// so callers may pass any time of day.
package recurrence

import (
	"fmt"
	"iter"
	"slices"
	"time"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
)

// Validate checks the recurrence rule of s. A reversed date range is not an
// error, it simply has no due dates.
func Validate(s entity.Schedule) error {
	switch s.RepeatType {
	case entity.RepeatDaily, entity.RepeatWeekly, entity.RepeatMonthly:
		return nil
	case entity.RepeatCustom:
		if len(s.RepeatDays) != entity.DaysInWeek {
			return fmt.Errorf("%w: custom repeat needs %d days, got %d",
				errorvalues.ErrInvalidSchedule, entity.DaysInWeek, len(s.RepeatDays))
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown repeat type %q", errorvalues.ErrInvalidSchedule, s.RepeatType)
	}
}

// IsDue reports whether s is due on date.
func IsDue(s entity.Schedule, date time.Time) (bool, error) {
	if err := Validate(s); err != nil {
		return false, err
	}
	return matches(s, calendar.Day(date)), nil
}

// DueDatesInRange yields the due dates of s within [from, to] in ascending
// order. The returned sequence can be ranged over any number of times.
func DueDatesInRange(s entity.Schedule, from, to time.Time) (iter.Seq[time.Time], error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	first, last := calendar.Day(from), calendar.Day(to)
	if start := calendar.Day(s.StartDate); first.Before(start) {
		first = start
	}
	if end := calendar.Day(s.EndDate); last.After(end) {
		last = end
	}
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !matches(s, d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// DueDates returns every due date of s between its start and end dates.
func DueDates(s entity.Schedule) ([]time.Time, error) {
	seq, err := DueDatesInRange(s, s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// matches expects a validated schedule and a normalised date.
func matches(s entity.Schedule, d time.Time) bool {
	start := calendar.Day(s.StartDate)
	if !calendar.Between(d, start, s.EndDate) {
		return false
	}
	switch s.RepeatType {
	case entity.RepeatDaily:
		return true
	case entity.RepeatWeekly:
		return calendar.DaysBetween(start, d)%7 == 0
	case entity.RepeatMonthly:
		// A month without the start day-of-month (the 31st in April) has no due date.
		return d.Day() == start.Day()
	case entity.RepeatCustom:
		return s.RepeatDays[calendar.Weekday(d)]
	}
	return false
}
