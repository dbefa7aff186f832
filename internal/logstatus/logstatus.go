// Package logstatus reduces per-day completion logs into the status shown on
// the calendar.
package logstatus

import (
	"time"

	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
)

type Status string

const (
	StatusEmpty     Status = "empty"
	StatusFuture    Status = "future"
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// ForDay reduces the logs of a single day. The first matching rule wins:
// future, completed, partial, failed, empty.
func ForDay(logs []entity.Log, isFutureDay bool) Status {
	done := 0
	for _, l := range logs {
		if l.IsDone {
			done++
		}
	}
	return reduce(len(logs), done, isFutureDay)
}

func reduce(total, done int, isFutureDay bool) Status {
	switch {
	case total == 0:
		return StatusEmpty
	case isFutureDay:
		return StatusFuture
	case done == total:
		return StatusCompleted
	case done > 0:
		return StatusPartial
	default:
		return StatusFailed
	}
}

type tally struct {
	total, done int
}

// Aggregate computes the status of every day in days. Logs are grouped by
// calendar date first, so the order of logs does not affect the result.
// A day strictly after today is a future day.
func Aggregate(logs []entity.Log, days []time.Time, today time.Time) map[time.Time]Status {
	byDay := make(map[time.Time]tally, len(days))
	for _, l := range logs {
		d := calendar.Day(l.Date)
		t := byDay[d]
		t.total++
		if l.IsDone {
			t.done++
		}
		byDay[d] = t
	}
	today = calendar.Day(today)
	result := make(map[time.Time]Status, len(days))
	for _, day := range days {
		d := calendar.Day(day)
		t := byDay[d]
		result[d] = reduce(t.total, t.done, d.After(today))
	}
	return result
}

// Days lists every calendar date in [from, to]. A reversed range is empty.
func Days(from, to time.Time) []time.Time {
	first, last := calendar.Day(from), calendar.Day(to)
	if last.Before(first) {
		return nil
	}
	days := make([]time.Time, 0, calendar.DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
