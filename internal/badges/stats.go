package badges

import (
	"time"

	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
)

const (
	StatMissionsCompleted = "missions_completed"
	StatMissionsOngoing   = "missions_ongoing"
	StatWeeklySuccess     = "weekly_success_count"
	StatMonthlySuccess    = "monthly_success_count"
	StatHasOngoing        = "has_ongoing_missions"
	StatPerfectWeek       = "perfect_week"

	categoryStatPrefix = "mission_type_"

	weekWindow  = 7
	monthWindow = 30
)

// Stats is a user's statistics snapshot, split by value kind.
type Stats struct {
	Ints  map[string]int
	Bools map[string]bool
}

func CategoryStat(c entity.Category) string {
	return categoryStatPrefix + string(c)
}

// ComputeStats builds the snapshot from the user's subscriptions with logs.
// A day is a success day when any log on it is done, whichever subscription
// it belongs to. The weekly and monthly windows are the 7 and 30 calendar
// days ending with today; later days are ignored.
func ComputeStats(subs []*entity.Subscription, today time.Time) Stats {
	today = calendar.Day(today)
	ints := map[string]int{
		StatMissionsCompleted: 0,
		StatMissionsOngoing:   0,
	}
	for _, c := range entity.Categories {
		ints[CategoryStat(c)] = 0
	}

	successDays := make(map[time.Time]struct{})
	for _, sub := range subs {
		switch sub.Status {
		case entity.StatusCompleted:
			ints[StatMissionsCompleted]++
			if sub.Template != nil {
				ints[CategoryStat(sub.Template.Category)]++
			}
		case entity.StatusOngoing:
			ints[StatMissionsOngoing]++
		}
		for _, l := range sub.Logs {
			if l.IsDone {
				successDays[calendar.Day(l.Date)] = struct{}{}
			}
		}
	}

	weekly, monthly := 0, 0
	for d := range successDays {
		age := calendar.DaysBetween(d, today)
		if age < 0 {
			continue
		}
		if age < weekWindow {
			weekly++
		}
		if age < monthWindow {
			monthly++
		}
	}
	ints[StatWeeklySuccess] = weekly
	ints[StatMonthlySuccess] = monthly

	return Stats{
		Ints: ints,
		Bools: map[string]bool{
			StatHasOngoing:  ints[StatMissionsOngoing] > 0,
			StatPerfectWeek: weekly == weekWindow,
		},
	}
}
