package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/logstatus"
	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/cache"
	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
	"github.com/limbo/missions/pkg/logging"
)

// MaxCalendarDays bounds a single calendar request.
const MaxCalendarDays = 366

type DashboardService struct {
	subs  repository.SubscriptionsRepositoryI
	cache *cache.Store
	clock clockwork.Clock
	group singleflight.Group
}

func NewDashboardService(subs repository.SubscriptionsRepositoryI, store *cache.Store, clock clockwork.Clock) *DashboardService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DashboardService{
		subs:  subs,
		cache: store,
		clock: clock,
	}
}

// GetDashboard serves the cached dashboard of uid. On a miss, or when refresh
// is set, expired subscriptions are settled and the dashboard is reloaded.
// Concurrent loads of the same cache generation share one database round trip,
// so a load started after an invalidation never joins an older one.
func (ds *DashboardService) GetDashboard(ctx context.Context, uid uuid.UUID, refresh bool) (*DashboardView, error) {
	key := DashboardKey(uid)
	if !refresh {
		if e, ok := ds.cache.Get(key); ok {
			if dash, ok := e.Value.(*entity.Dashboard); ok {
				return &DashboardView{Dashboard: dash, StoredAt: e.StoredAt, FromCache: true}, nil
			}
		}
	}
	gen := ds.cache.Generation(key)
	v, err, _ := ds.group.Do(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
		return ds.load(context.WithoutCancel(ctx), uid, gen)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DashboardView), nil
}

func (ds *DashboardService) load(ctx context.Context, uid uuid.UUID, gen uint64) (*DashboardView, error) {
	today := calendar.Day(ds.clock.Now())
	settled, err := ds.subs.SettleExpired(ctx, uid, today)
	if err != nil {
		return nil, err
	}
	if settled > 0 {
		logging.Ctx(ctx).Info().Int64("settled", settled).Msg("expired subscriptions completed")
	}
	subs, err := ds.subs.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	dash := &entity.Dashboard{UserID: uid, Subscriptions: subs}
	// A mutation that landed while this load ran has invalidated the key; the
	// snapshot is still returned but not cached.
	storedAt, ok := ds.cache.SetIfGeneration(DashboardKey(uid), dash, gen)
	if !ok {
		logging.Ctx(ctx).Debug().Msg("dashboard invalidated during load, not cached")
		storedAt = ds.clock.Now()
	}
	return &DashboardView{Dashboard: dash, StoredAt: storedAt}, nil
}

// Calendar aggregates the statuses of every day in [from, to] over all of
// uid's logs.
func (ds *DashboardService) Calendar(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]DayStatus, error) {
	from, to = calendar.Day(from), calendar.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before its start", errorvalues.ErrInvalidInput)
	}
	if calendar.DaysBetween(from, to) >= MaxCalendarDays {
		return nil, fmt.Errorf("%w: range is longer than %d days", errorvalues.ErrInvalidInput, MaxCalendarDays)
	}
	view, err := ds.GetDashboard(ctx, uid, false)
	if err != nil {
		return nil, err
	}
	logs := make([]entity.Log, 0)
	for _, sub := range view.Dashboard.Subscriptions {
		for _, l := range sub.Logs {
			if calendar.Between(l.Date, from, to) {
				logs = append(logs, l)
			}
		}
	}
	days := logstatus.Days(from, to)
	statuses := logstatus.Aggregate(logs, days, ds.clock.Now())
	result := make([]DayStatus, 0, len(days))
	for _, d := range days {
		result = append(result, DayStatus{Date: calendar.Format(d), Status: statuses[d]})
	}
	return result, nil
}
