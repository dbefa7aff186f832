package service_test

import (
	"context"
	"testing"
	"time"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/logstatus"
	"github.com/limbo/missions/internal/service"
	"github.com/limbo/missions/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardCaching(t *testing.T) {
	f := newFixture(t, jan10)
	ctx := context.Background()
	sub := f.start(t, 1, "2024-01-01", "2024-01-10")

	first, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, first.Dashboard.Subscriptions, 1)
	assert.Equal(t, sub.ID, first.Dashboard.Subscriptions[0].ID)
	assert.EqualValues(t, 1, f.store.listCalls.Load())

	f.clock.Advance(30 * time.Second)
	second, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.StoredAt, second.StoredAt)
	assert.EqualValues(t, 1, f.store.listCalls.Load())

	refreshed, err := f.dash.GetDashboard(ctx, f.uid, true)
	require.NoError(t, err)
	assert.False(t, refreshed.FromCache)
	assert.True(t, refreshed.StoredAt.After(first.StoredAt))
	assert.EqualValues(t, 2, f.store.listCalls.Load())

	f.clock.Advance(f.cache.TTL() + time.Second)
	expired, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.False(t, expired.FromCache)
	assert.EqualValues(t, 3, f.store.listCalls.Load())
}

func TestGetDashboardSeesCompletionImmediately(t *testing.T) {
	f := newFixture(t, jan10)
	ctx := context.Background()
	sub := f.start(t, 1, "2024-01-01", "2024-01-10")

	before, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOngoing, before.Dashboard.Subscriptions[0].Status)

	_, err = f.missions.CompleteToday(ctx, sub.ID, f.uid)
	require.NoError(t, err)

	after, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.False(t, after.FromCache)
	got := after.Dashboard.Subscriptions[0]
	assert.Equal(t, entity.StatusCompleted, got.Status)
	last := got.Logs[len(got.Logs)-1]
	assert.True(t, last.Date.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, last.IsDone)
}

func TestGetDashboardInvalidatedDuringLoad(t *testing.T) {
	f := newFixture(t, jan10)
	ctx := context.Background()
	f.start(t, 1, "2024-01-01", "2024-01-10")

	key := service.DashboardKey(f.uid)
	f.store.onList = func() {
		f.store.onList = nil
		f.cache.Invalidate(key)
	}
	view, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.False(t, view.FromCache)
	require.Len(t, view.Dashboard.Subscriptions, 1)
	_, cached := f.cache.Get(key)
	assert.False(t, cached, "a load overtaken by an invalidation is not cached")

	again, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	assert.False(t, again.FromCache)
	assert.EqualValues(t, 2, f.store.listCalls.Load())
	_, cached = f.cache.Get(key)
	assert.True(t, cached)
}

func TestGetDashboardSettlesExpired(t *testing.T) {
	f := newFixture(t, jan10)
	ctx := context.Background()
	ended := f.start(t, 1, "2024-01-01", "2024-01-05")
	running := f.start(t, 2, "2024-01-01", "2024-01-20")

	view, err := f.dash.GetDashboard(ctx, f.uid, false)
	require.NoError(t, err)
	statuses := map[string]entity.Status{}
	for _, s := range view.Dashboard.Subscriptions {
		statuses[s.ID.String()] = s.Status
	}
	assert.Equal(t, entity.StatusCompleted, statuses[ended.ID.String()])
	assert.Equal(t, entity.StatusOngoing, statuses[running.ID.String()])
	assert.Zero(t, f.store.points(f.uid), "settling never credits the reward")
}

func TestCalendar(t *testing.T) {
	f := newFixture(t, time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	long := f.start(t, 1, "2024-02-01", "2024-02-10")
	f.start(t, 2, "2024-02-05", "2024-02-06")

	_, err := f.missions.CompleteToday(ctx, long.ID, f.uid)
	require.NoError(t, err)

	days, err := f.dash.Calendar(ctx, f.uid,
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []service.DayStatus{
		{Date: "2024-01-31", Status: logstatus.StatusEmpty},
		{Date: "2024-02-01", Status: logstatus.StatusFailed},
		{Date: "2024-02-02", Status: logstatus.StatusFailed},
		{Date: "2024-02-03", Status: logstatus.StatusFailed},
		{Date: "2024-02-04", Status: logstatus.StatusFailed},
		{Date: "2024-02-05", Status: logstatus.StatusPartial},
		{Date: "2024-02-06", Status: logstatus.StatusFuture},
		{Date: "2024-02-07", Status: logstatus.StatusFuture},
	}, days)
}

func TestCalendarRejectsBadRanges(t *testing.T) {
	f := newFixture(t, jan10)
	ctx := context.Background()

	_, err := f.dash.Calendar(ctx, f.uid, jan10, jan10.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, errorvalues.ErrInvalidInput)

	_, err = f.dash.Calendar(ctx, f.uid, jan10, jan10.AddDate(0, 0, service.MaxCalendarDays))
	assert.ErrorIs(t, err, errorvalues.ErrInvalidInput)

	days, err := f.dash.Calendar(ctx, f.uid, jan10, jan10.AddDate(0, 0, service.MaxCalendarDays-1))
	require.NoError(t, err)
	assert.Len(t, days, service.MaxCalendarDays)
}
