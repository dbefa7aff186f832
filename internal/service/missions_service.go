package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/limbo/missions/internal/badges"
	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/recurrence"
	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/cache"
	"github.com/limbo/missions/pkg/calendar"
	"github.com/limbo/missions/pkg/entity"
	"github.com/limbo/missions/pkg/logging"
	"github.com/limbo/missions/pkg/metrics"
)

// MaxSubscriptionDays bounds the number of days, and so of log rows, a
// subscription may span.
const MaxSubscriptionDays = 366

type BadgeEvaluator interface {
	Evaluate(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error)
}

var _ BadgeEvaluator = (*badges.Engine)(nil)

type MissionsService struct {
	users     repository.UsersRepositoryI
	templates repository.TemplatesRepositoryI
	subs      repository.SubscriptionsRepositoryI
	badges    BadgeEvaluator
	cache     *cache.Store
	clock     clockwork.Clock
}

type MissionsDeps struct {
	Users     repository.UsersRepositoryI
	Templates repository.TemplatesRepositoryI
	Subs      repository.SubscriptionsRepositoryI
	Badges    BadgeEvaluator
	Cache     *cache.Store
	Clock     clockwork.Clock
}

func NewMissionsService(deps MissionsDeps) *MissionsService {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	return &MissionsService{
		users:     deps.Users,
		templates: deps.Templates,
		subs:      deps.Subs,
		badges:    deps.Badges,
		cache:     deps.Cache,
		clock:     deps.Clock,
	}
}

func (ms *MissionsService) ListTemplates(ctx context.Context) ([]entity.MissionTemplate, error) {
	return ms.templates.List(ctx)
}

func (ms *MissionsService) StartSubscription(ctx context.Context, uid uuid.UUID, req *StartSubscriptionRequest) (*entity.Subscription, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", errorvalues.ErrInvalidInput)
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	start, err := calendar.Parse(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errorvalues.ErrInvalidInput, err)
	}
	end, err := calendar.Parse(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errorvalues.ErrInvalidInput, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			errorvalues.ErrInvalidInput, req.EndDate, req.StartDate)
	}
	if calendar.DaysBetween(start, end) >= MaxSubscriptionDays {
		return nil, fmt.Errorf("%w: subscription is longer than %d days", errorvalues.ErrInvalidInput, MaxSubscriptionDays)
	}
	schedule := entity.Schedule{
		StartDate:  start,
		EndDate:    end,
		RepeatType: req.RepeatType,
		RepeatDays: entity.EmptyWeek(),
	}
	if req.RepeatType == entity.RepeatCustom {
		copy(schedule.RepeatDays, req.RepeatDays)
	}
	dueDates, err := recurrence.DueDates(schedule)
	if err != nil {
		return nil, err
	}

	if _, err = ms.users.FindByID(ctx, uid); err != nil {
		return nil, err
	}
	tmpl, err := ms.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	sub := &entity.Subscription{
		UserID:     uid,
		TemplateID: tmpl.ID,
		Template:   tmpl,
		Schedule:   schedule,
		Status:     entity.StatusOngoing,
	}
	if _, err = ms.subs.Create(ctx, sub, dueDates); err != nil {
		return nil, err
	}
	sub.Logs = make([]entity.Log, 0, len(dueDates))
	for _, d := range dueDates {
		sub.Logs = append(sub.Logs, entity.Log{SubscriptionID: sub.ID, Date: d})
	}
	ms.cache.Invalidate(DashboardKey(uid))
	logging.Ctx(ctx).Info().
		Str("subscription_id", sub.ID.String()).
		Int("mission_id", tmpl.ID).
		Int("due_dates", len(dueDates)).
		Msg("subscription started")
	return sub, nil
}

// CompleteToday marks today's log done. When today is the subscription's end
// date the subscription moves to COMPLETED, the reward is credited and badges
// are evaluated, all of it at most once however many calls race.
func (ms *MissionsService) CompleteToday(ctx context.Context, subscriptionID, uid uuid.UUID) (*CompletionResult, error) {
	sub, err := ms.ownedSubscription(ctx, subscriptionID, uid)
	if err != nil {
		return nil, err
	}
	today := calendar.Day(ms.clock.Now())
	reward := 0
	if sub.Template != nil {
		reward = sub.Template.RewardPoints
	}
	transitioned, err := ms.subs.CompleteDay(ctx, repository.CompleteDayParams{
		SubscriptionID: sub.ID,
		UserID:         uid,
		Date:           today,
		Terminal:       today.Equal(calendar.Day(sub.EndDate)),
		Reward:         reward,
	})
	if err != nil {
		return nil, err
	}
	ms.cache.Invalidate(DashboardKey(uid))

	logger := logging.Ctx(ctx).With().Str("subscription_id", sub.ID.String()).Logger()
	result := &CompletionResult{Completed: transitioned, NewBadges: []entity.BadgeDefinition{}}
	if !transitioned {
		metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeDayDone).Inc()
		logger.Info().Str("date", calendar.Format(today)).Msg("day marked done")
		return result, nil
	}
	metrics.CompletionsTotal.WithLabelValues(metrics.OutcomeMissionCompleted).Inc()
	logger.Info().Int("reward", reward).Msg("mission completed")

	awarded, err := ms.badges.Evaluate(ctx, uid)
	if err != nil {
		metrics.BadgeEvaluationFailuresTotal.Inc()
		logger.Error().Err(err).Msg("badge evaluation after completion failed")
		return result, nil
	}
	result.NewBadges = awarded
	return result, nil
}

func (ms *MissionsService) DeleteSubscription(ctx context.Context, subscriptionID, uid uuid.UUID) error {
	if _, err := ms.ownedSubscription(ctx, subscriptionID, uid); err != nil {
		return err
	}
	if err := ms.subs.Delete(ctx, subscriptionID); err != nil {
		return err
	}
	ms.cache.Invalidate(DashboardKey(uid))
	logging.Ctx(ctx).Info().Str("subscription_id", subscriptionID.String()).Msg("subscription deleted")
	return nil
}

func (ms *MissionsService) DueDates(ctx context.Context, subscriptionID, uid uuid.UUID, from, to time.Time) ([]time.Time, error) {
	sub, err := ms.ownedSubscription(ctx, subscriptionID, uid)
	if err != nil {
		return nil, err
	}
	seq, err := recurrence.DueDatesInRange(sub.Schedule, from, to)
	if err != nil {
		return nil, err
	}
	dates := slices.Collect(seq)
	if dates == nil {
		dates = []time.Time{}
	}
	return dates, nil
}

func (ms *MissionsService) ownedSubscription(ctx context.Context, subscriptionID, uid uuid.UUID) (*entity.Subscription, error) {
	sub, err := ms.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return sub, nil
}
