package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/limbo/missions/internal/logstatus"
	"github.com/limbo/missions/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_services.go -package=mocks

type RegisterRequest struct {
	Name string `validate:"required,alphanum_underscore,min=3,max=100"`
}

type StartSubscriptionRequest struct {
	TemplateID int               `json:"mission_id" validate:"required,min=1"`
	StartDate  string            `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string            `json:"end_date" validate:"required,datetime=2006-01-02"`
	RepeatType entity.RepeatType `json:"repeat_type" validate:"required,oneof=DAILY WEEKLY MONTHLY CUSTOM"`
	// Only read for CUSTOM, other types are stored with every day off
	RepeatDays []bool `json:"repeat_days" validate:"required_if=RepeatType CUSTOM,omitempty,weekmask"`
}

type CompletionResult struct {
	// Completed is true only for the call that moved the subscription to COMPLETED
	Completed bool                     `json:"completed"`
	NewBadges []entity.BadgeDefinition `json:"new_badges"`
}

type DashboardView struct {
	Dashboard *entity.Dashboard
	StoredAt  time.Time
	FromCache bool
}

type DayStatus struct {
	Date   string           `json:"date"`
	Status logstatus.Status `json:"status"`
}

type UserServiceI interface {
	// Validates name and creates user. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Removes the user with subscriptions, logs and badges
	DeleteAccount(ctx context.Context, uid uuid.UUID) error
}

type MissionsServiceI interface {
	// Lists mission catalog
	ListTemplates(ctx context.Context) ([]entity.MissionTemplate, error)
	// Enrolls user into a mission, generating a log row per due date
	StartSubscription(ctx context.Context, uid uuid.UUID, req *StartSubscriptionRequest) (*entity.Subscription, error)
	// Marks today done; on the end date completes the mission exactly once
	CompleteToday(ctx context.Context, subscriptionID, uid uuid.UUID) (*CompletionResult, error)
	// Deletes subscription with its logs
	DeleteSubscription(ctx context.Context, subscriptionID, uid uuid.UUID) error
	// Lists due dates of user's subscription within [from, to]
	DueDates(ctx context.Context, subscriptionID, uid uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type DashboardServiceI interface {
	// Returns user's subscriptions with logs, served from cache unless refresh is set
	GetDashboard(ctx context.Context, uid uuid.UUID, refresh bool) (*DashboardView, error)
	// Returns per-day statuses over user's logs for [from, to]
	Calendar(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]DayStatus, error)
}

type BadgesServiceI interface {
	ListUserBadges(ctx context.Context, uid uuid.UUID) ([]entity.BadgeAward, error)
	Evaluate(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error)
}

// DashboardKey is the cache key of uid's dashboard.
func DashboardKey(uid uuid.UUID) string {
	return fmt.Sprintf("missions-%s", uid)
}
