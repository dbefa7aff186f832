package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RepeatType string

const (
	RepeatDaily   RepeatType = "DAILY"
	RepeatWeekly  RepeatType = "WEEKLY"
	RepeatMonthly RepeatType = "MONTHLY"
	RepeatCustom  RepeatType = "CUSTOM"
)

type Status string

const (
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

type Category string

const (
	CategoryHealth          Category = "HEALTH"
	CategorySelfDevelopment Category = "SELF_DEVELOPMENT"
	CategoryProductivity    Category = "PRODUCTIVITY"
	CategoryMindfulness     Category = "MINDFULNESS"
	CategoryRelationship    Category = "RELATIONSHIP"
)

// Categories lists the fixed category enum in a stable order.
var Categories = []Category{
	CategoryHealth,
	CategorySelfDevelopment,
	CategoryProductivity,
	CategoryMindfulness,
	CategoryRelationship,
}

// DaysInWeek is the length of a repeat-days mask, Sunday=0..Saturday=6.
const DaysInWeek = 7

type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Points int       `json:"points"`
}

type MissionTemplate struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     Category `json:"category"`
	RewardPoints int      `json:"reward_points"`
}

// Schedule is the date range plus recurrence rule of a subscription.
type Schedule struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	RepeatType RepeatType `json:"repeat_type"`
	RepeatDays []bool     `json:"repeat_days"`
}

type Subscription struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"uid"`
	TemplateID int              `json:"mission_id"`
	Template   *MissionTemplate `json:"mission,omitempty"`
	Schedule
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Logs      []Log     `json:"logs"`
}

type Log struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	Date           time.Time `json:"date"`
	IsDone         bool      `json:"is_done"`
}

type BadgeDefinition struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Condition   json.RawMessage `json:"-"`
	Rank        int             `json:"rank"`
}

type BadgeAward struct {
	UserID    uuid.UUID       `json:"uid"`
	Badge     BadgeDefinition `json:"badge"`
	AwardedAt time.Time       `json:"awarded_at"`
}

// Dashboard is the aggregate read model served from the cache.
type Dashboard struct {
	UserID        uuid.UUID       `json:"uid"`
	Subscriptions []*Subscription `json:"missions"`
}

// EmptyWeek returns a mask with every day switched off.
func EmptyWeek() []bool {
	return make([]bool, DaysInWeek)
}
