package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/missions/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user and returns its generated id
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by uid, points included
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Removes user together with its subscriptions, logs and badges
	Delete(ctx context.Context, uid uuid.UUID) error
}

type TemplatesRepositoryI interface {
	// Lists the mission catalog ordered by id
	List(ctx context.Context) ([]entity.MissionTemplate, error)
	GetByID(ctx context.Context, id int) (*entity.MissionTemplate, error)
}

type SubscriptionsRepositoryI interface {
	// Creates subscription together with a not-done log row per due date in one transaction
	Create(ctx context.Context, sub *entity.Subscription, dueDates []time.Time) (uuid.UUID, error)
	// Returns subscription with its template, logs are not loaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	// Lists user's subscriptions with templates and logs nested
	ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Subscription, error)
	// Marks the day done and, for the terminal day, completes the subscription
	// and credits the reward. Reports whether this call made the transition.
	CompleteDay(ctx context.Context, params CompleteDayParams) (bool, error)
	// Completes user's ONGOING subscriptions that ended before today
	SettleExpired(ctx context.Context, uid uuid.UUID, today time.Time) (int64, error)
	// Deletes subscription and its logs
	Delete(ctx context.Context, id uuid.UUID) error
}

type BadgesRepositoryI interface {
	// Lists badge definitions ordered by id
	ListDefinitions(ctx context.Context) ([]entity.BadgeDefinition, error)
	// Returns ids of badges the user owns
	ListOwned(ctx context.Context, uid uuid.UUID) (map[int]struct{}, error)
	// Lists user's awards, newest first
	ListAwards(ctx context.Context, uid uuid.UUID) ([]entity.BadgeAward, error)
	// Inserts an award. False means the user already had it
	CreateAward(ctx context.Context, uid uuid.UUID, badgeID int) (bool, error)
}

type CompleteDayParams struct {
	SubscriptionID uuid.UUID
	UserID         uuid.UUID
	Date           time.Time
	// Terminal is set when Date is the subscription's end date.
	Terminal bool
	Reward   int
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
