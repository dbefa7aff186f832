package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

type SubscriptionsRepository struct {
	conn PgConnection
}

func NewSubscriptionsRepoWithConn(conn PgConnection) *SubscriptionsRepository {
	return &SubscriptionsRepository{
		conn: conn,
	}
}

func (sr *SubscriptionsRepository) Create(ctx context.Context, sub *entity.Subscription, dueDates []time.Time) (uuid.UUID, error) {
	if sub == nil {
		return uuid.Nil, errors.New("subscription is nil")
	}
	var id uuid.UUID
	err := inTx(ctx, sr.conn, func(tx pgx.Tx) error {
		row := tx.QueryRow(
			ctx,
			`INSERT INTO subscriptions (user_id, template_id, start_date, end_date, repeat_type, repeat_days, status) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at;`,
			sub.UserID,
			sub.TemplateID,
			sub.StartDate,
			sub.EndDate,
			sub.RepeatType,
			sub.RepeatDays,
			sub.Status,
		)
		if err := row.Scan(&id, &sub.CreatedAt); err != nil {
			switch pgCode(err) {
			case codeUniqueViolation:
				return errorvalues.ErrSubscriptionExists
			case codeFKViolation:
				return errorvalues.ErrTemplateNotFound
			}
			return storageErr("creating subscription", err)
		}
		if len(dueDates) == 0 {
			return nil
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO subscription_logs (subscription_id, log_date) SELECT $1, d FROM unnest($2::date[]) AS d;`,
			id,
			dueDates,
		)
		if err != nil {
			return storageErr("creating subscription logs", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	sub.ID = id
	return id, nil
}

func (sr *SubscriptionsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	sub := entity.Subscription{ID: id, Template: &entity.MissionTemplate{}}
	row := sr.conn.QueryRow(
		ctx,
		`SELECT s.user_id, s.template_id, s.start_date, s.end_date, s.repeat_type, s.repeat_days, s.status, s.created_at, t.title, t.description, t.category, t.reward_points FROM subscriptions s JOIN mission_templates t ON t.id = s.template_id WHERE s.id = $1;`,
		id,
	)
	err := row.Scan(
		&sub.UserID, &sub.TemplateID, &sub.StartDate, &sub.EndDate, &sub.RepeatType, &sub.RepeatDays, &sub.Status, &sub.CreatedAt,
		&sub.Template.Title, &sub.Template.Description, &sub.Template.Category, &sub.Template.RewardPoints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSubscriptionNotFound
		}
		return nil, storageErr("getting subscription by id", err)
	}
	sub.Template.ID = sub.TemplateID
	return &sub, nil
}

func (sr *SubscriptionsRepository) ListByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Subscription, error) {
	rows, err := sr.conn.Query(
		ctx,
		`SELECT s.id, s.template_id, s.start_date, s.end_date, s.repeat_type, s.repeat_days, s.status, s.created_at, t.title, t.description, t.category, t.reward_points FROM subscriptions s JOIN mission_templates t ON t.id = s.template_id WHERE s.user_id = $1 ORDER BY s.created_at, s.id;`,
		uid,
	)
	if err != nil {
		return nil, storageErr("listing subscriptions", err)
	}
	result := make([]*entity.Subscription, 0, 4)
	byID := make(map[uuid.UUID]*entity.Subscription)
	for rows.Next() {
		sub := &entity.Subscription{UserID: uid, Template: &entity.MissionTemplate{}, Logs: []entity.Log{}}
		err = rows.Scan(
			&sub.ID, &sub.TemplateID, &sub.StartDate, &sub.EndDate, &sub.RepeatType, &sub.RepeatDays, &sub.Status, &sub.CreatedAt,
			&sub.Template.Title, &sub.Template.Description, &sub.Template.Category, &sub.Template.RewardPoints,
		)
		if err != nil {
			rows.Close()
			return nil, storageErr("subscription row parsing", err)
		}
		sub.Template.ID = sub.TemplateID
		result = append(result, sub)
		byID[sub.ID] = sub
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, storageErr("unexpected subscription rows", err)
	}
	if len(result) == 0 {
		return result, nil
	}

	logRows, err := sr.conn.Query(
		ctx,
		`SELECT l.subscription_id, l.log_date, l.is_done FROM subscription_logs l JOIN subscriptions s ON s.id = l.subscription_id WHERE s.user_id = $1 ORDER BY l.log_date;`,
		uid,
	)
	if err != nil {
		return nil, storageErr("listing subscription logs", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		var l entity.Log
		if err = logRows.Scan(&l.SubscriptionID, &l.Date, &l.IsDone); err != nil {
			return nil, storageErr("subscription log row parsing", err)
		}
		if sub, ok := byID[l.SubscriptionID]; ok {
			sub.Logs = append(sub.Logs, l)
		}
	}
	if err = logRows.Err(); err != nil {
		return nil, storageErr("unexpected subscription log rows", err)
	}
	return result, nil
}

func (sr *SubscriptionsRepository) CompleteDay(ctx context.Context, params CompleteDayParams) (bool, error) {
	transitioned := false
	err := inTx(ctx, sr.conn, func(tx pgx.Tx) error {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO subscription_logs (subscription_id, log_date, is_done) VALUES ($1, $2, TRUE) ON CONFLICT (subscription_id, log_date) DO UPDATE SET is_done = TRUE;`,
			params.SubscriptionID,
			params.Date,
		)
		if err != nil {
			if pgCode(err) == codeFKViolation {
				return errorvalues.ErrSubscriptionNotFound
			}
			return storageErr("marking day done", err)
		}
		if !params.Terminal {
			return nil
		}
		// Concurrent completions serialize on the row lock; only one sees a row affected.
		ct, err := tx.Exec(
			ctx,
			`UPDATE subscriptions SET status = 'COMPLETED' WHERE id = $1 AND status <> 'COMPLETED';`,
			params.SubscriptionID,
		)
		if err != nil {
			return storageErr("completing subscription", err)
		}
		if ct.RowsAffected() == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, `UPDATE users SET points = points + $1 WHERE id = $2;`, params.Reward, params.UserID)
		if err != nil {
			return storageErr("crediting reward points", err)
		}
		transitioned = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return transitioned, nil
}

func (sr *SubscriptionsRepository) SettleExpired(ctx context.Context, uid uuid.UUID, today time.Time) (int64, error) {
	ct, err := sr.conn.Exec(
		ctx,
		`UPDATE subscriptions SET status = 'COMPLETED' WHERE user_id = $1 AND status = 'ONGOING' AND end_date < $2;`,
		uid,
		today,
	)
	if err != nil {
		return 0, storageErr("settling expired subscriptions", err)
	}
	return ct.RowsAffected(), nil
}

func (sr *SubscriptionsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return inTx(ctx, sr.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM subscription_logs WHERE subscription_id = $1;`, id); err != nil {
			return storageErr("deleting subscription logs", err)
		}
		ct, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1;`, id)
		if err != nil {
			return storageErr("deleting subscription", err)
		}
		if ct.RowsAffected() == 0 {
			return errorvalues.ErrSubscriptionNotFound
		}
		return nil
	})
}
