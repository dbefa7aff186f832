package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	if user == nil {
		return uuid.Nil, errors.New("user is nil")
	}
	var id uuid.UUID
	row := ur.conn.QueryRow(ctx, `INSERT INTO users (name) VALUES ($1) RETURNING id;`, user.Name)
	if err := row.Scan(&id); err != nil {
		if pgCode(err) == codeUniqueViolation {
			return uuid.Nil, errorvalues.ErrUserExists
		}
		return uuid.Nil, storageErr("creating user", err)
	}
	return id, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, name, points FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&user.ID, &user.Name, &user.Points); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, storageErr("searching user by id", err)
	}
	return &user, nil
}

// Delete removes the user with every subscription, log and badge award in one
// transaction.
func (ur *UsersRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	return inTx(ctx, ur.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM subscription_logs WHERE subscription_id IN (SELECT id FROM subscriptions WHERE user_id = $1);`, uid); err != nil {
			return storageErr("deleting user logs", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_badges WHERE user_id = $1;`, uid); err != nil {
			return storageErr("deleting user badges", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1;`, uid); err != nil {
			return storageErr("deleting user subscriptions", err)
		}
		ct, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1;`, uid)
		if err != nil {
			return storageErr("deleting user", err)
		}
		if ct.RowsAffected() == 0 {
			return errorvalues.ErrUserNotFound
		}
		return nil
	})
}
