package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO users (name) VALUES ($1) RETURNING id;`)
	user := &entity.User{Name: "test_name"}
	uid := uuid.New()
	testCases := []struct {
		Desc         string
		User         *entity.User
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc: "successful",
			User: user,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(user.Name).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uid))
			},
		},
		{
			Desc:  "unique violation",
			User:  user,
			Error: errorvalues.ErrUserExists,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(user.Name).WillReturnError(&pgconn.PgError{Code: "23505"})
			},
		},
		{
			Desc:  "db error",
			User:  user,
			Error: errorvalues.ErrStorage,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(user.Name).WillReturnError(errors.New("db error"))
			},
		},
		{
			Desc:         "nil user",
			Error:        errors.New("user is nil"),
			MockPrepFunc: func() {},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			id, err := repo.Create(ctx, tc.User)
			if tc.Error != nil {
				if errors.Is(tc.Error, errorvalues.ErrStorage) || errors.Is(tc.Error, errorvalues.ErrUserExists) {
					assert.ErrorIs(t, err, tc.Error)
				} else {
					assert.EqualError(t, err, tc.Error.Error())
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, uid, id)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, name, points FROM users WHERE id = $1;`)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "points"}).AddRow(userID, "test_name", 300))
		user, err := repo.FindByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, entity.User{ID: userID, Name: "test_name", Points: 300}, *user)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
		assert.ErrorIs(t, err, errorvalues.ErrNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(errors.New("db error"))
		_, err := repo.FindByID(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrStorage)
		assert.ErrorContains(t, err, "searching user by id error: db error")
	})
}

func TestDeleteUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewUsersRepoWithConn(mock)
	deleteLogs := regexp.QuoteMeta(`DELETE FROM subscription_logs WHERE subscription_id IN (SELECT id FROM subscriptions WHERE user_id = $1);`)
	deleteBadges := regexp.QuoteMeta(`DELETE FROM user_badges WHERE user_id = $1;`)
	deleteSubs := regexp.QuoteMeta(`DELETE FROM subscriptions WHERE user_id = $1;`)
	deleteUser := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogs).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 12))
		mock.ExpectExec(deleteBadges).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(deleteSubs).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(deleteUser).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()
		assert.NoError(t, repo.Delete(ctx, userID))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogs).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(deleteBadges).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(deleteSubs).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(deleteUser).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()
		err := repo.Delete(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogs).WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(deleteBadges).WithArgs(userID).WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		err := repo.Delete(ctx, userID)
		assert.ErrorIs(t, err, errorvalues.ErrStorage)
		assert.ErrorContains(t, err, "deleting user badges error: db error")
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
