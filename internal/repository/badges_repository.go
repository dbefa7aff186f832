package repository

import (
	"context"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

type BadgesRepository struct {
	conn PgConnection
}

func NewBadgesRepoWithConn(conn PgConnection) *BadgesRepository {
	return &BadgesRepository{
		conn: conn,
	}
}

func (br *BadgesRepository) ListDefinitions(ctx context.Context) ([]entity.BadgeDefinition, error) {
	rows, err := br.conn.Query(ctx, `SELECT id, title, description, condition, rank FROM badges ORDER BY id;`)
	if err != nil {
		return nil, storageErr("listing badge definitions", err)
	}
	defer rows.Close()
	result := make([]entity.BadgeDefinition, 0, 8)
	for rows.Next() {
		var def entity.BadgeDefinition
		if err = rows.Scan(&def.ID, &def.Title, &def.Description, &def.Condition, &def.Rank); err != nil {
			return nil, storageErr("badge definition row parsing", err)
		}
		result = append(result, def)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("unexpected badge definition rows", err)
	}
	return result, nil
}

func (br *BadgesRepository) ListOwned(ctx context.Context, uid uuid.UUID) (map[int]struct{}, error) {
	rows, err := br.conn.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1;`, uid)
	if err != nil {
		return nil, storageErr("listing owned badges", err)
	}
	defer rows.Close()
	owned := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, storageErr("owned badge row parsing", err)
		}
		owned[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("unexpected owned badge rows", err)
	}
	return owned, nil
}

func (br *BadgesRepository) ListAwards(ctx context.Context, uid uuid.UUID) ([]entity.BadgeAward, error) {
	rows, err := br.conn.Query(
		ctx,
		`SELECT b.id, b.title, b.description, b.rank, ub.awarded_at FROM user_badges ub JOIN badges b ON b.id = ub.badge_id WHERE ub.user_id = $1 ORDER BY ub.awarded_at DESC, b.id;`,
		uid,
	)
	if err != nil {
		return nil, storageErr("listing badge awards", err)
	}
	defer rows.Close()
	result := make([]entity.BadgeAward, 0, 4)
	for rows.Next() {
		award := entity.BadgeAward{UserID: uid}
		if err = rows.Scan(&award.Badge.ID, &award.Badge.Title, &award.Badge.Description, &award.Badge.Rank, &award.AwardedAt); err != nil {
			return nil, storageErr("badge award row parsing", err)
		}
		result = append(result, award)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("unexpected badge award rows", err)
	}
	return result, nil
}

func (br *BadgesRepository) CreateAward(ctx context.Context, uid uuid.UUID, badgeID int) (bool, error) {
	ct, err := br.conn.Exec(
		ctx,
		`INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2) ON CONFLICT (user_id, badge_id) DO NOTHING;`,
		uid,
		badgeID,
	)
	if err != nil {
		if pgCode(err) == codeFKViolation {
			return false, errorvalues.ErrUserNotFound
		}
		return false, storageErr("creating badge award", err)
	}
	return ct.RowsAffected() == 1, nil
}
