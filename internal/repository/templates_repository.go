package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	errorvalues "github.com/limbo/missions/internal/error_values"
	"github.com/limbo/missions/pkg/entity"
)

type TemplatesRepository struct {
	conn PgConnection
}

func NewTemplatesRepoWithConn(conn PgConnection) *TemplatesRepository {
	return &TemplatesRepository{
		conn: conn,
	}
}

func (tr *TemplatesRepository) List(ctx context.Context) ([]entity.MissionTemplate, error) {
	rows, err := tr.conn.Query(ctx, `SELECT id, title, description, category, reward_points FROM mission_templates ORDER BY id;`)
	if err != nil {
		return nil, storageErr("listing mission templates", err)
	}
	defer rows.Close()
	result := make([]entity.MissionTemplate, 0, 12)
	for rows.Next() {
		var tmpl entity.MissionTemplate
		if err = rows.Scan(&tmpl.ID, &tmpl.Title, &tmpl.Description, &tmpl.Category, &tmpl.RewardPoints); err != nil {
			return nil, storageErr("mission template row parsing", err)
		}
		result = append(result, tmpl)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("unexpected mission template rows", err)
	}
	return result, nil
}

func (tr *TemplatesRepository) GetByID(ctx context.Context, id int) (*entity.MissionTemplate, error) {
	tmpl := entity.MissionTemplate{ID: id}
	row := tr.conn.QueryRow(ctx, `SELECT title, description, category, reward_points FROM mission_templates WHERE id = $1;`, id)
	if err := row.Scan(&tmpl.Title, &tmpl.Description, &tmpl.Category, &tmpl.RewardPoints); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTemplateNotFound
		}
		return nil, storageErr("getting mission template by id", err)
	}
	return &tmpl, nil
}
