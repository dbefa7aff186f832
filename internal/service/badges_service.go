package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/entity"
)

type BadgesService struct {
	repo   repository.BadgesRepositoryI
	engine BadgeEvaluator
}

func NewBadgesService(repo repository.BadgesRepositoryI, engine BadgeEvaluator) *BadgesService {
	return &BadgesService{
		repo:   repo,
		engine: engine,
	}
}

// ListUserBadges returns uid's awards, newest first.
func (bs *BadgesService) ListUserBadges(ctx context.Context, uid uuid.UUID) ([]entity.BadgeAward, error) {
	return bs.repo.ListAwards(ctx, uid)
}

// Evaluate runs the badge engine on demand. Unlike the evaluation that follows
// a completion, failures are returned to the caller.
func (bs *BadgesService) Evaluate(ctx context.Context, uid uuid.UUID) ([]entity.BadgeDefinition, error) {
	return bs.engine.Evaluate(ctx, uid)
}
