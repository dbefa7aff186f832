package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/pkg/cache"
	"github.com/limbo/missions/pkg/entity"
	"github.com/limbo/missions/pkg/logging"
)

type UserService struct {
	repo  repository.UsersRepositoryI
	cache *cache.Store
}

// NewUserService builds the service. store may be nil when no dashboard cache
// is in use.
func NewUserService(usersRepo repository.UsersRepositoryI, store *cache.Store) *UserService {
	return &UserService{
		repo:  usersRepo,
		cache: store,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := &entity.User{Name: req.Name}
	id, err := us.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	logging.Ctx(ctx).Info().Str("uid", id.String()).Msg("user registered")
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return us.repo.FindByID(ctx, id)
}

// DeleteAccount removes uid with all of its data and drops its cached
// dashboard.
func (us *UserService) DeleteAccount(ctx context.Context, uid uuid.UUID) error {
	if err := us.repo.Delete(ctx, uid); err != nil {
		return err
	}
	if us.cache != nil {
		us.cache.Invalidate(DashboardKey(uid))
	}
	logging.Ctx(ctx).Info().Str("uid", uid.String()).Msg("account deleted")
	return nil
}
