package contract

import (
	"context"

	"music-match-be/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
