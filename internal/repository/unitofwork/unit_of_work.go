package unitofwork

import (
	"context"

	"music-match-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TrackRepository() contract.TrackRepository
	SwipeRepository() contract.SwipeRepository
}
