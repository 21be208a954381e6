package service

import (
	"context"
	"time"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/pkg/utils"
)

type IUserService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	EnsureUser(ctx context.Context, username string) (*entity.User, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

// Login is deliberately credential-free: a username names a taste
// profile, not an account. First login creates the profile.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := utils.NormalizeUsername(req.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	created := false
	if user == nil {
		user = entity.NewUser(username, time.Now())
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		created = true
	}

	return &dto.LoginResponse{
		Username:      user.Username,
		Created:       created,
		LikesCount:    user.LikesCount,
		DislikesCount: user.DislikesCount,
	}, nil
}

func (s *userService) EnsureUser(ctx context.Context, username string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = entity.NewUser(username, time.Now())
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
