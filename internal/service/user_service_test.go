package service

import (
	"context"
	"errors"
	"testing"

	"music-match-be/internal/dto"
	"music-match-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCreatesProfileOnce(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := NewUserService(factory)
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.LoginRequest{Username: "  Alice "})
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	assert.True(t, first.Created)

	second, err := svc.Login(ctx, &dto.LoginRequest{Username: "ALICE"})
	require.NoError(t, err)
	assert.Equal(t, "alice", second.Username)
	assert.False(t, second.Created)

	count, err := factory.uow.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLoginRejectsBlankUsername(t *testing.T) {
	svc := NewUserService(newFakeRepoFactory())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "   "})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}
