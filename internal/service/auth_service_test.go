package service

import (
	"context"
	"testing"
	"time"

	"subtrack/internal/dto"
	"subtrack/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() *AuthService {
	return NewAuthService(newFakeUsers(), auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour), zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Ann@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, "ann@example.com", resp.User.Username)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 3600, resp.ExpiresIn)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "ann@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUserExists)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ANN@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ann@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
