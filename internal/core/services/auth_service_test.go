package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/platform/config"
	"github.com/SscSPs/propease_crm/internal/repositories/memory"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	now  time.Time
	auth portssvc.AuthSvcFacade
	cfg  *config.Config
	user *domain.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store, err := memory.NewStore("")
	require.NoError(t, err)
	repos := memory.NewRepositoryProvider(store)

	af := &authFixture{
		now: time.Now(),
		cfg: &config.Config{
			JWTSecret:                  "test-secret",
			JWTExpiryDuration:          15 * time.Minute,
			JWTIssuer:                  "propease-test",
			RefreshTokenExpiryDuration: 24 * time.Hour,
		},
	}
	clock := services.WithClock(func() time.Time { return af.now })

	users := services.NewUserService(repos.UserRepo, clock)
	af.user, err = users.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "priya",
		Password: "secret123",
		Name:     "Priya Sales",
		Email:    "priya@propease.test",
		Role:     "EMPLOYEE",
	}, "system")
	require.NoError(t, err)

	tokens := services.NewTokenService(af.cfg, repos.UserRepo, clock)
	af.auth = services.NewAuthService(users, tokens)
	return af
}

func TestLogin_IssuesTokens(t *testing.T) {
	af := newAuthFixture(t)

	tokens, err := af.auth.Login(context.Background(), "priya", "secret123")
	require.NoError(t, err)
	assert.Equal(t, af.user.UserID, tokens.User.UserID)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.True(t, tokens.RefreshTokenExpiresAt.After(tokens.AccessTokenExpiresAt))

	claims, err := utils.ParseAndValidateJWT(tokens.AccessToken, af.cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, af.user.UserID, claims.Subject)
	assert.Equal(t, string(domain.RoleEmployee), claims.Role)
	assert.Equal(t, "propease-test", claims.Issuer)
}

func TestLogin_WrongCredentials(t *testing.T) {
	af := newAuthFixture(t)

	_, err := af.auth.Login(context.Background(), "priya", "nope")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = af.auth.Login(context.Background(), "ghost", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefresh_RotatesToken(t *testing.T) {
	af := newAuthFixture(t)
	ctx := context.Background()
	first, err := af.auth.Login(ctx, "priya", "secret123")
	require.NoError(t, err)

	second, err := af.auth.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = af.auth.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = af.auth.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefresh_Expired(t *testing.T) {
	af := newAuthFixture(t)
	ctx := context.Background()
	tokens, err := af.auth.Login(ctx, "priya", "secret123")
	require.NoError(t, err)

	af.now = af.now.Add(25 * time.Hour)
	_, err = af.auth.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	af := newAuthFixture(t)
	ctx := context.Background()
	tokens, err := af.auth.Login(ctx, "priya", "secret123")
	require.NoError(t, err)

	require.NoError(t, af.auth.Logout(ctx, af.user.UserID))
	_, err = af.auth.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginWithGoogleEmail_OnlyExistingUsers(t *testing.T) {
	af := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := af.auth.LoginWithGoogleEmail(ctx, "Priya@PropEase.test")
	require.NoError(t, err)
	assert.Equal(t, af.user.UserID, tokens.User.UserID)

	_, err = af.auth.LoginWithGoogleEmail(ctx, "stranger@gmail.com")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
