package services

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken issues a new refresh token and stores its hash on the user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateRefreshToken resolves the user a refresh token was issued to.
	// It fails when the token does not match the stored hash or has expired.
	ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// AuthSvcFacade signs users in and out.
type AuthSvcFacade interface {
	Login(ctx context.Context, username, password string) (*domain.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)
	Logout(ctx context.Context, userID string) error
	// LoginWithGoogleEmail issues tokens for the existing user with the given
	// verified e-mail address.
	LoginWithGoogleEmail(ctx context.Context, email string) (*domain.AuthTokens, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
