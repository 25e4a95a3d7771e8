package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/platform/config"
	"github.com/SscSPs/propease_crm/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// tokenService issues HS256 access tokens and opaque refresh tokens. Only the
// SHA-256 hash of the current refresh token is stored on the user, so issuing
// a new one revokes the previous.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.TokenSvcFacade {
	return &tokenService{
		BaseService: newBaseService(options...),
		cfg:         cfg,
		userRepo:    userRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	accessToken, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiresAt, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.NewRefreshToken(user.UserID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiresAt := s.now().Add(s.cfg.RefreshTokenExpiryDuration)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefreshToken), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawRefreshToken, expiresAt, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	userID, err := utils.RefreshTokenUserID(refreshToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		s.GetLogger(ctx).Warn("Refresh token mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}
	if s.now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to revoke refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// --- AuthSvcFacade Implementation ---

type authService struct {
	BaseService
	users  portssvc.UserSvcFacade
	tokens portssvc.TokenSvcFacade
}

// NewAuthService combines credential checks with token issuance.
func NewAuthService(users portssvc.UserSvcFacade, tokens portssvc.TokenSvcFacade, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options...),
		users:       users,
		tokens:      tokens,
	}
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*domain.AuthTokens, error) {
	access, accessExp, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthTokens{
		User:                  *user,
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.AuthTokens, error) {
	user, err := s.users.AuthenticateUser(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			s.GetLogger(ctx).Warn("Failed login attempt", slog.String("username", username))
		}
		return nil, err
	}
	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return tokens, nil
}

// Refresh rotates the refresh token: the presented one stops working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	user, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.tokens.RevokeRefreshToken(ctx, userID)
}

// LoginWithGoogleEmail only signs in staff that already exist; Google sign-in
// never creates accounts.
func (s *authService) LoginWithGoogleEmail(ctx context.Context, email string) (*domain.AuthTokens, error) {
	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Google sign-in for unknown e-mail", slog.String("email", email))
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return s.issue(ctx, user)
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &userInfo, nil
}

func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}
	return payload, nil
}
