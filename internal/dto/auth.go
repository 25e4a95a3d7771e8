package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleIDTokenRequest signs in with a Google ID token obtained by the SPA.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ExchangeCodeRequest signs in with a Google authorization code.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login or refresh.
type LoginResponse struct {
	AccessToken      string      `json:"accessToken"`
	RefreshToken     string      `json:"refreshToken"`
	TokenType        string      `json:"tokenType"`
	ExpiresInSeconds int64       `json:"expiresInSeconds"`
	UserID           string      `json:"userId"`
	Name             string      `json:"name"`
	Role             domain.Role `json:"role"`
}

// ToLoginResponse converts issued tokens relative to now.
func ToLoginResponse(t *domain.AuthTokens, now time.Time) LoginResponse {
	expiresIn := int64(t.AccessTokenExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return LoginResponse{
		AccessToken:      t.AccessToken,
		RefreshToken:     t.RefreshToken,
		TokenType:        "Bearer",
		ExpiresInSeconds: expiresIn,
		UserID:           t.User.UserID,
		Name:             t.User.Name,
		Role:             t.User.Role,
	}
}
