package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "propease_oauth_state"
	oauthStateMaxAge = 10 * 60
)

// googleOAuthHandler signs existing users in with their Google account.
// Accounts are matched by e-mail and never created here.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	frontendBaseURL    string
	secureCookies      bool
	now                func() time.Time
}

func newGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	frontendBaseURL string,
	secureCookies bool,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		frontendBaseURL:    strings.TrimRight(frontendBaseURL, "/"),
		secureCookies:      secureCookies,
		now:                time.Now,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, frontendBaseURL string, secureCookies bool) {
	h := newGoogleOAuthHandler(services.GoogleOAuthHandler, services.Auth, frontendBaseURL, secureCookies)
	google := rg.Group("/auth/google")
	{
		google.GET("/login", h.login)
		google.GET("/callback", h.callback)
		google.POST("/token", h.signInWithIDToken)
		google.POST("/exchange-code", h.exchangeCode)
	}
}

// login godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen.
// @Tags oauth
// @Success 307
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callback godoc
// @Summary Google sign-in callback
// @Description Completes the redirect flow and hands the tokens to the frontend in the URL fragment.
// @Tags oauth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	expected, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)
	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		logger.Warn("Google callback state mismatch")
		h.redirectWithError(c, "invalid_state")
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("Google returned an error", slog.String("error", errParam))
		h.redirectWithError(c, errParam)
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, c.Query("code"))
	if err != nil {
		logger.Error("Failed to exchange authorization code", slog.String("error", err.Error()))
		h.redirectWithError(c, "exchange_failed")
		return
	}
	info, err := h.googleOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		h.redirectWithError(c, "userinfo_failed")
		return
	}
	if !info.VerifiedEmail {
		h.redirectWithError(c, "email_not_verified")
		return
	}

	tokens, err := h.authService.LoginWithGoogleEmail(ctx, info.Email)
	if err != nil {
		logger.Warn("Google sign-in rejected", slog.String("email", info.Email), slog.String("error", err.Error()))
		h.redirectWithError(c, "unknown_user")
		return
	}

	resp := dto.ToLoginResponse(tokens, h.now())
	fragment := url.Values{
		"accessToken":      {resp.AccessToken},
		"refreshToken":     {resp.RefreshToken},
		"expiresInSeconds": {strconv.FormatInt(resp.ExpiresInSeconds, 10)},
		"role":             {string(resp.Role)},
		"userId":           {resp.UserID},
	}
	c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/auth/callback#"+fragment.Encode())
}

func (h *googleOAuthHandler) redirectWithError(c *gin.Context, reason string) {
	c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/login?"+url.Values{"error": {reason}}.Encode())
}

// signInWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained by the frontend and signs in the user with that e-mail.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *googleOAuthHandler) signInWithIDToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	h.signInWithGoogleIDToken(c, req.IDToken)
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Exchanges a code obtained by the frontend popup flow and signs in the user.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			respondError(c, apperrors.Validationf("Invalid or expired authorization code"), "")
			return
		}
		respondError(c, apperrors.NewAppError(http.StatusBadGateway, "Failed to communicate with Google", err), "")
		return
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		respondError(c, apperrors.NewAppError(http.StatusBadGateway, "Google did not return an ID token", nil), "")
		return
	}
	h.signInWithGoogleIDToken(c, idToken)
}

func (h *googleOAuthHandler) signInWithGoogleIDToken(c *gin.Context, idToken string) {
	ctx := c.Request.Context()
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		respondError(c, err, "Failed to validate Google ID token")
		return
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		respondError(c, apperrors.NewAppError(http.StatusUnauthorized, "Google account has no verified e-mail", apperrors.ErrUnauthorized), "")
		return
	}

	tokens, err := h.authService.LoginWithGoogleEmail(ctx, email)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	middleware.GetLoggerFromContext(c).Info("User signed in with Google", slog.String("user_id", tokens.User.UserID))
	c.JSON(http.StatusOK, dto.ToLoginResponse(tokens, h.now()))
}
