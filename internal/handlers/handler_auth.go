package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles password sign-in and token rotation.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	now         func() time.Time
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as, now: time.Now}
}

// registerAuthRoutes sets up the public token routes. login is rate limited;
// logout sits behind the auth middleware.
func registerAuthRoutes(public *gin.RouterGroup, protected *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(authService)

	public.POST("/login", loginLimit, h.login)
	public.POST("/refresh", h.refresh)
	protected.POST("/logout", h.logout)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	middleware.GetLoggerFromContext(c).Info("User signed in", slog.String("user_id", tokens.User.UserID))
	c.JSON(http.StatusOK, dto.ToLoginResponse(tokens, h.now()))
}

// refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair. The old refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router /refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoginResponse(tokens, h.now()))
}

// logout godoc
// @Summary Sign out
// @Description Revokes the caller's refresh token. The access token stays valid until it expires.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
