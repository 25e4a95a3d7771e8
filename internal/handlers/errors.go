package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

var errorStatus = []struct {
	target error
	status int
}{
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrRefreshTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrDuplicate, http.StatusConflict},
	{apperrors.ErrConflict, http.StatusConflict},
}

// statusAndMessage maps an error to a status code and a message that is safe
// to show to the caller. Unknown errors become 500 with fallback.
func statusAndMessage(err error, fallback string) (int, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code, appErr.Message
	}
	for _, m := range errorStatus {
		if errors.Is(err, m.target) {
			return m.status, stripSentinel(err, m.target)
		}
	}
	return http.StatusInternalServerError, fallback
}

// stripSentinel drops everything up to and including "<sentinel>: " so the
// caller sees "Booking amount must be positive" instead of the wrap chain.
func stripSentinel(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// respondError logs err and writes the {message} envelope.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromContext(c)
	status, msg := statusAndMessage(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Message: msg})
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, validation.Translate(err), "Invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		respondError(c, validation.Translate(err), "Invalid query parameters")
		return false
	}
	return true
}

// currentUserID returns the authenticated caller or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}
