package middleware

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and roleKey store the authenticated principal.
// Using a custom type prevents collisions.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if roleVal, exists := c.Get(string(roleKey)); exists {
		role, ok := roleVal.(domain.Role)
		return role, ok
	}
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}
