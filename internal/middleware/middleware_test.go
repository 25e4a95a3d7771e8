package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetRoleFromContext(c)
		c.String(http.StatusOK, userID+"|"+string(role))
	})
	r.GET("/private", handlers...)
	return r
}

func bearer(t *testing.T, role domain.Role, secret string, ttl time.Duration) string {
	t.Helper()
	token, _, err := utils.GenerateJWT("user-7", string(role), secret, ttl, "propease-test")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", bearer(t, domain.RoleAdmin, "other", time.Hour), http.StatusUnauthorized},
		{"expired", bearer(t, domain.RoleAdmin, testSecret, -time.Minute), http.StatusUnauthorized},
		{"valid", bearer(t, domain.RoleEmployee, testSecret, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "user-7|EMPLOYEE", w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret), RequireRole(domain.RoleAdmin))

	for role, want := range map[domain.Role]int{
		domain.RoleAdmin:    http.StatusOK,
		domain.RoleEmployee: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", bearer(t, role, testSecret, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, string(role))
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRateLimit(t *testing.T) {
	limiter, err := NewMemoryLimiter("2-M")
	require.NoError(t, err)
	r := newTestRouter(RateLimit(limiter))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewMemoryLimiter("lots-per-minute")
	assert.Error(t, err)
}

func TestAnalyticsEvent(t *testing.T) {
	assert.Equal(t, "unit_booked", analyticsEvent(http.MethodPost, "/api/bookings"))
	assert.Equal(t, "booking_cancelled", analyticsEvent(http.MethodPost, "/api/flats/:propertyID/cancel-booking"))
	assert.Equal(t, "put /api/clients/:id", analyticsEvent(http.MethodPut, "/api/clients/:id"))
}
