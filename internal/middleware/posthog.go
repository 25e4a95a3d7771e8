package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/gin-gonic/gin"
)

// crmEvents names the product analytics event for the workflow routes worth
// tracking by name. Other successful writes fall back to "<method> <route>".
var crmEvents = map[string]string{
	"POST /api/bookings":                         "unit_booked",
	"POST /api/flats/:propertyID/register":       "unit_registered",
	"POST /api/flats/:propertyID/cancel-booking": "booking_cancelled",
	"POST /api/projects/register":                "project_registered",
	"POST /api/enquiries":                        "enquiry_created",
	"POST /api/enquiries/:id/cancel":             "enquiry_cancelled",
	"POST /api/followups":                        "followup_scheduled",
	"POST /api/followups/:id/complete":           "followup_completed",
	"POST /api/projects/:id/documents":           "document_uploaded",
	"POST /api/clients":                          "client_created",
}

// PosthogMiddleware reports successful authenticated writes to PostHog.
// Reads are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		event := analyticsEvent(c.Request.Method, c.FullPath())

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": status,
			"request_id":  c.Writer.Header().Get(requestIDHeader),
		}
		if role, ok := GetRoleFromContext(c); ok {
			props["role"] = string(role)
		}
		for _, p := range c.Params {
			props[p.Key] = p.Value
		}
		posthogClient.Enqueue(userID, event, props)
	}
}

func analyticsEvent(method, route string) string {
	key := method + " " + route
	if event, ok := crmEvents[key]; ok {
		return event
	}
	return strings.ToLower(key)
}
