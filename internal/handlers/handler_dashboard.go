package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService    portssvc.DashboardSvc
	notificationService portssvc.NotificationSvcFacade
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc, notificationService portssvc.NotificationSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService, notificationService: notificationService}

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/notifications", h.listNotifications)
	rg.POST("/notifications/:id/read", h.markRead)
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Totals, unit status per project, follow-up counters and recent activity. May be served from cache.
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// listNotifications godoc
// @Summary Notifications for the signed-in user
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *dashboardHandler) listNotifications(c *gin.Context) {
	var params dto.ListNotificationsParams
	if !bindQuery(c, &params) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, next, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(items, next))
}

// @Summary Mark a notification read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *dashboardHandler) markRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}
