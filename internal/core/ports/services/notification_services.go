package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// NotificationSvcFacade manages in-app notifications.
type NotificationSvcFacade interface {
	// ListNotifications returns a page of the user's notifications and the
	// token of the next page, empty on the last page.
	ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) ([]domain.Notification, string, error)
	MarkRead(ctx context.Context, notificationID string, userID string) error
}

// DashboardSvc builds the landing-page summary.
type DashboardSvc interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}
