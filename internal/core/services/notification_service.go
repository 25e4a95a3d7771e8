package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/utils/pagination"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

type notificationService struct {
	BaseService
	notifications portsrepo.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications portsrepo.NotificationRepository, options ...ServiceOption) portssvc.NotificationSvcFacade {
	return &notificationService{
		BaseService:   newBaseService(options...),
		notifications: notifications,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListNotifications pages newest first. One extra row is read to tell whether
// another page exists.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) ([]domain.Notification, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	var after *portsrepo.Cursor
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", apperrors.Validationf("invalid nextToken")
		}
		after = &portsrepo.Cursor{CreatedAt: createdAt, ID: id}
	}

	items, err := s.notifications.ListNotifications(ctx, userID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, "", err
	}

	nextToken := ""
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.NotificationID)
	}
	return items, nextToken, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	if err := s.notifications.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark notification read",
			slog.String("notification_id", notificationID),
			slog.String("user_id", userID))
		return err
	}
	return nil
}
