package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// Cursor marks the last row of a page in (createdAt, id) descending order.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
	// ListNotifications returns notifications addressed to userID or to everyone,
	// newest first, starting after the cursor when one is given.
	ListNotifications(ctx context.Context, userID string, limit int, after *Cursor) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
	// NotificationExists reports whether a notification of the given type for
	// entityID was created at or after since.
	NotificationExists(ctx context.Context, notificationType domain.NotificationType, entityID string, since time.Time) (bool, error)
}

// ActivityLogRepository stores the activity feed.
type ActivityLogRepository interface {
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error
	ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error)
}
