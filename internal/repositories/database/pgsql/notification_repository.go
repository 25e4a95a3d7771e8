package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxNotificationRepository stores in-app notifications.
type PgxNotificationRepository struct {
	BaseRepository
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, user_id, type, title, message, entity_id, is_read, is_deleted, created_at`

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	if _, err := r.db.Exec(ctx, query, m.NotificationID, m.UserID, m.Type, m.Title, m.Message, m.EntityID,
		m.IsRead, m.IsDeleted, m.CreatedAt); err != nil {
		return mapWriteError(err, "notification")
	}
	return nil
}

// ListNotifications pages in (created_at, notification_id) descending order.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int, after *portsrepo.Cursor) ([]domain.Notification, error) {
	var (
		ms  []models.Notification
		err error
	)
	if after == nil {
		query := `SELECT ` + notificationColumns + ` FROM notifications
			WHERE NOT is_deleted AND (user_id = $1 OR user_id IS NULL)
			ORDER BY created_at DESC, notification_id DESC
			LIMIT $2;`
		ms, err = collectAll[models.Notification](ctx, r.db, query, userID, limit)
	} else {
		query := `SELECT ` + notificationColumns + ` FROM notifications
			WHERE NOT is_deleted AND (user_id = $1 OR user_id IS NULL)
				AND (created_at, notification_id) < ($3, $4)
			ORDER BY created_at DESC, notification_id DESC
			LIMIT $2;`
		ms, err = collectAll[models.Notification](ctx, r.db, query, userID, limit, after.CreatedAt, after.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	return mapping.ToDomainNotificationSlice(ms), nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE
		WHERE notification_id = $1 AND (user_id = $2 OR user_id IS NULL) AND NOT is_deleted;`
	return execOne(ctx, r.db, "notification", query, notificationID, userID)
}

func (r *PgxNotificationRepository) NotificationExists(ctx context.Context, notificationType domain.NotificationType, entityID string, since time.Time) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM notifications WHERE type = $1 AND entity_id = $2 AND created_at >= $3 AND NOT is_deleted);`
	var exists bool
	if err := r.db.QueryRow(ctx, query, string(notificationType), entityID, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check notification: %w", err)
	}
	return exists, nil
}

// PgxActivityRepository stores the activity feed.
type PgxActivityRepository struct {
	BaseRepository
}

var _ portsrepo.ActivityLogRepository = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	m := models.ActivityLog(entry)
	query := `INSERT INTO activity_log (activity_id, user_id, user_name, action, entity_type, entity_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	if _, err := r.db.Exec(ctx, query, m.ActivityID, m.UserID, m.UserName, m.Action, m.EntityType, m.EntityID, m.Timestamp); err != nil {
		return mapWriteError(err, "activity")
	}
	return nil
}

func (r *PgxActivityRepository) ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	query := `SELECT activity_id, user_id, user_name, action, entity_type, entity_id, timestamp
		FROM activity_log ORDER BY timestamp DESC, activity_id DESC LIMIT $1;`
	ms, err := collectAll[models.ActivityLog](ctx, r.db, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	return mapping.ToDomainActivityLogSlice(ms), nil
}
