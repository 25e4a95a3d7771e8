package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationId"`
	Type           domain.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	EntityID       string                  `json:"entityId,omitempty"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ListNotificationsResponse is a page of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

// ToListNotificationsResponse converts a page of notifications.
func ToListNotificationsResponse(items []domain.Notification, nextToken string) ListNotificationsResponse {
	res := ListNotificationsResponse{
		Notifications: make([]NotificationResponse, len(items)),
		NextToken:     nextToken,
	}
	for i, n := range items {
		res.Notifications[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Type:           n.Type,
			Title:          n.Title,
			Message:        n.Message,
			EntityID:       n.EntityID,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
		}
	}
	return res
}
