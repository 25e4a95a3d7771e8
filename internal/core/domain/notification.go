package domain

import "time"

// NotificationType classifies notifications.
type NotificationType string

const (
	NotificationEnquiryFollowUp NotificationType = "ENQUIRY_FOLLOWUP"
	NotificationPaymentFollowUp NotificationType = "PAYMENT_FOLLOWUP"
	NotificationDemandLetter    NotificationType = "DEMAND_LETTER"
)

// Notification is an in-app message. An empty UserID addresses every user.
type Notification struct {
	NotificationID string           `json:"notificationId"`
	UserID         string           `json:"userId,omitempty"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	EntityID       string           `json:"entityId,omitempty"`
	IsRead         bool             `json:"isRead"`
	IsDeleted      bool             `json:"isDeleted"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ActivityLog records a workflow write for the dashboard feed.
type ActivityLog struct {
	ActivityID string    `json:"activityId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Timestamp  time.Time `json:"timestamp"`
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	TotalProjects  int               `json:"totalProjects"`
	TotalClients   int               `json:"totalClients"`
	TotalEnquiries int               `json:"totalEnquiries"`
	TotalBookings  int               `json:"totalBookings"`
	ActiveBookings int               `json:"activeBookings"`
	UnitStatus     []UnitStatusCount `json:"unitStatus"`
	FollowUps      FollowUpStats     `json:"followUps"`
	RecentActivity []ActivityLog     `json:"recentActivity"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}
