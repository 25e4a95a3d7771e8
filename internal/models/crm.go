package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a row of the clients table.
type Client struct {
	ClientID     string     `db:"client_id"`
	ClientName   string     `db:"client_name"`
	Email        string     `db:"email"`
	MobileNumber string     `db:"mobile_number"`
	DOB          *time.Time `db:"dob"`
	City         string     `db:"city"`
	Address      string     `db:"address"`
	Occupation   string     `db:"occupation"`
	Company      string     `db:"company"`
	PanNo        string     `db:"pan_no"`
	AadharNo     string     `db:"aadhar_no"`
	IsDeleted    bool       `db:"is_deleted"`
	AuditFields
}

// Enquiry is a row of the enquiries table.
type Enquiry struct {
	EnquiryID     string  `db:"enquiry_id"`
	ProjectID     string  `db:"project_id"`
	ClientID      string  `db:"client_id"`
	PropertyID    *string `db:"property_id"`
	Budget        string  `db:"budget"`
	Reference     string  `db:"reference"`
	ReferenceName string  `db:"reference_name"`
	Status        string  `db:"status"`
	IsDeleted     bool    `db:"is_deleted"`
	AuditFields
}

// EnquiryRemark is a row of the enquiry_remarks table.
type EnquiryRemark struct {
	RemarkID   string    `db:"remark_id"`
	EnquiryID  string    `db:"enquiry_id"`
	Body       string    `db:"body"`
	AuthorID   string    `db:"author_id"`
	AuthorName string    `db:"author_name"`
	CreatedAt  time.Time `db:"created_at"`
}

// Booking is a row of the bookings table.
type Booking struct {
	BookingID          string          `db:"booking_id"`
	ProjectID          string          `db:"project_id"`
	ClientID           string          `db:"client_id"`
	PropertyID         string          `db:"property_id"`
	EnquiryID          *string         `db:"enquiry_id"`
	BookingAmount      decimal.Decimal `db:"booking_amount"`
	AgreementAmount    decimal.Decimal `db:"agreement_amount"`
	GSTPercentage      decimal.Decimal `db:"gst_percentage"`
	BookingDate        time.Time       `db:"booking_date"`
	ChequeNo           string          `db:"cheque_no"`
	IsRegistered       bool            `db:"is_registered"`
	RegistrationDate   *time.Time      `db:"registration_date"`
	IsCancelled        bool            `db:"is_cancelled"`
	CancellationReason string          `db:"cancellation_reason"`
	CancelledAt        *time.Time      `db:"cancelled_at"`
	IsDeleted          bool            `db:"is_deleted"`
	AuditFields
}

// FollowUp is a row of the follow_ups table.
type FollowUp struct {
	FollowUpID   string     `db:"follow_up_id"`
	EnquiryID    string     `db:"enquiry_id"`
	FollowUpDate time.Time  `db:"follow_up_date"`
	FollowUpTime string     `db:"follow_up_time"`
	Status       string     `db:"status"`
	Notes        string     `db:"notes"`
	AgentName    string     `db:"agent_name"`
	AgentID      string     `db:"agent_id"`
	CompletedAt  *time.Time `db:"completed_at"`
	IsDeleted    bool       `db:"is_deleted"`
	AuditFields
}

// FollowUpNode is a row of the follow_up_nodes table.
type FollowUpNode struct {
	FollowUpNodeID   string    `db:"follow_up_node_id"`
	FollowUpID       string    `db:"follow_up_id"`
	FollowUpDateTime time.Time `db:"follow_up_date_time"`
	Body             string    `db:"body"`
	AgentName        string    `db:"agent_name"`
	UserID           string    `db:"user_id"`
	IsDeleted        bool      `db:"is_deleted"`
}

// Notification is a row of the notifications table. A NULL user_id addresses everyone.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         *string   `db:"user_id"`
	Type           string    `db:"type"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	EntityID       string    `db:"entity_id"`
	IsRead         bool      `db:"is_read"`
	IsDeleted      bool      `db:"is_deleted"`
	CreatedAt      time.Time `db:"created_at"`
}

// ActivityLog is a row of the activity_log table.
type ActivityLog struct {
	ActivityID string    `db:"activity_id"`
	UserID     string    `db:"user_id"`
	UserName   string    `db:"user_name"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Timestamp  time.Time `db:"timestamp"`
}
