package domain

import "time"

// EventType names a domain event published after a workflow commits.
type EventType string

const (
	EventBookingCreated    EventType = "booking.created"
	EventBookingRegistered EventType = "booking.registered"
	EventBookingCancelled  EventType = "booking.cancelled"
	EventEnquiryCreated    EventType = "enquiry.created"
	EventEnquiryCancelled  EventType = "enquiry.cancelled"
	EventFollowUpCompleted EventType = "followup.completed"
	EventFollowUpReminded  EventType = "followup.reminded"
	EventProjectRegistered EventType = "project.registered"
)

// Event is the envelope published to the message broker.
type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}
