package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// CreateFollowUpRequest schedules a follow-up for an enquiry.
type CreateFollowUpRequest struct {
	EnquiryID    string `json:"enquiryId" binding:"required"`
	FollowUpDate string `json:"followUpDate" binding:"required,datetime=2006-01-02"`
	FollowUpTime string `json:"followUpTime" binding:"omitempty,hhmm"`
	Notes        string `json:"notes"`
	AgentName    string `json:"agentName"`
}

// CompleteFollowUpRequest completes a follow-up and optionally schedules the next one.
type CompleteFollowUpRequest struct {
	Remark           string  `json:"remark"`
	NextFollowUpDate *string `json:"nextFollowUpDate" binding:"omitempty,datetime=2006-01-02"`
	NextFollowUpTime string  `json:"nextFollowUpTime" binding:"omitempty,hhmm"`
	NextNotes        string  `json:"nextNotes"`
}

// AddFollowUpNoteRequest appends a note to a follow-up.
type AddFollowUpNoteRequest struct {
	Body string `json:"body"`
}

// ListFollowUpsParams defines query parameters for listing follow-ups.
type ListFollowUpsParams struct {
	View      string `form:"view,default=all" binding:"omitempty,oneof=all today overdue dueToday completedToday"`
	EnquiryID string `form:"enquiryId"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
}

// FollowUpResponse defines the data returned for a follow-up.
type FollowUpResponse struct {
	FollowUpID   string                `json:"followUpId"`
	EnquiryID    string                `json:"enquiryId"`
	FollowUpDate string                `json:"followUpDate"`
	FollowUpTime string                `json:"followUpTime"`
	Status       domain.FollowUpStatus `json:"status"`
	Notes        string                `json:"notes"`
	AgentName    string                `json:"agentName"`
	CompletedAt  *time.Time            `json:"completedAt,omitempty"`
	CreatedDate  time.Time             `json:"createdDate"`
}

// ToFollowUpResponse converts a domain.FollowUp.
func ToFollowUpResponse(f *domain.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		FollowUpID:   f.FollowUpID,
		EnquiryID:    f.EnquiryID,
		FollowUpDate: formatDate(f.FollowUpDate),
		FollowUpTime: f.FollowUpTime,
		Status:       f.Status,
		Notes:        f.Notes,
		AgentName:    f.AgentName,
		CompletedAt:  f.CompletedAt,
		CreatedDate:  f.CreatedAt,
	}
}

// ToListFollowUpResponse converts a slice of follow-ups.
func ToListFollowUpResponse(items []domain.FollowUp) []FollowUpResponse {
	res := make([]FollowUpResponse, len(items))
	for i := range items {
		res[i] = ToFollowUpResponse(&items[i])
	}
	return res
}

// FollowUpNodeResponse is one note of a follow-up.
type FollowUpNodeResponse struct {
	FollowUpNodeID   string    `json:"followUpNodeId"`
	FollowUpID       string    `json:"followUpId"`
	FollowUpDateTime time.Time `json:"followUpDateTime"`
	Body             string    `json:"body"`
	AgentName        string    `json:"agentName"`
	UserID           string    `json:"userId"`
}

// ToFollowUpNodeResponse converts a domain.FollowUpNode.
func ToFollowUpNodeResponse(n *domain.FollowUpNode) FollowUpNodeResponse {
	return FollowUpNodeResponse{
		FollowUpNodeID:   n.FollowUpNodeID,
		FollowUpID:       n.FollowUpID,
		FollowUpDateTime: n.FollowUpDateTime,
		Body:             n.Body,
		AgentName:        n.AgentName,
		UserID:           n.UserID,
	}
}

// CompleteFollowUpResponse reports every record written by CompleteFollowUp.
type CompleteFollowUpResponse struct {
	FollowUp FollowUpResponse     `json:"followUp"`
	Node     FollowUpNodeResponse `json:"node"`
	Next     *FollowUpResponse    `json:"nextFollowUp,omitempty"`
}

// ToCompleteFollowUpResponse converts a domain.FollowUpCompletion.
func ToCompleteFollowUpResponse(c *domain.FollowUpCompletion) CompleteFollowUpResponse {
	res := CompleteFollowUpResponse{
		FollowUp: ToFollowUpResponse(&c.Completed),
		Node:     ToFollowUpNodeResponse(&c.Node),
	}
	if c.Next != nil {
		next := ToFollowUpResponse(c.Next)
		res.Next = &next
	}
	return res
}
