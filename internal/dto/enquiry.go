package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// CreateEnquiryRequest creates an enquiry for an existing client (ClientID)
// or for a new one (CreateNewClient with NewClient).
type CreateEnquiryRequest struct {
	ProjectID       string               `json:"projectId" binding:"required"`
	ClientID        string               `json:"clientId"`
	CreateNewClient bool                 `json:"createNewClient"`
	NewClient       *CreateClientRequest `json:"newClient"`
	PropertyID      string               `json:"propertyId"`
	Budget          string               `json:"budget" binding:"required"`
	Reference       string               `json:"reference"`
	ReferenceName   string               `json:"referenceName"`
	Remark          string               `json:"remark"`
}

// UpdateEnquiryRequest patches an enquiry.
type UpdateEnquiryRequest struct {
	PropertyID    *string `json:"propertyId"`
	Budget        *string `json:"budget"`
	Reference     *string `json:"reference"`
	ReferenceName *string `json:"referenceName"`
	Status        *string `json:"status" binding:"omitempty,oneof=ONGOING COMPLETED CANCELLED"`
}

// AddRemarkRequest appends to an enquiry's remark log.
type AddRemarkRequest struct {
	Body string `json:"body"`
}

// ListEnquiriesParams defines query parameters for listing enquiries.
type ListEnquiriesParams struct {
	ProjectID string `form:"projectId"`
	ClientID  string `form:"clientId"`
	Status    string `form:"status" binding:"omitempty,oneof=ONGOING COMPLETED CANCELLED"`
	Search    string `form:"search"`
}

// EnquiryResponse defines the data returned for an enquiry.
type EnquiryResponse struct {
	EnquiryID     string               `json:"enquiryId"`
	ProjectID     string               `json:"projectId"`
	ClientID      string               `json:"clientId"`
	PropertyID    string               `json:"propertyId"`
	Budget        string               `json:"budget"`
	Reference     string               `json:"reference"`
	ReferenceName string               `json:"referenceName"`
	Status        domain.EnquiryStatus `json:"status"`
	CreatedDate   time.Time            `json:"createdDate"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToEnquiryResponse converts a domain.Enquiry.
func ToEnquiryResponse(e *domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		EnquiryID:     e.EnquiryID,
		ProjectID:     e.ProjectID,
		ClientID:      e.ClientID,
		PropertyID:    e.PropertyID,
		Budget:        e.Budget,
		Reference:     e.Reference,
		ReferenceName: e.ReferenceName,
		Status:        e.Status,
		CreatedDate:   e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToListEnquiryResponse converts a slice of enquiries.
func ToListEnquiryResponse(items []domain.Enquiry) []EnquiryResponse {
	res := make([]EnquiryResponse, len(items))
	for i := range items {
		res[i] = ToEnquiryResponse(&items[i])
	}
	return res
}

// EnquiryRemarkResponse is one entry of the remark log.
type EnquiryRemarkResponse struct {
	RemarkID   string    `json:"remarkId"`
	Body       string    `json:"body"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToListEnquiryRemarkResponse converts remark log entries.
func ToListEnquiryRemarkResponse(items []domain.EnquiryRemark) []EnquiryRemarkResponse {
	res := make([]EnquiryRemarkResponse, len(items))
	for i, r := range items {
		res[i] = EnquiryRemarkResponse{
			RemarkID:   r.RemarkID,
			Body:       r.Body,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			CreatedAt:  r.CreatedAt,
		}
	}
	return res
}

// CreateEnquiryResponse reports every record written by CreateEnquiry.
type CreateEnquiryResponse struct {
	Enquiry  EnquiryResponse  `json:"enquiry"`
	Client   *ClientResponse  `json:"client,omitempty"`
	FollowUp FollowUpResponse `json:"followUp"`
}

// ToCreateEnquiryResponse converts a domain.EnquiryCreation.
func ToCreateEnquiryResponse(c *domain.EnquiryCreation) CreateEnquiryResponse {
	res := CreateEnquiryResponse{
		Enquiry:  ToEnquiryResponse(&c.Enquiry),
		FollowUp: ToFollowUpResponse(&c.FollowUp),
	}
	if c.NewClient != nil {
		client := ToClientResponse(c.NewClient)
		res.Client = &client
	}
	return res
}

// CancelEnquiryRequest cancels an enquiry with a closing remark.
type CancelEnquiryRequest struct {
	Remark string `json:"remark"`
}

// ToEnquiryRemarkResponse converts a single remark.
func ToEnquiryRemarkResponse(r *domain.EnquiryRemark) EnquiryRemarkResponse {
	return ToListEnquiryRemarkResponse([]domain.EnquiryRemark{*r})[0]
}
