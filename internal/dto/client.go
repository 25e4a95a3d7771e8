package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a client. The same
// shape is embedded in enquiry and booking requests when they create a client.
type CreateClientRequest struct {
	ClientName   string  `json:"clientName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	MobileNumber string  `json:"mobileNumber" binding:"required,phone"`
	DOB          *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	City         string  `json:"city"`
	Address      string  `json:"address"`
	Occupation   string  `json:"occupation"`
	Company      string  `json:"company"`
	PanNo        string  `json:"panNo" binding:"omitempty,pan"`
	AadharNo     string  `json:"aadharNo" binding:"omitempty,aadhar"`
}

// UpdateClientRequest patches a client.
type UpdateClientRequest struct {
	ClientName   *string `json:"clientName"`
	Email        *string `json:"email" binding:"omitempty,email"`
	MobileNumber *string `json:"mobileNumber" binding:"omitempty,phone"`
	DOB          *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	City         *string `json:"city"`
	Address      *string `json:"address"`
	Occupation   *string `json:"occupation"`
	Company      *string `json:"company"`
	PanNo        *string `json:"panNo" binding:"omitempty,pan"`
	AadharNo     *string `json:"aadharNo" binding:"omitempty,aadhar"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID     string    `json:"clientId"`
	ClientName   string    `json:"clientName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	DOB          *string   `json:"dob"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Occupation   string    `json:"occupation"`
	Company      string    `json:"company"`
	PanNo        string    `json:"panNo"`
	AadharNo     string    `json:"aadharNo"`
	CreatedDate  time.Time `json:"createdDate"`
}

// ToClientResponse converts a domain.Client.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:     c.ClientID,
		ClientName:   c.ClientName,
		Email:        c.Email,
		MobileNumber: c.MobileNumber,
		DOB:          formatDatePtr(c.DOB),
		City:         c.City,
		Address:      c.Address,
		Occupation:   c.Occupation,
		Company:      c.Company,
		PanNo:        c.PanNo,
		AadharNo:     c.AadharNo,
		CreatedDate:  c.CreatedAt,
	}
}

// ToListClientResponse converts a slice of clients.
func ToListClientResponse(items []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(items))
	for i := range items {
		res[i] = ToClientResponse(&items[i])
	}
	return res
}

// ClientProfileResponse is a client with their enquiries and bookings.
type ClientProfileResponse struct {
	Client    ClientResponse    `json:"client"`
	Enquiries []EnquiryResponse `json:"enquiries"`
	Bookings  []BookingResponse `json:"bookings"`
}

// ToClientProfileResponse converts a domain.ClientProfile.
func ToClientProfileResponse(p *domain.ClientProfile) ClientProfileResponse {
	return ClientProfileResponse{
		Client:    ToClientResponse(&p.Client),
		Enquiries: ToListEnquiryResponse(p.Enquiries),
		Bookings:  ToListBookingResponse(p.Bookings),
	}
}
