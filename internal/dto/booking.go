package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BookUnitRequest books a vacant unit for an existing client (ClientID) or
// a new one (CreateNewClient with NewClient).
type BookUnitRequest struct {
	PropertyID      string               `json:"propertyId" binding:"required"`
	ClientID        string               `json:"clientId"`
	CreateNewClient bool                 `json:"createNewClient"`
	NewClient       *CreateClientRequest `json:"newClient"`
	EnquiryID       *string              `json:"enquiryId"`
	BookingAmount   decimal.Decimal      `json:"bookingAmount"`
	AgreementAmount decimal.Decimal      `json:"agreementAmount"`
	GSTPercentage   *decimal.Decimal     `json:"gstPercentage"`
	BookingDate     *string              `json:"bookingDate" binding:"omitempty,datetime=2006-01-02"`
	ChequeNo        string               `json:"chequeNo"`
}

// RegisterUnitRequest registers the active booking of a unit.
type RegisterUnitRequest struct {
	RegistrationDate *string `json:"registrationDate" binding:"omitempty,datetime=2006-01-02"`
}

// CancelBookingRequest cancels the active booking of a unit.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ListBookingsParams defines query parameters for listing bookings.
type ListBookingsParams struct {
	ProjectID  string `form:"projectId"`
	ClientID   string `form:"clientId"`
	PropertyID string `form:"propertyId"`
	ActiveOnly bool   `form:"active"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID          string          `json:"bookingId"`
	ProjectID          string          `json:"projectId"`
	ClientID           string          `json:"clientId"`
	PropertyID         string          `json:"propertyId"`
	EnquiryID          *string         `json:"enquiryId"`
	BookingAmount      decimal.Decimal `json:"bookingAmount"`
	AgreementAmount    decimal.Decimal `json:"agreementAmount"`
	GSTPercentage      decimal.Decimal `json:"gstPercentage"`
	GSTAmount          decimal.Decimal `json:"gstAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	BookingDate        string          `json:"bookingDate"`
	ChequeNo           string          `json:"chequeNo"`
	IsRegistered       bool            `json:"isRegistered"`
	RegistrationDate   *string         `json:"registrationDate"`
	IsCancelled        bool            `json:"isCancelled"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToBookingResponse converts a domain.Booking.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:          b.BookingID,
		ProjectID:          b.ProjectID,
		ClientID:           b.ClientID,
		PropertyID:         b.PropertyID,
		EnquiryID:          b.EnquiryID,
		BookingAmount:      b.BookingAmount,
		AgreementAmount:    b.AgreementAmount,
		GSTPercentage:      b.GSTPercentage,
		GSTAmount:          b.GSTAmount(),
		TotalAmount:        b.TotalAmount(),
		BookingDate:        formatDate(b.BookingDate),
		ChequeNo:           b.ChequeNo,
		IsRegistered:       b.IsRegistered,
		RegistrationDate:   formatDatePtr(b.RegistrationDate),
		IsCancelled:        b.IsCancelled,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
	}
}

// ToListBookingResponse converts a slice of bookings.
func ToListBookingResponse(items []domain.Booking) []BookingResponse {
	res := make([]BookingResponse, len(items))
	for i := range items {
		res[i] = ToBookingResponse(&items[i])
	}
	return res
}

// BookUnitResponse reports every record written by BookUnit.
type BookUnitResponse struct {
	Booking BookingResponse  `json:"booking"`
	Flat    FlatResponse     `json:"flat"`
	Client  *ClientResponse  `json:"client,omitempty"`
	Enquiry *EnquiryResponse `json:"enquiry,omitempty"`
}

// ToBookUnitResponse converts a domain.BookingResult.
func ToBookUnitResponse(r *domain.BookingResult) BookUnitResponse {
	res := BookUnitResponse{
		Booking: ToBookingResponse(&r.Booking),
		Flat:    ToFlatResponse(&r.Flat),
	}
	if r.NewClient != nil {
		c := ToClientResponse(r.NewClient)
		res.Client = &c
	}
	if r.Enquiry != nil {
		e := ToEnquiryResponse(r.Enquiry)
		res.Enquiry = &e
	}
	return res
}
