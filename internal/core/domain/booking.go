package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultGSTPercentage applies when a booking does not specify one.
var DefaultGSTPercentage = decimal.NewFromInt(18)

// Booking is a client's reservation of a unit.
type Booking struct {
	BookingID          string          `json:"bookingId"`
	ProjectID          string          `json:"projectId"`
	ClientID           string          `json:"clientId"`
	PropertyID         string          `json:"propertyId"`
	EnquiryID          *string         `json:"enquiryId"`
	BookingAmount      decimal.Decimal `json:"bookingAmount"`
	AgreementAmount    decimal.Decimal `json:"agreementAmount"`
	GSTPercentage      decimal.Decimal `json:"gstPercentage"`
	BookingDate        time.Time       `json:"bookingDate"`
	ChequeNo           string          `json:"chequeNo"`
	IsRegistered       bool            `json:"isRegistered"`
	RegistrationDate   *time.Time      `json:"registrationDate,omitempty"`
	IsCancelled        bool            `json:"isCancelled"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	IsDeleted          bool            `json:"isDeleted"`
	AuditFields
}

// IsActive reports whether the booking still holds its unit.
func (b Booking) IsActive() bool {
	return !b.IsDeleted && !b.IsCancelled
}

// GSTAmount is the tax due on the agreement amount.
func (b Booking) GSTAmount() decimal.Decimal {
	return b.AgreementAmount.Mul(b.GSTPercentage).Div(decimal.NewFromInt(100)).Round(2)
}

// TotalAmount is the agreement amount including GST.
func (b Booking) TotalAmount() decimal.Decimal {
	return b.AgreementAmount.Add(b.GSTAmount())
}

// ActiveBooking picks the booking that currently holds a unit: the most
// recently created non-deleted, non-cancelled one, ties broken by the larger
// BookingID. It returns nil when the unit has no active booking.
func ActiveBooking(bookings []Booking) *Booking {
	var active []Booking
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return nil
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].BookingID > active[j].BookingID
	})
	winner := active[0]
	return &winner
}

// DeriveUnitStatus is the single source of truth for a flat's status.
func DeriveUnitStatus(bookings []Booking) UnitStatus {
	active := ActiveBooking(bookings)
	switch {
	case active == nil:
		return UnitStatusVacant
	case active.IsRegistered:
		return UnitStatusRegistered
	default:
		return UnitStatusBooked
	}
}
