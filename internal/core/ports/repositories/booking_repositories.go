package repositories

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// BookingFilter narrows ListBookings. ActiveOnly hides cancelled bookings.
type BookingFilter struct {
	ProjectID  string
	ClientID   string
	PropertyID string
	ActiveOnly bool
}

// BookingReader defines read operations for booking data
type BookingReader interface {
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	// ListBookings returns non-deleted bookings, newest first.
	ListBookings(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	// ListBookingsForUnit returns every non-deleted booking of a unit,
	// cancelled ones included, as input to domain.DeriveUnitStatus.
	ListBookingsForUnit(ctx context.Context, propertyID string) ([]domain.Booking, error)
}

// BookingWriter defines write operations for booking data
type BookingWriter interface {
	SaveBooking(ctx context.Context, booking domain.Booking) error
	UpdateBooking(ctx context.Context, booking domain.Booking) error
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}
