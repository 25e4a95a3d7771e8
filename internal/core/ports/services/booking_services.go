package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// BookingReaderSvc defines read operations for bookings.
type BookingReaderSvc interface {
	GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookings(ctx context.Context, params dto.ListBookingsParams) ([]domain.Booking, error)
	GetActiveBookingForUnit(ctx context.Context, propertyID string) (*domain.Booking, error)
}

// BookingWorkflowSvc defines the unit-status workflows. Each runs in one
// transaction and rewrites the unit's status from its bookings.
type BookingWorkflowSvc interface {
	BookUnit(ctx context.Context, req dto.BookUnitRequest, userID string) (*domain.BookingResult, error)
	RegisterUnit(ctx context.Context, propertyID string, req dto.RegisterUnitRequest, userID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, propertyID string, req dto.CancelBookingRequest, userID string) (*domain.Booking, error)
}

// BookingSvcFacade combines all booking service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWorkflowSvc
}
