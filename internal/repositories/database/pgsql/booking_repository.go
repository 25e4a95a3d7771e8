package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxBookingRepository stores bookings.
type PgxBookingRepository struct {
	BaseRepository
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

const bookingColumns = `booking_id, project_id, client_id, property_id, enquiry_id, booking_amount, agreement_amount,
	gst_percentage, booking_date, cheque_no, is_registered, registration_date, is_cancelled, cancellation_reason,
	cancelled_at, ` + auditColumns

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Booking](ctx, r.db, query, bookingID)
	if err != nil {
		return nil, wrapFind(err, "booking", bookingID)
	}
	b := mapping.ToDomainBooking(m)
	return &b, nil
}

func (r *PgxBookingRepository) ListBookings(ctx context.Context, filter portsrepo.BookingFilter) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE NOT is_deleted
			AND ($1 = '' OR project_id = $1)
			AND ($2 = '' OR client_id = $2)
			AND ($3 = '' OR property_id = $3)
			AND (NOT $4 OR NOT is_cancelled)
		ORDER BY created_at DESC, booking_id;`
	ms, err := collectAll[models.Booking](ctx, r.db, query, filter.ProjectID, filter.ClientID, filter.PropertyID, filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return mapping.ToDomainBookingSlice(ms), nil
}

func (r *PgxBookingRepository) ListBookingsForUnit(ctx context.Context, propertyID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE property_id = $1 AND NOT is_deleted ORDER BY created_at, booking_id;`
	ms, err := collectAll[models.Booking](ctx, r.db, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for unit %s: %w", propertyID, err)
	}
	return mapping.ToDomainBookingSlice(ms), nil
}

func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)
	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, FALSE, $16, $17, $18, $19);`
	if _, err := r.db.Exec(ctx, query, m.BookingID, m.ProjectID, m.ClientID, m.PropertyID, m.EnquiryID,
		m.BookingAmount, m.AgreementAmount, m.GSTPercentage, m.BookingDate, m.ChequeNo, m.IsRegistered,
		m.RegistrationDate, m.IsCancelled, m.CancellationReason, m.CancelledAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "booking")
	}
	return nil
}

func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)
	query := `
		UPDATE bookings
		SET booking_amount = $2, agreement_amount = $3, gst_percentage = $4, booking_date = $5, cheque_no = $6,
			is_registered = $7, registration_date = $8, is_cancelled = $9, cancellation_reason = $10,
			cancelled_at = $11, last_updated_at = $12, last_updated_by = $13
		WHERE booking_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "booking", query, m.BookingID, m.BookingAmount, m.AgreementAmount, m.GSTPercentage,
		m.BookingDate, m.ChequeNo, m.IsRegistered, m.RegistrationDate, m.IsCancelled, m.CancellationReason,
		m.CancelledAt, m.LastUpdatedAt, m.LastUpdatedBy)
}
