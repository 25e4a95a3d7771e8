package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookUnit_VacantUnitForExistingClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]

	result, err := f.bookings.BookUnit(ctx, bookRequest(unit.PropertyID, f.clientID), adminID)
	require.NoError(t, err)

	b := result.Booking
	assert.Equal(t, unit.PropertyID, b.PropertyID)
	assert.Equal(t, f.clientID, b.ClientID)
	assert.Equal(t, f.projectID, b.ProjectID)
	assert.True(t, decimal.NewFromInt(50000).Equal(b.BookingAmount))
	assert.True(t, decimal.NewFromInt(5000000).Equal(b.AgreementAmount))
	assert.True(t, decimal.NewFromInt(18).Equal(b.GSTPercentage))
	assert.False(t, b.IsRegistered)
	assert.False(t, b.IsCancelled)
	assert.Equal(t, domain.CalendarDate(testNow, nil), b.BookingDate)
	assert.Nil(t, result.NewClient)

	assert.Equal(t, domain.UnitStatusBooked, f.flatStatus(t, unit.PropertyID))
	assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, f.flats[1].PropertyID))

	all, err := f.bookings.ListBookings(ctx, dto.ListBookingsParams{PropertyID: unit.PropertyID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookUnit_CompletesLinkedEnquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]

	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID:  f.projectID,
		ClientID:   f.clientID,
		PropertyID: unit.PropertyID,
		Budget:     "55L",
	}, adminID)
	require.NoError(t, err)

	req := bookRequest(unit.PropertyID, f.clientID)
	req.EnquiryID = &created.Enquiry.EnquiryID
	result, err := f.bookings.BookUnit(ctx, req, adminID)
	require.NoError(t, err)
	require.NotNil(t, result.Booking.EnquiryID)
	assert.Equal(t, created.Enquiry.EnquiryID, *result.Booking.EnquiryID)

	enquiry, err := f.enquiries.GetEnquiryByID(ctx, created.Enquiry.EnquiryID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusCompleted, enquiry.Status)
}

func TestBookUnit_CreatesNewClient(t *testing.T) {
	f := newFixture(t)
	newClient := clientRequest("Meera Joshi", "9123456780")

	result, err := f.bookings.BookUnit(context.Background(), dto.BookUnitRequest{
		PropertyID:      f.flats[1].PropertyID,
		CreateNewClient: true,
		NewClient:       &newClient,
		BookingAmount:   decimal.NewFromInt(100000),
		AgreementAmount: decimal.NewFromInt(4500000),
	}, adminID)
	require.NoError(t, err)
	require.NotNil(t, result.NewClient)
	assert.Equal(t, result.NewClient.ClientID, result.Booking.ClientID)
	assert.True(t, domain.DefaultGSTPercentage.Equal(result.Booking.GSTPercentage))
}

func TestBookUnit_RejectsUnitThatIsNotVacant(t *testing.T) {
	f := newFixture(t)
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	_, err := f.bookings.BookUnit(context.Background(), bookRequest(unit.PropertyID, f.clientID), adminID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	all, err := f.bookings.ListBookings(context.Background(), dto.ListBookingsParams{PropertyID: unit.PropertyID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookUnit_AmountValidation(t *testing.T) {
	f := newFixture(t)
	unit := f.flats[0]

	tests := []struct {
		name   string
		mutate func(*dto.BookUnitRequest)
	}{
		{"zero booking amount", func(r *dto.BookUnitRequest) { r.BookingAmount = decimal.Zero }},
		{"negative agreement amount", func(r *dto.BookUnitRequest) { r.AgreementAmount = decimal.NewFromInt(-1) }},
		{"booking above agreement", func(r *dto.BookUnitRequest) { r.BookingAmount = decimal.NewFromInt(6000000) }},
		{"gst above 100", func(r *dto.BookUnitRequest) {
			gst := decimal.NewFromInt(101)
			r.GSTPercentage = &gst
		}},
		{"no client", func(r *dto.BookUnitRequest) { r.ClientID = "" }},
		{"bad booking date", func(r *dto.BookUnitRequest) {
			d := "10/03/2025"
			r.BookingDate = &d
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookRequest(unit.PropertyID, f.clientID)
			tt.mutate(&req)
			_, err := f.bookings.BookUnit(context.Background(), req, adminID)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, unit.PropertyID))
		})
	}
}

func TestRegisterUnit_WithoutBookingIsRejected(t *testing.T) {
	f := newFixture(t)
	unit := f.flats[0]

	_, err := f.bookings.RegisterUnit(context.Background(), unit.PropertyID, dto.RegisterUnitRequest{}, adminID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "No booking found for this unit")
	assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, unit.PropertyID))
}

func TestRegisterUnit_MarksUnitRegistered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	registered, err := f.bookings.RegisterUnit(ctx, unit.PropertyID, dto.RegisterUnitRequest{}, adminID)
	require.NoError(t, err)
	assert.True(t, registered.IsRegistered)
	require.NotNil(t, registered.RegistrationDate)
	assert.Equal(t, domain.UnitStatusRegistered, f.flatStatus(t, unit.PropertyID))

	_, err = f.bookings.RegisterUnit(ctx, unit.PropertyID, dto.RegisterUnitRequest{}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.bookings.CancelBooking(ctx, unit.PropertyID, dto.CancelBookingRequest{Reason: "buyer withdrew"}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, domain.UnitStatusRegistered, f.flatStatus(t, unit.PropertyID))
}

func TestRegisterUnit_DateBeforeBookingIsRejected(t *testing.T) {
	f := newFixture(t)
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	early := "2025-03-01"
	_, err := f.bookings.RegisterUnit(context.Background(), unit.PropertyID, dto.RegisterUnitRequest{RegistrationDate: &early}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.UnitStatusBooked, f.flatStatus(t, unit.PropertyID))
}

func TestCancelBooking_RequiresReason(t *testing.T) {
	f := newFixture(t)
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	for _, reason := range []string{"", "   "} {
		_, err := f.bookings.CancelBooking(context.Background(), unit.PropertyID, dto.CancelBookingRequest{Reason: reason}, adminID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, domain.UnitStatusBooked, f.flatStatus(t, unit.PropertyID))
	}
}

func TestCancelBooking_FreesUnitForRebooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]
	first := f.book(t, unit.PropertyID)

	cancelled, err := f.bookings.CancelBooking(ctx, unit.PropertyID, dto.CancelBookingRequest{Reason: "loan rejected"}, adminID)
	require.NoError(t, err)
	assert.Equal(t, first.Booking.BookingID, cancelled.BookingID)
	assert.True(t, cancelled.IsCancelled)
	assert.Equal(t, "loan rejected", cancelled.CancellationReason)
	assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, unit.PropertyID))

	_, err = f.bookings.CancelBooking(ctx, unit.PropertyID, dto.CancelBookingRequest{Reason: "again"}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	second := f.book(t, unit.PropertyID)
	active, err := f.bookings.GetActiveBookingForUnit(ctx, unit.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, second.Booking.BookingID, active.BookingID)

	all, err := f.bookings.ListBookings(ctx, dto.ListBookingsParams{PropertyID: unit.PropertyID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	onlyActive, err := f.bookings.ListBookings(ctx, dto.ListBookingsParams{PropertyID: unit.PropertyID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, onlyActive, 1)
}

func TestBookUnit_ProjectDeletedIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repos.ProjectRepo.MarkProjectDeleted(ctx, f.projectID, adminID, f.now))

	_, err := f.bookings.BookUnit(ctx, bookRequest(f.flats[0].PropertyID, f.clientID), adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, f.flats[0].PropertyID))
}
