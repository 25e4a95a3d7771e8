package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bookingService implements the BookingSvcFacade interface. Every workflow
// locks the unit row, recomputes the unit status from its bookings and writes
// it back in the same transaction.
type bookingService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewBookingService creates a new booking service with the provided options
func NewBookingService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.BookingSvcFacade {
	return &bookingService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

var hundred = decimal.NewFromInt(100)

func validateBookingAmounts(req dto.BookUnitRequest) (decimal.Decimal, error) {
	if !req.BookingAmount.IsPositive() {
		return decimal.Zero, apperrors.Validationf("bookingAmount must be greater than zero")
	}
	if !req.AgreementAmount.IsPositive() {
		return decimal.Zero, apperrors.Validationf("agreementAmount must be greater than zero")
	}
	if req.BookingAmount.GreaterThan(req.AgreementAmount) {
		return decimal.Zero, apperrors.Validationf("bookingAmount cannot exceed agreementAmount")
	}
	gst := domain.DefaultGSTPercentage
	if req.GSTPercentage != nil {
		gst = *req.GSTPercentage
	}
	if gst.IsNegative() || gst.GreaterThan(hundred) {
		return decimal.Zero, apperrors.Validationf("gstPercentage must be between 0 and 100")
	}
	return gst, nil
}

// lockUnit reads the unit for update together with all its bookings.
func lockUnit(ctx context.Context, tx portsrepo.Repositories, propertyID string) (*domain.Flat, []domain.Booking, error) {
	flat, err := tx.InventoryRepo.FindFlatForUpdate(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := tx.ProjectRepo.FindProjectByID(ctx, flat.ProjectID); err != nil {
		return nil, nil, err
	}
	bookings, err := tx.BookingRepo.ListBookingsForUnit(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return flat, bookings, nil
}

// storeUnitStatus rewrites the cached unit status from the given bookings.
func (s *bookingService) storeUnitStatus(ctx context.Context, tx portsrepo.Repositories, flat *domain.Flat, bookings []domain.Booking, userID string) error {
	status := domain.DeriveUnitStatus(bookings)
	now := s.now()
	if err := tx.InventoryRepo.SetFlatStatus(ctx, flat.PropertyID, status, userID, now); err != nil {
		return err
	}
	flat.Status = status
	flat.Touch(userID, now)
	return nil
}

// replaceBooking swaps the updated booking into the unit's booking list.
func replaceBooking(bookings []domain.Booking, updated domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		if b.BookingID == updated.BookingID {
			b = updated
		}
		out[i] = b
	}
	return out
}

func (s *bookingService) BookUnit(ctx context.Context, req dto.BookUnitRequest, userID string) (*domain.BookingResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	gst, err := validateBookingAmounts(req)
	if err != nil {
		return nil, err
	}
	bookingDate := s.today()
	if req.BookingDate != nil && *req.BookingDate != "" {
		if bookingDate, err = domain.ParseDate(*req.BookingDate); err != nil {
			return nil, apperrors.Validationf("bookingDate must be a YYYY-MM-DD date")
		}
	}

	now := s.now()
	var result domain.BookingResult
	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flat, bookings, err := lockUnit(ctx, tx, req.PropertyID)
		if err != nil {
			return err
		}
		if status := domain.DeriveUnitStatus(bookings); status != domain.UnitStatusVacant {
			return apperrors.Conflictf("unit %s is %s", flat.UnitNumber, status)
		}

		client, isNew, err := resolveClient(ctx, tx.ClientRepo, req.ClientID, req.CreateNewClient, req.NewClient, userID, now)
		if err != nil {
			return err
		}
		if isNew {
			if err := tx.ClientRepo.SaveClient(ctx, *client); err != nil {
				return err
			}
			result.NewClient = client
		}

		var enquiryID *string
		if req.EnquiryID != nil && *req.EnquiryID != "" {
			enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, *req.EnquiryID)
			if err != nil {
				return err
			}
			if enquiry.ProjectID != flat.ProjectID {
				return apperrors.Validationf("enquiry belongs to a different project")
			}
			if enquiry.Status == domain.EnquiryStatusCancelled {
				return apperrors.Conflictf("enquiry is cancelled")
			}
			enquiry.Status = domain.EnquiryStatusCompleted
			enquiry.Touch(userID, now)
			if err := tx.EnquiryRepo.UpdateEnquiry(ctx, *enquiry); err != nil {
				return err
			}
			enquiryID = &enquiry.EnquiryID
			result.Enquiry = enquiry
		}

		result.Booking = domain.Booking{
			BookingID:       uuid.NewString(),
			ProjectID:       flat.ProjectID,
			ClientID:        client.ClientID,
			PropertyID:      flat.PropertyID,
			EnquiryID:       enquiryID,
			BookingAmount:   req.BookingAmount,
			AgreementAmount: req.AgreementAmount,
			GSTPercentage:   gst,
			BookingDate:     bookingDate,
			ChequeNo:        strings.TrimSpace(req.ChequeNo),
			AuditFields:     domain.NewAuditFields(userID, now),
		}
		if err := tx.BookingRepo.SaveBooking(ctx, result.Booking); err != nil {
			return err
		}
		if err := s.storeUnitStatus(ctx, tx, flat, append(bookings, result.Booking), userID); err != nil {
			return err
		}
		result.Flat = *flat

		return s.recordActivity(ctx, tx, userID, "Unit "+flat.UnitNumber+" booked", entityBooking, result.Booking.BookingID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to book unit", slog.String("property_id", req.PropertyID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventBookingCreated, result.Booking.BookingID, userID, result.Booking))
	s.LogInfo(ctx, "Unit booked successfully",
		slog.String("booking_id", result.Booking.BookingID),
		slog.String("property_id", result.Flat.PropertyID))
	return &result, nil
}

func (s *bookingService) RegisterUnit(ctx context.Context, propertyID string, req dto.RegisterUnitRequest, userID string) (*domain.Booking, error) {
	registrationDate := s.today()
	if req.RegistrationDate != nil && *req.RegistrationDate != "" {
		parsed, err := domain.ParseDate(*req.RegistrationDate)
		if err != nil {
			return nil, apperrors.Validationf("registrationDate must be a YYYY-MM-DD date")
		}
		registrationDate = parsed
	}

	var registered domain.Booking
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flat, bookings, err := lockUnit(ctx, tx, propertyID)
		if err != nil {
			return err
		}
		active := domain.ActiveBooking(bookings)
		if active == nil {
			return apperrors.Validationf("No booking found for this unit")
		}
		if active.IsRegistered {
			return apperrors.Conflictf("unit %s is already registered", flat.UnitNumber)
		}
		if registrationDate.Before(active.BookingDate) {
			return apperrors.Validationf("registrationDate cannot be before the booking date")
		}

		registered = *active
		registered.IsRegistered = true
		registered.RegistrationDate = &registrationDate
		registered.Touch(userID, s.now())
		if err := tx.BookingRepo.UpdateBooking(ctx, registered); err != nil {
			return err
		}
		if err := s.storeUnitStatus(ctx, tx, flat, replaceBooking(bookings, registered), userID); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Unit "+flat.UnitNumber+" registered", entityBooking, registered.BookingID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register unit", slog.String("property_id", propertyID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventBookingRegistered, registered.BookingID, userID, registered))
	return &registered, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, propertyID string, req dto.CancelBookingRequest, userID string) (*domain.Booking, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.Validationf("a cancellation reason is required")
	}

	var cancelled domain.Booking
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flat, bookings, err := lockUnit(ctx, tx, propertyID)
		if err != nil {
			return err
		}
		active := domain.ActiveBooking(bookings)
		if active == nil {
			return apperrors.NotFoundf("no active booking for unit %s", flat.UnitNumber)
		}
		if active.IsRegistered {
			return apperrors.Conflictf("a registered booking cannot be cancelled")
		}

		now := s.now()
		cancelled = *active
		cancelled.IsCancelled = true
		cancelled.CancellationReason = reason
		cancelled.CancelledAt = &now
		cancelled.Touch(userID, now)
		if err := tx.BookingRepo.UpdateBooking(ctx, cancelled); err != nil {
			return err
		}
		if err := s.storeUnitStatus(ctx, tx, flat, replaceBooking(bookings, cancelled), userID); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Booking for unit "+flat.UnitNumber+" cancelled", entityBooking, cancelled.BookingID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel booking", slog.String("property_id", propertyID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventBookingCancelled, cancelled.BookingID, userID, cancelled))
	return &cancelled, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.repos.BookingRepo.FindBookingByID(ctx, bookingID)
}

func (s *bookingService) ListBookings(ctx context.Context, params dto.ListBookingsParams) ([]domain.Booking, error) {
	bookings, err := s.repos.BookingRepo.ListBookings(ctx, portsrepo.BookingFilter{
		ProjectID:  params.ProjectID,
		ClientID:   params.ClientID,
		PropertyID: params.PropertyID,
		ActiveOnly: params.ActiveOnly,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings")
		return nil, err
	}
	return bookings, nil
}

func (s *bookingService) GetActiveBookingForUnit(ctx context.Context, propertyID string) (*domain.Booking, error) {
	if _, err := s.repos.InventoryRepo.FindFlatByID(ctx, propertyID); err != nil {
		return nil, err
	}
	bookings, err := s.repos.BookingRepo.ListBookingsForUnit(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	active := domain.ActiveBooking(bookings)
	if active == nil {
		return nil, apperrors.NotFoundf("no active booking for this unit")
	}
	return active, nil
}
