package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock BookingService ---
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, params dto.ListBookingsParams) ([]domain.Booking, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetActiveBookingForUnit(ctx context.Context, propertyID string) (*domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) BookUnit(ctx context.Context, req dto.BookUnitRequest, userID string) (*domain.BookingResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingResult), args.Error(1)
}
func (m *MockBookingService) RegisterUnit(ctx context.Context, propertyID string, req dto.RegisterUnitRequest, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, propertyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, propertyID string, req dto.CancelBookingRequest, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, propertyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockAuthService) LoginWithGoogleEmail(ctx context.Context, email string) (*domain.AuthTokens, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthTokens), args.Error(1)
}

// The mocks below embed the interface so only the methods a test exercises
// need an implementation; calling anything else panics.

type MockUserService struct {
	mock.Mock
	portssvc.UserSvcFacade
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockFollowUpService struct {
	mock.Mock
	portssvc.FollowUpSvcFacade
}

func (m *MockFollowUpService) ListFollowUps(ctx context.Context, params dto.ListFollowUpsParams) ([]domain.FollowUp, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FollowUp), args.Error(1)
}

type MockProjectDetailService struct {
	mock.Mock
	portssvc.ProjectDetailSvcFacade
}

func (m *MockProjectDetailService) UploadDocument(ctx context.Context, projectID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*domain.Document, error) {
	body, _ := io.ReadAll(content)
	args := m.Called(ctx, projectID, req, string(body), userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.BookingSvcFacade       = (*MockBookingService)(nil)
	_ portssvc.AuthSvcFacade          = (*MockAuthService)(nil)
	_ portssvc.UserSvcFacade          = (*MockUserService)(nil)
	_ portssvc.FollowUpSvcFacade      = (*MockFollowUpService)(nil)
	_ portssvc.ProjectDetailSvcFacade = (*MockProjectDetailService)(nil)
)
