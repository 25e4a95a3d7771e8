package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock Mailer ---
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg outbound.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// --- Mock ReportCache ---
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetDashboard(ctx context.Context) (*domain.Dashboard, bool, error) {
	args := m.Called(ctx)
	var d *domain.Dashboard
	if args.Get(0) != nil {
		d = args.Get(0).(*domain.Dashboard)
	}
	return d, args.Bool(1), args.Error(2)
}

func (m *MockReportCache) SetDashboard(ctx context.Context, dashboard *domain.Dashboard, ttl time.Duration) error {
	args := m.Called(ctx, dashboard, ttl)
	return args.Error(0)
}

func (m *MockReportCache) InvalidateDashboard(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int, after *portsrepo.Cursor) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit, after)
	var items []domain.Notification
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.Notification)
	}
	return items, args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) NotificationExists(ctx context.Context, notificationType domain.NotificationType, entityID string, since time.Time) (bool, error) {
	args := m.Called(ctx, notificationType, entityID, since)
	return args.Bool(0), args.Error(1)
}

var (
	_ outbound.Mailer                  = (*MockMailer)(nil)
	_ outbound.ReportCache             = (*MockReportCache)(nil)
	_ portsrepo.UserRepositoryFacade   = (*MockUserRepository)(nil)
	_ portsrepo.NotificationRepository = (*MockNotificationRepository)(nil)
)
