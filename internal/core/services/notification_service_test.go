package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	repo    *MockNotificationRepository
	service portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.repo = new(MockNotificationRepository)
	suite.service = services.NewNotificationService(suite.repo)
}

func notificationsAt(base time.Time, n int) []domain.Notification {
	items := make([]domain.Notification, n)
	for i := range items {
		items[i] = domain.Notification{
			NotificationID: string(rune('a' + i)),
			Type:           domain.NotificationEnquiryFollowUp,
			CreatedAt:      base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func (suite *NotificationServiceTestSuite) TestListNotifications_ReturnsNextTokenWhenMoreRows() {
	ctx := context.Background()
	rows := notificationsAt(testNow, 3)
	suite.repo.On("ListNotifications", ctx, adminID, 3, (*portsrepo.Cursor)(nil)).Return(rows, nil).Once()

	items, next, err := suite.service.ListNotifications(ctx, adminID, dto.ListNotificationsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(items, 2)
	suite.Require().NotEmpty(next)
	createdAt, id, err := pagination.DecodeToken(next)
	suite.Require().NoError(err)
	suite.Equal("b", id)
	suite.True(rows[1].CreatedAt.Equal(createdAt))
	suite.repo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotifications_LastPageHasNoToken() {
	ctx := context.Background()
	after := testNow.Add(-time.Hour)
	token := pagination.EncodeToken(after, "z")
	suite.repo.On("ListNotifications", ctx, adminID, 21, mock.MatchedBy(func(c *portsrepo.Cursor) bool {
		return c != nil && c.ID == "z" && c.CreatedAt.Equal(after)
	})).Return(notificationsAt(after, 1), nil).Once()

	items, next, err := suite.service.ListNotifications(ctx, adminID, dto.ListNotificationsParams{NextToken: token})

	suite.Require().NoError(err)
	suite.Len(items, 1)
	suite.Empty(next)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotifications_BadToken() {
	_, _, err := suite.service.ListNotifications(context.Background(), adminID, dto.ListNotificationsParams{NextToken: "%%%"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "ListNotifications", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_PropagatesNotFound() {
	ctx := context.Background()
	suite.repo.On("MarkNotificationRead", ctx, "n1", adminID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.MarkRead(ctx, "n1", adminID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repo.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
