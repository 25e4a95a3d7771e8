package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, services.WithClock(func() time.Time { return testNow }))
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "priya",
		Password: "secret123",
		Name:     "Priya Sales",
		Email:    "Priya@PropEase.test",
		Role:     "EMPLOYEE",
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "priya").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "priya@propease.test").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "priya" && user.PasswordHash != "" && user.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleEmployee, user.Role)
	suite.Equal("priya@propease.test", user.Email)
	suite.Equal(adminID, user.CreatedBy)
	suite.True(utils.PasswordMatches(user.PasswordHash, "secret123"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(&domain.User{UserID: adminID}, nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "asha", Password: "secret123", Name: "Asha", Role: "ADMIN",
	}, adminID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	user, err := suite.service.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "ravi", Password: "secret123", Name: "Ravi", Role: "OWNER",
	}, adminID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ravi").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "ravi", Password: "secret123", Name: "Ravi", Role: "EMPLOYEE",
	}, adminID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_Empty() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 5, 10).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(ctx, 5, 10)

	suite.Require().NoError(err)
	suite.Require().NotNil(users)
	suite.Empty(users)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(nil, assert.AnError).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0)

	suite.Nil(users)
	suite.Contains(err.Error(), "failed to list users")
	suite.ErrorIs(err, assert.AnError)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	original := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		Role:   domain.RoleEmployee,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: testNow.Add(-time.Hour),
			LastUpdatedBy: "somebodyElse",
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(original, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.Equal(adminID, userArg.LastUpdatedBy)
		suite.Equal(testNow, userArg.LastUpdatedAt)
	})

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, adminID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChange() {
	ctx := context.Background()
	userID := uuid.NewString()
	name := "Same Name"
	role := "EMPLOYEE"
	original := &domain.User{UserID: userID, Name: name, Role: domain.RoleEmployee}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(original, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &name, Role: &role}, adminID)

	suite.Require().NoError(err)
	suite.Equal(original, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_EmailTakenByAnotherUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	email := "taken@propease.test"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(&domain.User{UserID: "someone-else"}, nil).Once()

	_, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Email: &email}, adminID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	err := suite.service.DeleteUser(context.Background(), adminID, adminID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, testNow, adminID).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteUser(ctx, userID, adminID))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret123")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Username: "priya", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "priya").Return(stored, nil)
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "priya", "secret123")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "priya", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "nobody", "secret123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
