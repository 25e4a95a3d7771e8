package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/handlers"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/SscSPs/propease_crm/internal/platform/config"
	"github.com/SscSPs/propease_crm/internal/utils"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	bookings  *MockBookingService
	auth      *MockAuthService
	users     *MockUserService
	followUps *MockFollowUpService
	details   *MockProjectDetailService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	validation.RegisterWithGin()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.bookings = new(MockBookingService)
	suite.auth = new(MockAuthService)
	suite.users = new(MockUserService)
	suite.followUps = new(MockFollowUpService)
	suite.details = new(MockProjectDetailService)

	cfg := &config.Config{
		IsProduction:    true,
		JWTSecret:       suite.jwtSecret,
		LoginRateLimit:  "5-M",
		MaxUploadBytes:  1024,
		FrontendBaseURL: "http://localhost:5173",
	}
	container := &portssvc.ServiceContainer{
		Booking:       suite.bookings,
		Auth:          suite.auth,
		User:          suite.users,
		FollowUp:      suite.followUps,
		ProjectDetail: suite.details,
	}

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
}

func (suite *HandlerTestSuite) token(userID string, role domain.Role) string {
	token, _, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "propease-test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) message(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestBookUnit_Created() {
	result := &domain.BookingResult{
		Booking: domain.Booking{
			BookingID:       "booking-1",
			PropertyID:      "flat-1",
			ClientID:        "client-1",
			BookingAmount:   decimal.NewFromInt(50000),
			AgreementAmount: decimal.NewFromInt(5000000),
			GSTPercentage:   decimal.NewFromInt(18),
			BookingDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		Flat: domain.Flat{PropertyID: "flat-1", UnitNumber: "A-101", Status: domain.UnitStatusBooked},
	}
	suite.bookings.On("BookUnit", mock.Anything,
		mock.MatchedBy(func(r dto.BookUnitRequest) bool {
			return r.PropertyID == "flat-1" && r.BookingAmount.Equal(decimal.NewFromInt(50000))
		}),
		"user-1",
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/bookings", map[string]any{
		"propertyId":      "flat-1",
		"clientId":        "client-1",
		"bookingAmount":   50000,
		"agreementAmount": 5000000,
	}, suite.token("user-1", domain.RoleEmployee))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BookUnitResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("booking-1", resp.Booking.BookingID)
	suite.Equal("2025-03-10", resp.Booking.BookingDate)
	suite.True(decimal.NewFromInt(900000).Equal(resp.Booking.GSTAmount))
	suite.True(decimal.NewFromInt(5900000).Equal(resp.Booking.TotalAmount))
	suite.Equal(domain.UnitStatusBooked, resp.Flat.Status)
	suite.bookings.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBookUnit_ConflictMessage() {
	suite.bookings.On("BookUnit", mock.Anything, mock.Anything, "user-1").
		Return(nil, apperrors.Conflictf("Unit A-101 is not vacant")).Once()

	w := suite.do(http.MethodPost, "/api/bookings", map[string]any{"propertyId": "flat-1"}, suite.token("user-1", domain.RoleEmployee))

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Unit A-101 is not vacant", suite.message(w))
}

func (suite *HandlerTestSuite) TestBookUnit_RejectsMissingOrBadToken() {
	w := suite.do(http.MethodPost, "/api/bookings", map[string]any{"propertyId": "flat-1"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	other, _, err := utils.GenerateJWT("user-1", string(domain.RoleAdmin), "some-other-secret", time.Hour, "x")
	suite.Require().NoError(err)
	w = suite.do(http.MethodPost, "/api/bookings", map[string]any{"propertyId": "flat-1"}, other)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.bookings.AssertNotCalled(suite.T(), "BookUnit")
}

func (suite *HandlerTestSuite) TestBookUnit_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/bookings", map[string]any{"clientId": "client-1"}, suite.token("user-1", domain.RoleEmployee))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("propertyId is required", suite.message(w))
	suite.bookings.AssertNotCalled(suite.T(), "BookUnit")
}

func (suite *HandlerTestSuite) TestRegisterUnit_NoBookingFound() {
	suite.bookings.On("RegisterUnit", mock.Anything, "flat-1", dto.RegisterUnitRequest{}, "user-1").
		Return(nil, apperrors.Validationf("No booking found for this unit")).Once()

	w := suite.do(http.MethodPost, "/api/flats/flat-1/register", nil, suite.token("user-1", domain.RoleEmployee))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("No booking found for this unit", suite.message(w))
}

func (suite *HandlerTestSuite) TestCancelBooking_InternalErrorIsNotLeaked() {
	suite.bookings.On("CancelBooking", mock.Anything, "flat-1", dto.CancelBookingRequest{Reason: "loan rejected"}, "user-1").
		Return(nil, errors.New("conn reset by peer")).Once()

	w := suite.do(http.MethodPost, "/api/flats/flat-1/cancel-booking", map[string]any{"reason": "loan rejected"}, suite.token("user-1", domain.RoleEmployee))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to cancel booking", suite.message(w))
}

func (suite *HandlerTestSuite) TestCreateUser_AdminOnly() {
	body := map[string]any{"username": "ravi", "password": "secret1", "name": "Ravi", "role": "EMPLOYEE"}

	w := suite.do(http.MethodPost, "/api/users", body, suite.token("user-2", domain.RoleEmployee))
	suite.Equal(http.StatusForbidden, w.Code)
	suite.users.AssertNotCalled(suite.T(), "CreateUser")

	suite.users.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest"), "admin-1").
		Return(&domain.User{UserID: "user-3", Username: "ravi", Role: domain.RoleEmployee}, nil).Once()

	w = suite.do(http.MethodPost, "/api/users", body, suite.token("admin-1", domain.RoleAdmin))
	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("user-3", resp.UserID)
	suite.users.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_ReturnsTokenPair() {
	suite.auth.On("Login", mock.Anything, "asha", "propease@123").Return(&domain.AuthTokens{
		User:                 domain.User{UserID: "user-1", Name: "Asha", Role: domain.RoleAdmin},
		AccessToken:          "access",
		AccessTokenExpiresAt: time.Now().Add(time.Hour),
		RefreshToken:         "refresh",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/login", map[string]any{"username": "asha", "password": "propease@123"}, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access", resp.AccessToken)
	suite.Equal("refresh", resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal(domain.RoleAdmin, resp.Role)
	suite.InDelta(3600, resp.ExpiresInSeconds, 5)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.auth.On("Login", mock.Anything, "asha", "wrong").Return(nil, apperrors.ErrUnauthorized)

	body := map[string]any{"username": "asha", "password": "wrong"}
	for i := 0; i < 5; i++ {
		w := suite.do(http.MethodPost, "/api/login", body, "")
		suite.Equal(http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}
	w := suite.do(http.MethodPost, "/api/login", body, "")
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.auth.AssertNumberOfCalls(suite.T(), "Login", 5)
}

func (suite *HandlerTestSuite) TestRefresh_Expired() {
	suite.auth.On("Refresh", mock.Anything, "old").Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.do(http.MethodPost, "/api/refresh", map[string]any{"refreshToken": "old"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("refresh token expired", suite.message(w))
}

func (suite *HandlerTestSuite) TestLogout() {
	suite.auth.On("Logout", mock.Anything, "user-1").Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/logout", nil, suite.token("user-1", domain.RoleEmployee))
	suite.Equal(http.StatusOK, w.Code)
	suite.auth.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListFollowUps_View() {
	suite.followUps.On("ListFollowUps", mock.Anything, dto.ListFollowUpsParams{View: "overdue"}).
		Return([]domain.FollowUp{{FollowUpID: "f-1", FollowUpDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/followups?view=overdue", nil, suite.token("user-1", domain.RoleEmployee))
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.FollowUpResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("2025-03-08", resp[0].FollowUpDate)

	w = suite.do(http.MethodGet, "/api/followups?view=someday", nil, suite.token("user-1", domain.RoleEmployee))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) uploadRequest(content string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("title", "Floor plan A"))
	suite.Require().NoError(mw.WriteField("documentType", "FloorPlan"))
	fw, err := mw.CreateFormFile("file", "plan-a.pdf")
	suite.Require().NoError(err)
	_, err = fw.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects/project-1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.token("user-1", domain.RoleEmployee))
	return req
}

func (suite *HandlerTestSuite) TestUploadDocument() {
	suite.details.On("UploadDocument", mock.Anything, "project-1",
		mock.MatchedBy(func(r dto.UploadDocumentRequest) bool {
			return r.Title == "Floor plan A" && r.DocumentType == "FloorPlan" && r.FileName == "plan-a.pdf"
		}),
		"%PDF-1.7", "user-1",
	).Return(&domain.Document{DocumentID: "doc-1", ProjectID: "project-1", FileName: "plan-a.pdf", SizeBytes: 8}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.uploadRequest("%PDF-1.7"))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("/api/documents/doc-1/file", resp.DownloadURL)
	suite.details.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUploadDocument_TooLarge() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.uploadRequest(strings.Repeat("x", 4096)))

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	suite.details.AssertNotCalled(suite.T(), "UploadDocument")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
