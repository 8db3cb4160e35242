package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/handlers"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookingService ---
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBooking(ctx context.Context, companyID, bookingID, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, companyID, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, userID)
	var next *string
	if token, ok := args.Get(1).(string); ok {
		next = &token
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), next, args.Error(2)
}
func (m *MockBookingService) CreateBooking(ctx context.Context, companyID string, req dto.CreateBookingRequest, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateBooking(ctx context.Context, companyID, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, companyID, bookingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) DeleteBooking(ctx context.Context, companyID, bookingID, userID string) error {
	args := m.Called(ctx, companyID, bookingID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.BookingSvcFacade = (*MockBookingService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, companyID, invoiceID, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), nil, args.Error(2)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock ReservationService ---
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Advise(ctx context.Context, companyID, userID string) (*domain.ReservationAdvice, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationAdvice), args.Error(1)
}

var _ portssvc.ReservationSvc = (*MockReservationService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockBookingService     *MockBookingService
	mockInvoiceService     *MockInvoiceService
	mockReservationService *MockReservationService
	jwtSecret              string
	userID                 string
	companyID              string
}

// generateTestToken creates a signed JWT for the test user.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "freelance-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.companyID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBookingService = new(MockBookingService)
	suite.mockInvoiceService = new(MockInvoiceService)
	suite.mockReservationService = new(MockReservationService)

	company := suite.router.Group("/api/v1/companies/:company_id")
	handlers.RegisterBookingRoutes(company, suite.mockBookingService)
	handlers.RegisterInvoiceRoutes(company, suite.mockInvoiceService)
	handlers.RegisterReservationRoutes(company, suite.mockReservationService)
}

func (suite *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	url := fmt.Sprintf("/api/v1/companies/%s%s", suite.companyID, path)
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateBooking_Success() {
	booking := &domain.Booking{
		BookingID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Date:            time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Office chair",
		DebitAccountID:  "acc-4000",
		CreditAccountID: "acc-1100",
		Amount:          decimal.NewFromInt(250),
	}

	suite.mockBookingService.On("CreateBooking",
		mock.Anything,
		suite.companyID,
		mock.MatchedBy(func(req dto.CreateBookingRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(250)) && req.DebitAccountID == "acc-4000"
		}),
		suite.userID,
	).Return(booking, nil).Once()

	w := suite.do(http.MethodPost, "/bookings", `{
		"date": "2025-05-15T00:00:00Z",
		"description": "Office chair",
		"debitAccountID": "acc-4000",
		"creditAccountID": "acc-1100",
		"amount": "250"
	}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BookingResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(booking.BookingID, resp.BookingID)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(250)))
	suite.False(resp.Locked)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateBooking_InvalidJSON() {
	w := suite.do(http.MethodPost, "/bookings", `{"description":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "CreateBooking")
}

func (suite *HandlerTestSuite) TestCreateBooking_ValidationError() {
	suite.mockBookingService.On("CreateBooking", mock.Anything, suite.companyID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/bookings", `{
		"date": "2025-05-15T00:00:00Z",
		"description": "Nothing",
		"debitAccountID": "acc-4000",
		"creditAccountID": "acc-1100",
		"amount": "0"
	}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "amount must be greater than zero")
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/companies/"+suite.companyID+"/bookings", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "ListBookings")
}

func (suite *HandlerTestSuite) TestListBookings_PassesPaging() {
	token := "cursor-1"
	suite.mockBookingService.On("ListBookings", mock.Anything, suite.companyID, 5,
		mock.MatchedBy(func(t *string) bool { return t != nil && *t == token }),
		suite.userID,
	).Return([]domain.Booking{{BookingID: "b1"}, {BookingID: "b2"}}, "cursor-2", nil).Once()

	w := suite.do(http.MethodGet, "/bookings?limit=5&nextToken="+token, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBookingsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Bookings, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor-2", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListBookings_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/bookings?limit=1000", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBookingService.AssertNotCalled(suite.T(), "ListBookings")
}

func (suite *HandlerTestSuite) TestServiceErrorsMapToStatus() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"locked", fmt.Errorf("%w: booking is generated by an invoice", apperrors.ErrLocked), http.StatusLocked},
		{"invariant", apperrors.Invariant("unbalanced"), http.StatusInternalServerError},
		{"infrastructure", apperrors.NewAppError(500, "db down", apperrors.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			bookingID := uuid.NewString()
			suite.mockBookingService.On("DeleteBooking", mock.Anything, suite.companyID, bookingID, suite.userID).
				Return(tt.err).Once()

			w := suite.do(http.MethodDelete, "/bookings/"+bookingID, "")
			suite.Equal(tt.status, w.Code)
			if tt.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "db down")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateBooking_Locked() {
	bookingID := uuid.NewString()
	suite.mockBookingService.On("UpdateBooking", mock.Anything, suite.companyID, bookingID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: booking %s is linked to invoice", apperrors.ErrLocked, bookingID)).Once()

	w := suite.do(http.MethodPut, "/bookings/"+bookingID, `{"description":"changed"}`)

	suite.Equal(http.StatusLocked, w.Code)
	suite.mockBookingService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateInvoice_DuplicateNumber() {
	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool { return req.Number == "2025-001" }),
		suite.userID,
	).Return(nil, fmt.Errorf("%w: invoice number 2025-001", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/invoices", `{
		"customerID": "cust-1",
		"number": "2025-001",
		"date": "2025-05-01T00:00:00Z",
		"dueDate": "2025-05-31T00:00:00Z",
		"lines": [{"description": "Consulting", "quantity": "1", "unitPrice": "100", "vatCode": "HOOG"}]
	}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetInvoice_DerivesOverdue() {
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Number:    "2020-007",
		Date:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
		Total:     decimal.NewFromInt(121),
		VatTotal:  decimal.NewFromInt(21),
		Status:    domain.InvoiceSent,
	}
	suite.mockInvoiceService.On("GetInvoice", mock.Anything, suite.companyID, invoiceID, suite.userID).Return(invoice, nil).Once()

	w := suite.do(http.MethodGet, "/invoices/"+invoiceID, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.InvoiceSent, resp.Status)
	suite.Equal(domain.InvoiceOverdue, resp.EffectiveStatus)
	suite.True(resp.NetTotal.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestUpdateInvoiceStatus_RejectsUnknownStatus() {
	w := suite.do(http.MethodPatch, "/invoices/"+uuid.NewString()+"/status", `{"status":"overdue"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "UpdateInvoiceStatus")
}

func (suite *HandlerTestSuite) TestReservationAdvice() {
	advice := &domain.ReservationAdvice{
		VatOwed:                decimal.NewFromInt(6090),
		IncomeTaxReservation:   decimal.RequireFromString("12345.95"),
		RecommendedReservation: decimal.RequireFromString("18435.95"),
		ShouldBeReservedNow:    decimal.RequireFromString("9116.68"),
		CurrentlyReserved:      decimal.NewFromInt(3000),
		Shortfall:              decimal.RequireFromString("6116.68"),
		DaysElapsed:            45,
		DaysTotal:              91,
	}
	suite.mockReservationService.On("Advise", mock.Anything, suite.companyID, suite.userID).Return(advice, nil).Once()

	w := suite.do(http.MethodGet, "/reservation", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.ReservationAdvice
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Shortfall.Equal(advice.Shortfall))
	suite.Equal(45, resp.DaysElapsed)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
