package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, time.May, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockAccountRepo *MockLedgerAccountRepository
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.BookingSvcFacade
	companyID       string
	userID          string
	bank            domain.LedgerAccount
	revenue         domain.LedgerAccount
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockAccountRepo = new(MockLedgerAccountRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewBookingService(
		suite.mockBookingRepo,
		suite.mockAccountRepo,
		services.WithCompanyAuthorizer(suite.mockAuthorizer),
		services.WithClock(fixedClock),
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bank = domain.LedgerAccount{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "1100", Category: domain.Asset}
	suite.revenue = domain.LedgerAccount{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "8000", Category: domain.Revenue}
}

func (suite *BookingServiceTestSuite) createRequest(amount string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Date:            time.Date(2025, time.May, 3, 14, 0, 0, 0, time.UTC),
		Description:     "  Consultancy  ",
		DebitAccountID:  suite.bank.AccountID,
		CreditAccountID: suite.revenue.AccountID,
		Amount:          decimal.RequireFromString(amount),
	}
}

func (suite *BookingServiceTestSuite) TestCreateBooking_Success() {
	ctx := context.Background()
	req := suite.createRequest("100.004")
	code := "laag"
	req.VatCode = &code

	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	accounts := map[string]domain.LedgerAccount{
		suite.bank.AccountID:    suite.bank,
		suite.revenue.AccountID: suite.revenue,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, []string{suite.bank.AccountID, suite.revenue.AccountID}).Return(accounts, nil).Once()
	suite.mockBookingRepo.On("SaveBookings", ctx, mock.AnythingOfType("[]domain.Booking")).Return(nil).Once()

	booking, err := suite.service.CreateBooking(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(booking)
	suite.NotEmpty(booking.BookingID)
	suite.Equal("Consultancy", booking.Description)
	suite.True(decimal.RequireFromString("100").Equal(booking.Amount))
	suite.Equal(time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC), booking.Date)
	suite.Require().NotNil(booking.VatCode)
	suite.Equal(domain.VatLow, *booking.VatCode)
	suite.Nil(booking.Source)
	suite.Equal(fixedNow, booking.CreatedAt)
	suite.Equal(suite.userID, booking.CreatedBy)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestCreateBooking_AuthorizationFail() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateBooking(ctx, suite.companyID, suite.createRequest("10"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBookings", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_RejectsInvalidInput() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil)

	sameAccount := suite.createRequest("10")
	sameAccount.CreditAccountID = sameAccount.DebitAccountID
	noDescription := suite.createRequest("10")
	noDescription.Description = "   "

	cases := map[string]dto.CreateBookingRequest{
		"zero amount":     suite.createRequest("0"),
		"negative amount": suite.createRequest("-5"),
		"sub-cent amount": suite.createRequest("0.004"),
		"same account":    sameAccount,
		"no description":  noDescription,
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.CreateBooking(ctx, suite.companyID, req, suite.userID)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBookings", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreateBooking_AccountOfOtherCompany() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	accounts := map[string]domain.LedgerAccount{suite.bank.AccountID: suite.bank}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateBooking(ctx, suite.companyID, suite.createRequest("10"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "SaveBookings", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) linkedBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Date:            time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Factuur 2025-001 omzet",
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: suite.revenue.AccountID,
		Amount:          decimal.NewFromInt(100),
		Source:          &domain.BookingSource{Type: domain.SourceInvoice, ID: uuid.NewString()},
	}
}

func (suite *BookingServiceTestSuite) TestUpdateBooking_LinkedIsLocked() {
	ctx := context.Background()
	linked := suite.linkedBooking()
	amount := decimal.NewFromInt(50)

	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.companyID, linked.BookingID).Return(linked, nil).Once()

	_, err := suite.service.UpdateBooking(ctx, suite.companyID, linked.BookingID, dto.UpdateBookingRequest{Amount: &amount}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "UpdateBooking", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestDeleteBooking_LinkedIsLocked() {
	ctx := context.Background()
	linked := suite.linkedBooking()

	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.companyID, linked.BookingID).Return(linked, nil).Once()

	err := suite.service.DeleteBooking(ctx, suite.companyID, linked.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "DeleteBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestUpdateBooking_Success() {
	ctx := context.Background()
	created := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	current := &domain.Booking{
		BookingID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		Date:            time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Consultancy",
		DebitAccountID:  suite.bank.AccountID,
		CreditAccountID: suite.revenue.AccountID,
		Amount:          decimal.NewFromInt(100),
		AuditFields:     domain.AuditFields{CreatedAt: created, CreatedBy: "creator"},
	}
	amount := decimal.RequireFromString("250.50")

	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.companyID, current.BookingID).Return(current, nil).Once()
	suite.mockBookingRepo.On("UpdateBooking", ctx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.BookingID == current.BookingID && b.Amount.Equal(amount) && b.CreatedBy == "creator"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBooking(ctx, suite.companyID, current.BookingID, dto.UpdateBookingRequest{Amount: &amount}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(current.BookingID, updated.BookingID)
	suite.Equal(created, updated.CreatedAt)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.Equal(current.Description, updated.Description)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestDeleteBooking_LinkedConcurrently() {
	ctx := context.Background()
	current := &domain.Booking{BookingID: uuid.NewString(), CompanyID: suite.companyID}

	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.companyID, current.BookingID).Return(current, nil).Once()
	suite.mockBookingRepo.On("DeleteBooking", ctx, suite.companyID, current.BookingID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBooking(ctx, suite.companyID, current.BookingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
}

func (suite *BookingServiceTestSuite) TestGetBooking_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockAuthorizer.On("AuthorizeCompanyAccess", ctx, suite.userID, suite.companyID).Return(nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, suite.companyID, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBooking(ctx, suite.companyID, id, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
