package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookMileageEntry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkEntryRepository)
	accounts := new(MockAccountEnsurer)
	svc := services.NewWorkEntryService(repo, accounts, services.WithClock(fixedClock))
	entry := &domain.MileageEntry{
		MileageEntryID: uuid.NewString(),
		CompanyID:      "c1",
		Date:           time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		Description:    "Client visit Utrecht",
		Kilometers:     decimal.NewFromInt(84),
		RatePerKm:      decimal.RequireFromString("0.23"),
	}
	travel := ledgerAccount("4500")
	equity := ledgerAccount("0500")

	repo.On("FindMileageEntryByID", ctx, "c1", entry.MileageEntryID).Return(entry, nil).Once()
	accounts.On("EnsureAccount", ctx, "c1", "4500", "user").Return(&travel, nil).Once()
	accounts.On("EnsureAccount", ctx, "c1", "0500", "user").Return(&equity, nil).Once()
	repo.On("BookMileageEntry", ctx, mock.MatchedBy(func(e domain.MileageEntry) bool { return e.BookingID != nil }), mock.AnythingOfType("domain.Booking")).Return(nil).Once()

	booked, booking, err := svc.BookMileageEntry(ctx, "c1", entry.MileageEntryID, "user")

	require.NoError(t, err)
	assert.Equal(t, "19.32", booking.Amount.StringFixed(2))
	assert.Equal(t, travel.AccountID, booking.DebitAccountID)
	assert.Equal(t, equity.AccountID, booking.CreditAccountID)
	assert.Equal(t, domain.SourceMileageEntry, booking.Source.Type)
	assert.Equal(t, booking.BookingID, *booked.BookingID)
	repo.AssertExpectations(t)
}

func TestBookMileageEntry_AlreadyBooked(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkEntryRepository)
	accounts := new(MockAccountEnsurer)
	svc := services.NewWorkEntryService(repo, accounts)
	bookingID := uuid.NewString()
	entry := &domain.MileageEntry{MileageEntryID: uuid.NewString(), CompanyID: "c1", BookingID: &bookingID}

	repo.On("FindMileageEntryByID", ctx, "c1", entry.MileageEntryID).Return(entry, nil).Once()

	_, _, err := svc.BookMileageEntry(ctx, "c1", entry.MileageEntryID, "user")

	assert.ErrorIs(t, err, apperrors.ErrLocked)
	accounts.AssertNotCalled(t, "EnsureAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMileageEntry_DefaultRate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkEntryRepository)
	svc := services.NewWorkEntryService(repo, new(MockAccountEnsurer), services.WithClock(fixedClock))
	repo.On("SaveMileageEntry", ctx, mock.AnythingOfType("domain.MileageEntry")).Return(nil).Once()

	entry, err := svc.CreateMileageEntry(ctx, "c1", dto.CreateMileageEntryRequest{
		Date:        fixedNow,
		Description: "Office supplies run",
		Kilometers:  decimal.NewFromInt(10),
	}, "user")

	require.NoError(t, err)
	assert.Equal(t, "0.23", entry.RatePerKm.String())
	assert.Equal(t, "2.30", entry.Amount().StringFixed(2))
}

func TestUpdateTimeEntry_InvoicedIsLocked(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkEntryRepository)
	svc := services.NewWorkEntryService(repo, new(MockAccountEnsurer))
	invoiceID := uuid.NewString()
	entry := &domain.TimeEntry{TimeEntryID: uuid.NewString(), CompanyID: "c1", InvoiceID: &invoiceID}
	hours := decimal.NewFromInt(4)

	repo.On("FindTimeEntryByID", ctx, "c1", entry.TimeEntryID).Return(entry, nil).Once()

	_, err := svc.UpdateTimeEntry(ctx, "c1", entry.TimeEntryID, dto.UpdateTimeEntryRequest{Hours: &hours}, "user")

	assert.ErrorIs(t, err, apperrors.ErrLocked)
	repo.AssertNotCalled(t, "UpdateTimeEntry", mock.Anything, mock.Anything)
}

func TestCreateTimeEntry_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWorkEntryRepository)
	svc := services.NewWorkEntryService(repo, new(MockAccountEnsurer))

	_, err := svc.CreateTimeEntry(ctx, "c1", dto.CreateTimeEntryRequest{
		Date:        fixedNow,
		Description: "Pairing",
		Hours:       decimal.Zero,
		HourlyRate:  decimal.NewFromInt(90),
	}, "user")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveTimeEntry", mock.Anything, mock.Anything)
}
