package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSuggestion() domain.DocumentSuggestion {
	return domain.DocumentSuggestion{
		Category:            "software",
		SuggestedLedgerCode: "4300",
		ExtractedAmount:     decimal.RequireFromString("121"),
		Vendor:              "Acme Cloud",
		VatPercentage:       decimal.NewFromInt(21),
	}
}

func TestProcessDocumentSuggestion_BooksCostAndInputVat(t *testing.T) {
	ctx := context.Background()
	bookingRepo := new(MockBookingRepository)
	rulesRepo := new(MockTaxRulesRepository)
	accounts := new(MockAccountEnsurer)
	svc := services.NewDocumentIntakeService(bookingRepo, rulesRepo, accounts, services.WithClock(fixedClock))
	companyID := uuid.NewString()

	cost := ledgerAccount("4300")
	bank := ledgerAccount("1100")
	inputVat := ledgerAccount("1510")
	rulesRepo.On("FindTaxRules", ctx, companyID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	accounts.On("EnsureAccount", ctx, companyID, "4300", "user").Return(&cost, nil).Once()
	accounts.On("EnsureAccount", ctx, companyID, "1100", "user").Return(&bank, nil).Once()
	accounts.On("EnsureAccount", ctx, companyID, "1510", "user").Return(&inputVat, nil).Once()
	bookingRepo.On("SaveBookings", ctx, mock.MatchedBy(func(b []domain.Booking) bool { return len(b) == 2 })).Return(nil).Once()

	result, err := svc.ProcessDocumentSuggestion(ctx, companyID, validSuggestion(), "", "user")

	require.NoError(t, err)
	assert.Equal(t, cost.AccountID, result.CostBooking.DebitAccountID)
	assert.Equal(t, bank.AccountID, result.CostBooking.CreditAccountID)
	assert.Equal(t, "100", result.CostBooking.Amount.String())
	require.NotNil(t, result.VatBooking)
	assert.Equal(t, inputVat.AccountID, result.VatBooking.DebitAccountID)
	assert.Equal(t, "21", result.VatBooking.Amount.String())
	assert.Equal(t, domain.SourceDocument, result.CostBooking.Source.Type)
	assert.Equal(t, result.CostBooking.Source.ID, result.VatBooking.Source.ID)
	bookingRepo.AssertExpectations(t)
}

func TestProcessDocumentSuggestion_RejectsBadSuggestions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.DocumentSuggestion)
	}{
		{"zero amount", func(s *domain.DocumentSuggestion) { s.ExtractedAmount = decimal.Zero }},
		{"too large", func(s *domain.DocumentSuggestion) { s.ExtractedAmount = decimal.NewFromInt(1_000_001) }},
		{"sub-cent amount", func(s *domain.DocumentSuggestion) { s.ExtractedAmount = decimal.RequireFromString("0.006") }},
		{"fraction of a cent", func(s *domain.DocumentSuggestion) { s.ExtractedAmount = decimal.RequireFromString("100.005") }},
		{"revenue code", func(s *domain.DocumentSuggestion) { s.SuggestedLedgerCode = "8000" }},
		{"short code", func(s *domain.DocumentSuggestion) { s.SuggestedLedgerCode = "43" }},
		{"unknown rate", func(s *domain.DocumentSuggestion) { s.VatPercentage = decimal.NewFromInt(19) }},
		{"no vendor", func(s *domain.DocumentSuggestion) { s.Vendor = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			bookingRepo := new(MockBookingRepository)
			rulesRepo := new(MockTaxRulesRepository)
			accounts := new(MockAccountEnsurer)
			svc := services.NewDocumentIntakeService(bookingRepo, rulesRepo, accounts, services.WithClock(fixedClock))
			rulesRepo.On("FindTaxRules", ctx, "c1", 2025).Return(nil, apperrors.ErrNotFound).Once()

			suggestion := validSuggestion()
			tt.mutate(&suggestion)
			_, err := svc.ProcessDocumentSuggestion(ctx, "c1", suggestion, "", "user")

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			accounts.AssertNotCalled(t, "EnsureAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			bookingRepo.AssertNotCalled(t, "SaveBookings", mock.Anything, mock.Anything)
		})
	}
}
