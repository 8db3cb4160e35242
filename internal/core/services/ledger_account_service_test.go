package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccount_ReturnsExisting(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerAccountRepository)
	svc := services.NewLedgerAccountService(repo)
	companyID := uuid.NewString()
	existing := &domain.LedgerAccount{AccountID: uuid.NewString(), CompanyID: companyID, Code: "1100"}

	repo.On("FindAccountByCode", ctx, companyID, "1100").Return(existing, nil).Once()

	account, err := svc.EnsureAccount(ctx, companyID, "1100", "user")

	require.NoError(t, err)
	assert.Equal(t, existing, account)
	repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestEnsureAccount_CreatesFromCatalog(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerAccountRepository)
	svc := services.NewLedgerAccountService(repo, services.WithClock(fixedClock))
	companyID := uuid.NewString()

	tests := []struct {
		code     string
		name     string
		category domain.AccountCategory
		accType  domain.AccountType
	}{
		{"1100", "Bank", domain.Asset, domain.BalanceAccount},
		{"1500", "Af te dragen btw", domain.Liability, domain.BalanceAccount},
		{"0500", "Eigen vermogen", domain.Equity, domain.BalanceAccount},
		{"4300", "Software en abonnementen", domain.Cost, domain.ResultAccount},
		{"8000", "Omzet", domain.Revenue, domain.ResultAccount},
		{"2100", "Rekening 2100", domain.Liability, domain.BalanceAccount},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			repo.On("FindAccountByCode", ctx, companyID, tt.code).Return(nil, apperrors.ErrNotFound).Once()
			repo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.LedgerAccount) bool { return a.Code == tt.code })).Return(nil).Once()

			account, err := svc.EnsureAccount(ctx, companyID, tt.code, "user")

			require.NoError(t, err)
			assert.Equal(t, tt.name, account.Name)
			assert.Equal(t, tt.category, account.Category)
			assert.Equal(t, tt.accType, account.Type)
			assert.Equal(t, fixedNow, account.CreatedAt)
		})
	}
	repo.AssertExpectations(t)
}

func TestEnsureAccount_RereadsAfterConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerAccountRepository)
	svc := services.NewLedgerAccountService(repo)
	companyID := uuid.NewString()
	winner := &domain.LedgerAccount{AccountID: uuid.NewString(), CompanyID: companyID, Code: "1300", Name: "Debiteuren"}

	repo.On("FindAccountByCode", ctx, companyID, "1300").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).Return(apperrors.ErrDuplicate).Once()
	repo.On("FindAccountByCode", ctx, companyID, "1300").Return(winner, nil).Once()

	account, err := svc.EnsureAccount(ctx, companyID, "1300", "user")

	require.NoError(t, err)
	assert.Equal(t, winner.AccountID, account.AccountID)
	repo.AssertExpectations(t)
}

func TestEnsureAccount_RejectsUnmappedPrefix(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerAccountRepository)
	svc := services.NewLedgerAccountService(repo)
	companyID := uuid.NewString()

	repo.On("FindAccountByCode", ctx, companyID, "9000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.EnsureAccount(ctx, companyID, "9000", "user")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}
