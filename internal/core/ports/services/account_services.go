package services

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// LedgerAccountReaderSvc defines read operations for ledger accounts
type LedgerAccountReaderSvc interface {
	// GetAccountByID retrieves an account of the company.
	GetAccountByID(ctx context.Context, companyID, accountID, userID string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves the chart of accounts of the company.
	ListAccounts(ctx context.Context, companyID, userID string) ([]domain.LedgerAccount, error)
}

// LedgerAccountEnsurerSvc creates accounts on first use.
type LedgerAccountEnsurerSvc interface {
	// EnsureAccount returns the account with code, creating it when absent.
	// Concurrent callers for the same code all get the same account.
	EnsureAccount(ctx context.Context, companyID, code, userID string) (*domain.LedgerAccount, error)
}

// LedgerAccountSvcFacade combines all ledger account service interfaces
type LedgerAccountSvcFacade interface {
	LedgerAccountReaderSvc
	LedgerAccountEnsurerSvc
}
