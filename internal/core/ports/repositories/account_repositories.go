package repositories

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// LedgerAccountReader defines read operations for ledger account data
type LedgerAccountReader interface {
	// FindAccountByID retrieves a specific account of a company by its identifier.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByCode retrieves the account with the given code of a company.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.LedgerAccount, error)

	// FindAccountsByIDs retrieves multiple accounts of a company keyed by ID.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.LedgerAccount, error)

	// ListAccounts retrieves the chart of accounts of a company ordered by code.
	ListAccounts(ctx context.Context, companyID string) ([]domain.LedgerAccount, error)
}

// LedgerAccountWriter defines write operations for ledger account data
type LedgerAccountWriter interface {
	// SaveAccount persists a new account. It returns apperrors.ErrDuplicate when the
	// (company, code) pair already exists.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error
}

// LedgerAccountRepositoryFacade combines all ledger account repository interfaces
type LedgerAccountRepositoryFacade interface {
	LedgerAccountReader
	LedgerAccountWriter
}
