package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/freelance_ledger/internal/models"
	"github.com/SscSPs/freelance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerAccountRepository struct {
	BaseRepository
}

// newPgxLedgerAccountRepository creates a new repository for the chart of accounts.
func newPgxLedgerAccountRepository(pool *pgxpool.Pool) portsrepo.LedgerAccountRepositoryFacade {
	return &PgxLedgerAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerAccountRepository implements portsrepo.LedgerAccountRepositoryFacade
var _ portsrepo.LedgerAccountRepositoryFacade = (*PgxLedgerAccountRepository)(nil)

const ledgerAccountColumns = `account_id, company_id, code, name, account_type, category, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerAccount(row pgx.Row) (models.LedgerAccount, error) {
	var m models.LedgerAccount
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Category,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. The (company_id, code) unique constraint
// turns a concurrent creation of the same code into apperrors.ErrDuplicate.
func (r *PgxLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Category,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.Code, err)
	}
	return nil
}

// FindAccountByID retrieves an account of a company by its ID.
func (r *PgxLedgerAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE company_id = $1 AND account_id = $2;`
	return r.findOne(ctx, query, companyID, accountID)
}

// FindAccountByCode retrieves an account of a company by its code.
func (r *PgxLedgerAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE company_id = $1 AND code = $2;`
	return r.findOne(ctx, query, companyID, code)
}

func (r *PgxLedgerAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.LedgerAccount, error) {
	m, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	d := mapping.ToDomainLedgerAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts of a company by their IDs.
// Accounts that do not exist or belong to another company are absent from the map.
func (r *PgxLedgerAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.LedgerAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.LedgerAccount{}, nil
	}
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE company_id = $1 AND account_id = ANY($2);`
	accounts, err := r.list(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	accountsMap := make(map[string]domain.LedgerAccount, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	return accountsMap, nil
}

// ListAccounts retrieves the chart of accounts of a company ordered by code.
func (r *PgxLedgerAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE company_id = $1 ORDER BY code;`
	return r.list(ctx, query, companyID)
}

func (r *PgxLedgerAccountRepository) list(ctx context.Context, query string, args ...any) ([]domain.LedgerAccount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.LedgerAccount{}
	for rows.Next() {
		m, err := scanLedgerAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainLedgerAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
