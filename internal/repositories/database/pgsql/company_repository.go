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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, name, owner_user_id, vat_number, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.OwnerUserID,
		&m.VatNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.OwnerUserID,
		m.VatNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: company %s already exists", apperrors.ErrDuplicate, m.CompanyID)
		}
		return apperrors.NewAppError(500, "failed to save company "+m.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company by ID "+companyID, err)
	}
	d := mapping.ToDomainCompany(m)
	return &d, nil
}

// ListCompaniesByOwner retrieves the companies of a user ordered by name.
func (r *PgxCompanyRepository) ListCompaniesByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_user_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies for user "+ownerUserID, err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows", err)
	}
	return companies, nil
}
