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

type PgxVatPeriodRepository struct {
	BaseRepository
}

func newPgxVatPeriodRepository(pool *pgxpool.Pool) portsrepo.VatPeriodRepository {
	return &PgxVatPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VatPeriodRepository = (*PgxVatPeriodRepository)(nil)

const vatPeriodColumns = `period_id, company_id, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanVatPeriod(row pgx.Row) (models.VatPeriod, error) {
	var m models.VatPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxVatPeriodRepository) findOne(ctx context.Context, query string, args ...any) (*domain.VatPeriod, error) {
	m, err := scanVatPeriod(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vat period", err)
	}
	d := mapping.ToDomainVatPeriod(m)
	return &d, nil
}

// FindVatPeriodByID retrieves a VAT period of a company.
func (r *PgxVatPeriodRepository) FindVatPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VatPeriod, error) {
	query := `SELECT ` + vatPeriodColumns + ` FROM vat_periods WHERE company_id = $1 AND period_id = $2;`
	return r.findOne(ctx, query, companyID, periodID)
}

// FindOverlappingVatPeriod returns the earliest period intersecting the range.
func (r *PgxVatPeriodRepository) FindOverlappingVatPeriod(ctx context.Context, companyID string, period domain.Period) (*domain.VatPeriod, error) {
	query := `
		SELECT ` + vatPeriodColumns + `
		FROM vat_periods
		WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
		LIMIT 1;
	`
	return r.findOne(ctx, query, companyID, period.From, period.To)
}

// ListVatPeriods retrieves the periods of a company, newest first.
func (r *PgxVatPeriodRepository) ListVatPeriods(ctx context.Context, companyID string) ([]domain.VatPeriod, error) {
	query := `SELECT ` + vatPeriodColumns + ` FROM vat_periods WHERE company_id = $1 ORDER BY start_date DESC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vat periods", err)
	}
	defer rows.Close()

	periods := []domain.VatPeriod{}
	for rows.Next() {
		m, err := scanVatPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vat period row", err)
		}
		periods = append(periods, mapping.ToDomainVatPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vat period rows", err)
	}
	return periods, nil
}

// SaveVatPeriod inserts a period. Two concurrent creations of the same quarter
// collide on (company_id, start_date).
func (r *PgxVatPeriodRepository) SaveVatPeriod(ctx context.Context, period domain.VatPeriod) error {
	m := mapping.ToModelVatPeriod(period)
	query := `
		INSERT INTO vat_periods (` + vatPeriodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.CompanyID,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vat period starting %s already exists", apperrors.ErrDuplicate, m.StartDate.Format("2006-01-02"))
		}
		return apperrors.NewAppError(500, "failed to save vat period", err)
	}
	return nil
}

// UpdateVatPeriodStatus stores a status transition. Filed periods never match.
func (r *PgxVatPeriodRepository) UpdateVatPeriodStatus(ctx context.Context, period domain.VatPeriod) error {
	query := `
		UPDATE vat_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND period_id = $2 AND status <> 'filed';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, period.CompanyID, period.PeriodID, string(period.Status), period.LastUpdatedAt, period.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update vat period "+period.PeriodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
