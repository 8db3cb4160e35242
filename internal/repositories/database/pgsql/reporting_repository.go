package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/freelance_ledger/internal/models"
	"github.com/SscSPs/freelance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ListPostingLines returns the bookings of a company dated within [from, to]
// joined with both accounts, oldest first. Reports replay these rows in memory.
func (r *reportingRepository) ListPostingLines(ctx context.Context, companyID string, from, to time.Time) ([]domain.PostingLine, error) {
	query := `
		SELECT
			b.booking_id, b.company_id, b.booking_date, b.description, b.debit_account_id, b.credit_account_id,
			b.amount, b.vat_code, b.source_type, b.source_id,
			b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
			d.code, d.name, d.account_type, d.category,
			c.code, c.name, c.account_type, c.category
		FROM bookings b
		JOIN ledger_accounts d ON b.debit_account_id = d.account_id
		JOIN ledger_accounts c ON b.credit_account_id = c.account_id
		WHERE b.company_id = $1
			AND b.booking_date <= $3
			AND ($2::date IS NULL OR b.booking_date >= $2::date)
		ORDER BY b.booking_date, b.created_at, b.booking_id
	`

	var fromArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}

	rows, err := r.Pool.Query(ctx, query, companyID, fromArg, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying posting lines", err)
	}
	defer rows.Close()

	lines := []domain.PostingLine{}
	for rows.Next() {
		var b models.Booking
		var debit, credit models.LedgerAccount
		if err := rows.Scan(
			&b.BookingID,
			&b.CompanyID,
			&b.BookingDate,
			&b.Description,
			&b.DebitAccountID,
			&b.CreditAccountID,
			&b.Amount,
			&b.VatCode,
			&b.SourceType,
			&b.SourceID,
			&b.CreatedAt,
			&b.CreatedBy,
			&b.LastUpdatedAt,
			&b.LastUpdatedBy,
			&debit.Code,
			&debit.Name,
			&debit.AccountType,
			&debit.Category,
			&credit.Code,
			&credit.Name,
			&credit.AccountType,
			&credit.Category,
		); err != nil {
			return nil, apperrors.NewAppError(500, "error scanning posting line", err)
		}
		debit.AccountID, debit.CompanyID = b.DebitAccountID, b.CompanyID
		credit.AccountID, credit.CompanyID = b.CreditAccountID, b.CompanyID

		lines = append(lines, domain.PostingLine{
			Booking: mapping.ToDomainBooking(b),
			Debit:   mapping.ToDomainLedgerAccount(debit),
			Credit:  mapping.ToDomainLedgerAccount(credit),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting lines", err)
	}
	return lines, nil
}
