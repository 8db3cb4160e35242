package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/freelance_ledger/internal/models"
	"github.com/SscSPs/freelance_ledger/internal/utils/mapping"
	"github.com/SscSPs/freelance_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for ledger postings.
func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBookingRepository implements portsrepo.BookingRepositoryFacade
var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

const bookingColumns = `
	booking_id, company_id, booking_date, description, debit_account_id, credit_account_id,
	amount, vat_code, source_type, source_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.CompanyID,
		&m.BookingDate,
		&m.Description,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&m.VatCode,
		&m.SourceType,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// keysetCondition decodes nextToken into a tuple comparison on the given
// columns. It returns an empty clause for the first page.
func keysetCondition(nextToken *string, dateCol, idCol string, args []any) (string, []any, error) {
	if nextToken == nil || *nextToken == "" {
		return "", args, nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	n := len(args)
	clause := fmt.Sprintf(" AND (%s, created_at, %s) < ($%d, $%d, $%d)", dateCol, idCol, n+1, n+2, n+3)
	return clause, append(args, cursor.Date, cursor.CreatedAt, cursor.ID), nil
}

// SaveBookings inserts all bookings in one transaction, so paired postings are
// either both stored or neither is.
func (r *PgxBookingRepository) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueBookingInserts(batch, bookings)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert bookings", err)
	}
	return r.Commit(ctx, tx)
}

// FindBookingByID retrieves a booking of a company.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, companyID, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE company_id = $1 AND booking_id = $2;`
	m, err := scanBooking(r.Pool.QueryRow(ctx, query, companyID, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find booking by ID "+bookingID, err)
	}
	d := mapping.ToDomainBooking(m)
	return &d, nil
}

// ListBookings retrieves bookings newest first using token-based pagination.
// It returns the page, a token for the next page (if any), and an error.
func (r *PgxBookingRepository) ListBookings(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	cursorClause, args, err := keysetCondition(nextToken, "booking_date", "booking_id", []any{companyID})
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE company_id = $1` + cursorClause +
		` ORDER BY booking_date DESC, created_at DESC, booking_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bookings for company "+companyID, err)
	}
	defer rows.Close()

	modelBookings := make([]models.Booking, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan booking row", scanErr)
		}
		modelBookings = append(modelBookings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating booking rows", err)
	}

	var nextTokenVal *string
	if len(modelBookings) > limit {
		last := modelBookings[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.BookingDate, CreatedAt: last.CreatedAt, ID: last.BookingID})
		nextTokenVal = &token
		modelBookings = modelBookings[:limit]
	}
	return mapping.ToDomainBookingSlice(modelBookings), nextTokenVal, nil
}

// UpdateBooking overwrites the mutable fields of a manual booking. Generated
// bookings are never matched, so a concurrent link makes this a not-found.
func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	m := mapping.ToModelBooking(booking)
	query := `
		UPDATE bookings
		SET booking_date = $3, description = $4, debit_account_id = $5, credit_account_id = $6,
		    amount = $7, vat_code = $8, last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND booking_id = $2 AND source_type IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.BookingID,
		m.BookingDate,
		m.Description,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.VatCode,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update booking "+m.BookingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBooking removes a manual booking.
func (r *PgxBookingRepository) DeleteBooking(ctx context.Context, companyID, bookingID string) error {
	query := `DELETE FROM bookings WHERE company_id = $1 AND booking_id = $2 AND source_type IS NULL;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, bookingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete booking "+bookingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
