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

type PgxWorkEntryRepository struct {
	BaseRepository
}

// newPgxWorkEntryRepository creates a repository for time and mileage entries.
func newPgxWorkEntryRepository(pool *pgxpool.Pool) portsrepo.WorkEntryRepository {
	return &PgxWorkEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkEntryRepository = (*PgxWorkEntryRepository)(nil)

const timeEntryColumns = `
	time_entry_id, company_id, entry_date, description, hours, hourly_rate, invoice_id,
	created_at, created_by, last_updated_at, last_updated_by`

const mileageEntryColumns = `
	mileage_entry_id, company_id, entry_date, description, kilometers, rate_per_km, booking_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTimeEntry(row pgx.Row) (models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.Hours,
		&m.HourlyRate,
		&m.InvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanMileageEntry(row pgx.Row) (models.MileageEntry, error) {
	var m models.MileageEntry
	err := row.Scan(
		&m.MileageEntryID,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.Kilometers,
		&m.RatePerKm,
		&m.BookingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTimeEntryByID retrieves a time entry of a company.
func (r *PgxWorkEntryRepository) FindTimeEntryByID(ctx context.Context, companyID, timeEntryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE company_id = $1 AND time_entry_id = $2;`
	m, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, companyID, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry "+timeEntryID, err)
	}
	d := mapping.ToDomainTimeEntry(m)
	return &d, nil
}

// FindTimeEntriesByIDs retrieves the listed time entries of a company ordered by date.
// IDs that do not match are left out.
func (r *PgxWorkEntryRepository) FindTimeEntriesByIDs(ctx context.Context, companyID string, ids []string) ([]domain.TimeEntry, error) {
	if len(ids) == 0 {
		return []domain.TimeEntry{}, nil
	}
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE company_id = $1 AND time_entry_id = ANY($2) ORDER BY entry_date, created_at;`
	return r.listTimeEntries(ctx, query, companyID, ids)
}

// ListTimeEntries retrieves the time entries of a company, newest first.
func (r *PgxWorkEntryRepository) ListTimeEntries(ctx context.Context, companyID string, uninvoicedOnly bool) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE company_id = $1`
	if uninvoicedOnly {
		query += ` AND invoice_id IS NULL`
	}
	query += ` ORDER BY entry_date DESC, created_at DESC;`
	return r.listTimeEntries(ctx, query, companyID)
}

func (r *PgxWorkEntryRepository) listTimeEntries(ctx context.Context, query string, args ...any) ([]domain.TimeEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query time entries", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, mapping.ToDomainTimeEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows", err)
	}
	return entries, nil
}

// SaveTimeEntry inserts a new time entry.
func (r *PgxWorkEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `INSERT INTO time_entries (` + timeEntryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.Pool.Exec(ctx, query,
		m.TimeEntryID,
		m.CompanyID,
		m.EntryDate,
		m.Description,
		m.Hours,
		m.HourlyRate,
		m.InvoiceID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save time entry", err)
	}
	return nil
}

// UpdateTimeEntry overwrites an uninvoiced time entry. An entry invoiced in the
// meantime is reported as locked.
func (r *PgxWorkEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE time_entries
		SET entry_date = $3, description = $4, hours = $5, hourly_rate = $6, last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND time_entry_id = $2 AND invoice_id IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.TimeEntryID,
		m.EntryDate,
		m.Description,
		m.Hours,
		m.HourlyRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update time entry "+m.TimeEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: time entry %s is invoiced or gone", apperrors.ErrLocked, m.TimeEntryID)
	}
	return nil
}

// DeleteTimeEntry removes an uninvoiced time entry.
func (r *PgxWorkEntryRepository) DeleteTimeEntry(ctx context.Context, companyID, timeEntryID string) error {
	query := `DELETE FROM time_entries WHERE company_id = $1 AND time_entry_id = $2 AND invoice_id IS NULL;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, timeEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete time entry "+timeEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: time entry %s is invoiced or gone", apperrors.ErrLocked, timeEntryID)
	}
	return nil
}

// FindMileageEntryByID retrieves a mileage entry of a company.
func (r *PgxWorkEntryRepository) FindMileageEntryByID(ctx context.Context, companyID, mileageEntryID string) (*domain.MileageEntry, error) {
	query := `SELECT ` + mileageEntryColumns + ` FROM mileage_entries WHERE company_id = $1 AND mileage_entry_id = $2;`
	m, err := scanMileageEntry(r.Pool.QueryRow(ctx, query, companyID, mileageEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mileage entry "+mileageEntryID, err)
	}
	d := mapping.ToDomainMileageEntry(m)
	return &d, nil
}

// ListMileageEntries retrieves the mileage entries of a company, newest first.
func (r *PgxWorkEntryRepository) ListMileageEntries(ctx context.Context, companyID string) ([]domain.MileageEntry, error) {
	query := `SELECT ` + mileageEntryColumns + ` FROM mileage_entries WHERE company_id = $1 ORDER BY entry_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mileage entries", err)
	}
	defer rows.Close()

	entries := []domain.MileageEntry{}
	for rows.Next() {
		m, err := scanMileageEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mileage entry row", err)
		}
		entries = append(entries, mapping.ToDomainMileageEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mileage entry rows", err)
	}
	return entries, nil
}

// SaveMileageEntry inserts a new mileage entry.
func (r *PgxWorkEntryRepository) SaveMileageEntry(ctx context.Context, entry domain.MileageEntry) error {
	m := mapping.ToModelMileageEntry(entry)
	query := `INSERT INTO mileage_entries (` + mileageEntryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.Pool.Exec(ctx, query,
		m.MileageEntryID,
		m.CompanyID,
		m.EntryDate,
		m.Description,
		m.Kilometers,
		m.RatePerKm,
		m.BookingID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save mileage entry", err)
	}
	return nil
}

// DeleteMileageEntry removes an unbooked mileage entry.
func (r *PgxWorkEntryRepository) DeleteMileageEntry(ctx context.Context, companyID, mileageEntryID string) error {
	query := `DELETE FROM mileage_entries WHERE company_id = $1 AND mileage_entry_id = $2 AND booking_id IS NULL;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, mileageEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete mileage entry "+mileageEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: mileage entry %s is booked or gone", apperrors.ErrLocked, mileageEntryID)
	}
	return nil
}

// BookMileageEntry inserts the travel-cost booking and links it to the entry.
func (r *PgxWorkEntryRepository) BookMileageEntry(ctx context.Context, entry domain.MileageEntry, booking domain.Booking) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueBookingInserts(batch, []domain.Booking{booking})
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert mileage booking", err)
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE mileage_entries
		SET booking_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND mileage_entry_id = $2 AND booking_id IS NULL;`,
		entry.CompanyID, entry.MileageEntryID, booking.BookingID, booking.CreatedAt, booking.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link mileage entry "+entry.MileageEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: mileage entry %s is already booked", apperrors.ErrLocked, entry.MileageEntryID)
	}

	return r.Commit(ctx, tx)
}
