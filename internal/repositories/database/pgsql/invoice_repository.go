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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoices and their lines.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, company_id, customer_id, number, invoice_date, due_date, prices_include_vat,
	total, vat_total, status, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `
	invoice_id, line_no, description, quantity, unit_price, vat_code, vat_rate,
	net_amount, vat_amount, time_entry_id`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.CustomerID,
		&m.Number,
		&m.InvoiceDate,
		&m.DueDate,
		&m.PricesIncludeVat,
		&m.Total,
		&m.VatTotal,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoiceWithBookings stores the invoice, its lines, its postings and the
// time entry links in a single transaction.
func (r *PgxInvoiceRepository) SaveInvoiceWithBookings(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking, timeEntryIDs []string) error {
	header, lines := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Header first, the lines and time entries reference it.
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		header.InvoiceID,
		header.CompanyID,
		header.CustomerID,
		header.Number,
		header.InvoiceDate,
		header.DueDate,
		header.PricesIncludeVat,
		header.Total,
		header.VatTotal,
		header.Status,
		header.CreatedAt,
		header.CreatedBy,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, header.Number)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+header.Number, err)
	}

	// 2. Lines and postings in one round trip.
	batch := &pgx.Batch{}
	lineQuery := `INSERT INTO invoice_lines (` + invoiceLineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	for _, l := range lines {
		batch.Queue(lineQuery,
			l.InvoiceID,
			l.LineNo,
			l.Description,
			l.Quantity,
			l.UnitPrice,
			l.VatCode,
			l.VatRate,
			l.NetAmount,
			l.VatAmount,
			l.TimeEntryID,
		)
	}
	queueBookingInserts(batch, bookings)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines and bookings for invoice "+header.Number, err)
	}

	// 3. Claim the time entries; one already on another invoice aborts everything.
	if len(timeEntryIDs) > 0 {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE time_entries
			SET invoice_id = $1, last_updated_at = $2, last_updated_by = $3
			WHERE company_id = $4 AND time_entry_id = ANY($5) AND invoice_id IS NULL;`,
			header.InvoiceID, header.CreatedAt, header.CreatedBy, header.CompanyID, timeEntryIDs,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to mark time entries invoiced", err)
		}
		if cmdTag.RowsAffected() != int64(len(timeEntryIDs)) {
			return fmt.Errorf("%w: a time entry is already invoiced", apperrors.ErrLocked)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus stores the new status and the bookings of the transition.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND invoice_id = $2 AND status <> 'paid';`,
		invoice.CompanyID, invoice.InvoiceID, string(invoice.Status), invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+invoice.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if len(bookings) > 0 {
		batch := &pgx.Batch{}
		queueBookingInserts(batch, bookings)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert bookings for invoice "+invoice.InvoiceID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND invoice_id = $2;`
	header, err := scanInvoice(r.Pool.QueryRow(ctx, query, companyID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	linesByInvoice, err := r.findLines(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainInvoice(header, linesByInvoice[invoiceID])
	return &d, nil
}

// ListInvoices retrieves invoices newest first using token-based pagination.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	fetchLimit := limit + 1

	cursorClause, args, err := keysetCondition(nextToken, "invoice_date", "invoice_id", []any{companyID})
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1` + cursorClause +
		` ORDER BY invoice_date DESC, created_at DESC, invoice_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for company "+companyID, err)
	}
	defer rows.Close()

	headers := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", scanErr)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.InvoiceDate, CreatedAt: last.CreatedAt, ID: last.InvoiceID})
		nextTokenVal = &token
		headers = headers[:limit]
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.InvoiceID
	}
	linesByInvoice, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	invoices := make([]domain.Invoice, len(headers))
	for i, h := range headers {
		invoices[i] = mapping.ToDomainInvoice(h, linesByInvoice[h.InvoiceID])
	}
	return invoices, nextTokenVal, nil
}

// findLines loads the lines of several invoices keyed by invoice ID.
func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceLine, error) {
	result := make(map[string][]models.InvoiceLine, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = ANY($1) ORDER BY invoice_id, line_no;`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(
			&l.InvoiceID,
			&l.LineNo,
			&l.Description,
			&l.Quantity,
			&l.UnitPrice,
			&l.VatCode,
			&l.VatRate,
			&l.NetAmount,
			&l.VatAmount,
			&l.TimeEntryID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line", err)
		}
		result[l.InvoiceID] = append(result[l.InvoiceID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice lines", err)
	}
	return result, nil
}
