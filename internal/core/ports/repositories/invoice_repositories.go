package repositories

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices newest first using token-based pagination.
	ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoiceWithBookings persists the invoice, its lines and its bookings and
	// marks the referenced time entries invoiced, all in one transaction.
	// A duplicate invoice number yields apperrors.ErrDuplicate.
	SaveInvoiceWithBookings(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking, timeEntryIDs []string) error

	// UpdateInvoiceStatus stores the new status and any bookings the transition
	// generates in one transaction.
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// WorkEntryRepository stores time and mileage entries.
type WorkEntryRepository interface {
	FindTimeEntryByID(ctx context.Context, companyID, timeEntryID string) (*domain.TimeEntry, error)
	FindTimeEntriesByIDs(ctx context.Context, companyID string, ids []string) ([]domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, companyID string, uninvoicedOnly bool) ([]domain.TimeEntry, error)
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	DeleteTimeEntry(ctx context.Context, companyID, timeEntryID string) error

	FindMileageEntryByID(ctx context.Context, companyID, mileageEntryID string) (*domain.MileageEntry, error)
	ListMileageEntries(ctx context.Context, companyID string) ([]domain.MileageEntry, error)
	SaveMileageEntry(ctx context.Context, entry domain.MileageEntry) error
	DeleteMileageEntry(ctx context.Context, companyID, mileageEntryID string) error

	// BookMileageEntry stores the booking and links it to the entry in one transaction.
	BookMileageEntry(ctx context.Context, entry domain.MileageEntry, booking domain.Booking) error
}
