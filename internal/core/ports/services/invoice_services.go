package services

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, companyID, invoiceID, userID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice stores the invoice together with its revenue and VAT postings.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus moves the invoice along draft -> sent -> paid. Paying
	// books the receipt on the bank account.
	UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// DocumentIntakeSvc books expenses suggested by the document collaborator.
type DocumentIntakeSvc interface {
	ProcessDocumentSuggestion(ctx context.Context, companyID string, suggestion domain.DocumentSuggestion, paymentAccountCode string, userID string) (*domain.DocumentBookingResult, error)
}

// TimeEntrySvc manages billable time.
type TimeEntrySvc interface {
	CreateTimeEntry(ctx context.Context, companyID string, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, companyID string, uninvoicedOnly bool, userID string) ([]domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, companyID, timeEntryID string, req dto.UpdateTimeEntryRequest, userID string) (*domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, companyID, timeEntryID, userID string) error
}

// MileageEntrySvc manages business travel.
type MileageEntrySvc interface {
	CreateMileageEntry(ctx context.Context, companyID string, req dto.CreateMileageEntryRequest, userID string) (*domain.MileageEntry, error)
	ListMileageEntries(ctx context.Context, companyID, userID string) ([]domain.MileageEntry, error)
	DeleteMileageEntry(ctx context.Context, companyID, mileageEntryID, userID string) error

	// BookMileageEntry posts travel costs against equity and locks the entry.
	BookMileageEntry(ctx context.Context, companyID, mileageEntryID, userID string) (*domain.MileageEntry, *domain.Booking, error)
}

// WorkEntrySvcFacade combines time and mileage entry services
type WorkEntrySvcFacade interface {
	TimeEntrySvc
	MileageEntrySvc
}
