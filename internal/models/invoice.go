package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID        string          `db:"invoice_id"`
	CompanyID        string          `db:"company_id"`
	CustomerID       string          `db:"customer_id"`
	Number           string          `db:"number"`
	InvoiceDate      time.Time       `db:"invoice_date"`
	DueDate          time.Time       `db:"due_date"`
	PricesIncludeVat bool            `db:"prices_include_vat"`
	Total            decimal.Decimal `db:"total"`
	VatTotal         decimal.Decimal `db:"vat_total"`
	Status           string          `db:"status"`
	AuditFields
}

// InvoiceLine is a row of the invoice_lines table.
type InvoiceLine struct {
	InvoiceID   string          `db:"invoice_id"`
	LineNo      int             `db:"line_no"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	VatCode     string          `db:"vat_code"`
	VatRate     decimal.Decimal `db:"vat_rate"`
	NetAmount   decimal.Decimal `db:"net_amount"`
	VatAmount   decimal.Decimal `db:"vat_amount"`
	TimeEntryID *string         `db:"time_entry_id"` // Nullable
}

// TimeEntry is a row of the time_entries table.
type TimeEntry struct {
	TimeEntryID string          `db:"time_entry_id"`
	CompanyID   string          `db:"company_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	Hours       decimal.Decimal `db:"hours"`
	HourlyRate  decimal.Decimal `db:"hourly_rate"`
	InvoiceID   *string         `db:"invoice_id"` // Nullable
	AuditFields
}

// MileageEntry is a row of the mileage_entries table.
type MileageEntry struct {
	MileageEntryID string          `db:"mileage_entry_id"`
	CompanyID      string          `db:"company_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	Kilometers     decimal.Decimal `db:"kilometers"`
	RatePerKm      decimal.Decimal `db:"rate_per_km"`
	BookingID      *string         `db:"booking_id"` // Nullable
	AuditFields
}
