package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies what generated a booking.
type SourceType string

const (
	SourceInvoice      SourceType = "invoice"
	SourceTimeEntry    SourceType = "time_entry"
	SourceMileageEntry SourceType = "mileage_entry"
	SourceDocument     SourceType = "document"
)

// BookingSource links a generated booking to the entity it came from.
type BookingSource struct {
	Type SourceType `json:"type"`
	ID   string     `json:"id"`
}

// Booking is one double-entry posting: one debit leg, one credit leg, one amount.
type Booking struct {
	BookingID       string          `json:"bookingID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	VatCode         *VatCode        `json:"vatCode,omitempty"`
	Source          *BookingSource  `json:"source,omitempty"`
	AuditFields
}

// IsLinked reports whether the booking was generated from another entity.
func (b Booking) IsLinked() bool {
	return b.Source != nil
}

// PostingLine is a booking joined with both of its accounts, used by report replay.
type PostingLine struct {
	Booking
	Debit  LedgerAccount
	Credit LedgerAccount
}
