package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a row of the bookings table.
type Booking struct {
	BookingID       string          `db:"booking_id"`
	CompanyID       string          `db:"company_id"`
	BookingDate     time.Time       `db:"booking_date"`
	Description     string          `db:"description"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	VatCode         *string         `db:"vat_code"`    // Nullable
	SourceType      *string         `db:"source_type"` // Nullable, set for generated bookings
	SourceID        *string         `db:"source_id"`   // Nullable
	AuditFields
}
