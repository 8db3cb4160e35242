package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is billable time that can be turned into invoice lines.
type TimeEntry struct {
	TimeEntryID string          `json:"timeEntryID"`
	CompanyID   string          `json:"companyID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	AuditFields
}

// IsLocked reports whether the entry is already on an invoice.
func (t TimeEntry) IsLocked() bool {
	return t.InvoiceID != nil
}

// MileageEntry is business travel with a private vehicle.
type MileageEntry struct {
	MileageEntryID string          `json:"mileageEntryID"`
	CompanyID      string          `json:"companyID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Kilometers     decimal.Decimal `json:"kilometers"`
	RatePerKm      decimal.Decimal `json:"ratePerKm"`
	BookingID      *string         `json:"bookingID,omitempty"`
	AuditFields
}

// IsLocked reports whether the entry has been booked.
func (m MileageEntry) IsLocked() bool {
	return m.BookingID != nil
}

// Amount is kilometers times the rate, rounded to cents.
func (m MileageEntry) Amount() decimal.Decimal {
	return m.Kilometers.Mul(m.RatePerKm).Round(2)
}
