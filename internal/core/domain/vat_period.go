package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatPeriod is a filing period for VAT returns.
type VatPeriod struct {
	PeriodID  string          `json:"periodID"`
	CompanyID string          `json:"companyID"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Status    VatPeriodStatus `json:"status"`
	AuditFields
}

// Overlaps reports whether the period intersects [from, to].
func (p VatPeriod) Overlaps(from, to time.Time) bool {
	return !p.StartDate.After(to) && !p.EndDate.Before(from)
}

// CanTransitionTo enforces open -> ready -> filed.
func (p VatPeriod) CanTransitionTo(next VatPeriodStatus) bool {
	switch p.Status {
	case VatPeriodOpen:
		return next == VatPeriodReady
	case VatPeriodReady:
		return next == VatPeriodFiled || next == VatPeriodOpen
	default:
		return false
	}
}

// VatReturn summarises the VAT position for a period.
type VatReturn struct {
	Period        VatPeriod       `json:"period"`
	VatCollected  decimal.Decimal `json:"vatCollected"`  // credited to VAT payable
	InputVat      decimal.Decimal `json:"inputVat"`      // debited to input VAT
	VatOwed       decimal.Decimal `json:"vatOwed"`       // collected - input
	PostingsCount int             `json:"postingsCount"` // postings touching either VAT account
}
