package services

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// VatSvc resolves VAT codes to rates and splits amounts.
type VatSvc interface {
	// Resolve returns the rate of the code under the company's current-year rules.
	Resolve(ctx context.Context, companyID string, code domain.VatCode, userID string) (decimal.Decimal, error)

	// SplitInclusive returns net and VAT of a VAT-inclusive amount. net + vat == gross.
	SplitInclusive(ctx context.Context, companyID string, gross decimal.Decimal, code domain.VatCode, userID string) (decimal.Decimal, decimal.Decimal, error)

	// SplitExclusive returns the VAT due on top of a net amount.
	SplitExclusive(ctx context.Context, companyID string, net decimal.Decimal, code domain.VatCode, userID string) (decimal.Decimal, error)
}

// TaxRulesSvc manages the year-scoped statutory rule table.
type TaxRulesSvc interface {
	// GetOrCreate returns the rules for the current year, persisting the static
	// rules on first access.
	GetOrCreate(ctx context.Context, companyID, userID string) (*domain.TaxRules, error)

	// GetOrCreateForYear does the same for an explicit fiscal year.
	GetOrCreateForYear(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error)

	// RefreshFromExternalSource overlays externally looked-up rates on the static
	// floor. Lookup failures are logged and the existing rules are returned.
	RefreshFromExternalSource(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error)
}

// IncomeTaxSvc stores personal adjustments and estimates income tax.
type IncomeTaxSvc interface {
	GetIncomeTaxData(ctx context.Context, companyID string, year int, userID string) (*domain.IncomeTaxData, error)
	UpsertIncomeTaxData(ctx context.Context, companyID string, year int, req dto.UpsertIncomeTaxDataRequest, userID string) (*domain.IncomeTaxData, error)

	// EstimateIncomeTax applies the year's rules to the year's P&L profit.
	EstimateIncomeTax(ctx context.Context, companyID string, year int, userID string) (*domain.IncomeTaxResult, error)
}

// VatPeriodSvc manages VAT filing periods.
type VatPeriodSvc interface {
	// GetOrCreateCurrentPeriod returns the period containing today, creating the
	// calendar quarter when no period overlaps it.
	GetOrCreateCurrentPeriod(ctx context.Context, companyID, userID string) (*domain.VatPeriod, error)
	ListPeriods(ctx context.Context, companyID, userID string) ([]domain.VatPeriod, error)
	GetVatReturn(ctx context.Context, companyID, periodID, userID string) (*domain.VatReturn, error)

	// UpdateStatus moves a period along open -> ready -> filed.
	UpdateStatus(ctx context.Context, companyID, periodID string, status domain.VatPeriodStatus, userID string) (*domain.VatPeriod, error)
}

// ReservationSvc advises on tax reservations.
type ReservationSvc interface {
	Advise(ctx context.Context, companyID, userID string) (*domain.ReservationAdvice, error)
}
