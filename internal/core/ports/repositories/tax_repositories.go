package repositories

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// TaxRulesRepository stores the per (company, year) rule sets.
type TaxRulesRepository interface {
	// FindTaxRules retrieves the rules of a company for a fiscal year.
	FindTaxRules(ctx context.Context, companyID string, year int) (*domain.TaxRules, error)

	// SaveTaxRules inserts a rule set. It returns apperrors.ErrDuplicate when the
	// company already has rules for that year.
	SaveTaxRules(ctx context.Context, rules domain.TaxRules) error

	// UpdateTaxRules overwrites the rates of an existing rule set.
	UpdateTaxRules(ctx context.Context, rules domain.TaxRules) error
}

// IncomeTaxDataRepository stores the personal income-tax adjustments.
type IncomeTaxDataRepository interface {
	FindIncomeTaxData(ctx context.Context, companyID string, year int) (*domain.IncomeTaxData, error)
	UpsertIncomeTaxData(ctx context.Context, data domain.IncomeTaxData) error
}

// VatPeriodRepository stores VAT filing periods.
type VatPeriodRepository interface {
	FindVatPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VatPeriod, error)

	// FindOverlappingVatPeriod returns a period intersecting [from, to] or apperrors.ErrNotFound.
	FindOverlappingVatPeriod(ctx context.Context, companyID string, period domain.Period) (*domain.VatPeriod, error)

	ListVatPeriods(ctx context.Context, companyID string) ([]domain.VatPeriod, error)

	// SaveVatPeriod inserts a period. It returns apperrors.ErrDuplicate when a period
	// with the same start date already exists.
	SaveVatPeriod(ctx context.Context, period domain.VatPeriod) error

	UpdateVatPeriodStatus(ctx context.Context, period domain.VatPeriod) error
}
