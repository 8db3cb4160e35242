package accounting

import (
	"sort"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ceiling(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// staticRules holds the published Dutch rates per fiscal year. It is the floor
// every persisted or refreshed rule set starts from.
var staticRules = map[int]domain.TaxRules{
	2023: {
		Year:        2023,
		VatStandard: dec("21"), VatReduced: dec("9"), VatZero: dec("0"),
		Brackets: []domain.TaxBracket{
			{Ceiling: ceiling("73031"), Rate: dec("36.93")},
			{Rate: dec("49.50")},
		},
		GeneralTaxCredit:      dec("3070"),
		EmploymentTaxCredit:   dec("5052"),
		SelfEmployedDeduction: dec("5030"),
		SmeExemptionPct:       dec("14"),
		FilingFrequency:       domain.FilingQuarterly,
	},
	2024: {
		Year:        2024,
		VatStandard: dec("21"), VatReduced: dec("9"), VatZero: dec("0"),
		Brackets: []domain.TaxBracket{
			{Ceiling: ceiling("75518"), Rate: dec("36.97")},
			{Rate: dec("49.50")},
		},
		GeneralTaxCredit:      dec("3362"),
		EmploymentTaxCredit:   dec("5532"),
		SelfEmployedDeduction: dec("3750"),
		SmeExemptionPct:       dec("13.31"),
		FilingFrequency:       domain.FilingQuarterly,
	},
	2025: {
		Year:        2025,
		VatStandard: dec("21"), VatReduced: dec("9"), VatZero: dec("0"),
		Brackets: []domain.TaxBracket{
			{Ceiling: ceiling("38441"), Rate: dec("35.82")},
			{Ceiling: ceiling("76817"), Rate: dec("37.48")},
			{Rate: dec("49.50")},
		},
		GeneralTaxCredit:      dec("3068"),
		EmploymentTaxCredit:   dec("5599"),
		SelfEmployedDeduction: dec("2470"),
		SmeExemptionPct:       dec("12.70"),
		FilingFrequency:       domain.FilingQuarterly,
	},
}

// StaticTaxRules returns the static rules for year, falling back to the most
// recent known year for any year that is not enumerated.
func StaticTaxRules(year int) domain.TaxRules {
	rules, ok := staticRules[year]
	if !ok {
		years := make([]int, 0, len(staticRules))
		for y := range staticRules {
			years = append(years, y)
		}
		sort.Ints(years)
		rules = staticRules[years[len(years)-1]]
	}
	rules.Year = year
	rules.Brackets = append([]domain.TaxBracket(nil), rules.Brackets...)
	rules.Source = "static"
	return rules
}
