package accounting

import (
	"fmt"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SplitInclusive converts a VAT-inclusive amount into its net part and VAT part.
// The VAT part is always gross minus the rounded net, so the two legs add up to gross.
func SplitInclusive(gross, rate decimal.Decimal) (net, vat decimal.Decimal) {
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	net = gross.Div(divisor).Round(2)
	return net, gross.Sub(net)
}

// SplitExclusive returns the VAT on top of a VAT-exclusive amount, rounded to cents.
func SplitExclusive(net, rate decimal.Decimal) decimal.Decimal {
	return net.Mul(rate).Div(hundred).Round(2)
}

// CalculateIncomeTax applies deductions, the progressive brackets and tax credits.
// It is a pure function of its inputs.
func CalculateIncomeTax(profit decimal.Decimal, data domain.IncomeTaxData, rules domain.TaxRules) (domain.IncomeTaxResult, error) {
	if len(rules.Brackets) == 0 || len(rules.Brackets) > domain.MaxTaxBrackets {
		return domain.IncomeTaxResult{}, fmt.Errorf("%w: tax rules for %d carry %d brackets", apperrors.ErrValidation, rules.Year, len(rules.Brackets))
	}

	totalIncome := profit.Add(data.OtherIncome)

	// Losses get no SME exemption.
	smeExemption := decimal.Zero
	if profit.IsPositive() {
		smeExemption = profit.Mul(rules.SmeExemptionPct).Div(hundred)
	}
	totalDeductions := rules.SelfEmployedDeduction.
		Add(smeExemption).
		Add(data.MortgageInterest).
		Add(data.HealthcareCosts).
		Add(data.EducationCosts).
		Add(data.OtherDeductions)

	taxable := decimal.Max(decimal.Zero, totalIncome.Sub(totalDeductions))

	brackets := ApplyBrackets(taxable, rules.Brackets)
	grossTax := decimal.Zero
	allocated := decimal.Zero
	for _, b := range brackets {
		grossTax = grossTax.Add(b.Tax)
		allocated = allocated.Add(b.Amount)
	}
	if !allocated.Equal(taxable) {
		return domain.IncomeTaxResult{}, apperrors.Invariant("bracket amounts %s do not sum to taxable income %s", allocated, taxable)
	}

	credits := rules.GeneralTaxCredit.Add(rules.EmploymentTaxCredit)

	return domain.IncomeTaxResult{
		Year:               rules.Year,
		ProfitFromBusiness: profit,
		TotalIncome:        totalIncome,
		SmeExemption:       smeExemption,
		TotalDeductions:    totalDeductions,
		TaxableIncome:      taxable,
		Brackets:           brackets,
		GrossTax:           grossTax,
		TaxCredits:         credits,
		FinalTax:           decimal.Max(decimal.Zero, grossTax.Sub(credits)),
	}, nil
}

// ApplyBrackets distributes taxable income over the brackets in order.
// A bracket without a ceiling, or whose ceiling does not exceed the previous one,
// is the top bracket and takes everything left; brackets after it stay empty.
func ApplyBrackets(taxable decimal.Decimal, brackets []domain.TaxBracket) []domain.BracketResult {
	results := make([]domain.BracketResult, len(brackets))
	remaining := taxable
	previous := decimal.Zero
	topReached := false

	for i, b := range brackets {
		results[i] = domain.BracketResult{Ceiling: b.Ceiling, Rate: b.Rate, Amount: decimal.Zero, Tax: decimal.Zero}
		if topReached {
			continue
		}

		isTop := i == len(brackets)-1 || b.Ceiling == nil || !b.Ceiling.GreaterThan(previous)
		amount := remaining
		if isTop {
			topReached = true
		} else {
			amount = decimal.Min(remaining, b.Ceiling.Sub(previous))
			previous = *b.Ceiling
		}

		results[i].Amount = amount
		results[i].Tax = amount.Mul(b.Rate).Div(hundred)
		remaining = remaining.Sub(amount)
	}
	return results
}

// ClampRatio bounds the fallback reservation ratio to [0.30, 0.50].
func ClampRatio(ratio decimal.Decimal) decimal.Decimal {
	lower := decimal.NewFromFloat(0.30)
	upper := decimal.NewFromFloat(0.50)
	return decimal.Min(upper, decimal.Max(lower, ratio))
}
