package accounting

import (
	"fmt"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type bounds struct {
	min, max decimal.Decimal
}

func (b bounds) contains(d decimal.Decimal) bool {
	return !d.LessThan(b.min) && !d.GreaterThan(b.max)
}

var (
	vatStandardBounds  = bounds{dec("10"), dec("30")}
	vatReducedBounds   = bounds{dec("0"), dec("20")}
	bracketRateBounds  = bounds{dec("0"), dec("60")}
	bracketCeilBounds  = bounds{dec("10000"), dec("250000")}
	taxCreditBounds    = bounds{dec("0"), dec("10000")}
	deductionBounds    = bounds{dec("0"), dec("10000")}
	smeExemptionBounds = bounds{dec("0"), dec("30")}
)

// MergeTaxRules overlays externally provided fields on the static floor. Any
// missing or out-of-range field keeps its static value; the names of rejected
// fields are returned for logging.
func MergeTaxRules(floor domain.TaxRules, ext domain.TaxRulesData) (domain.TaxRules, []string) {
	merged := floor
	merged.Brackets = append([]domain.TaxBracket(nil), floor.Brackets...)
	var rejected []string

	pick := func(name string, target *decimal.Decimal, value *decimal.Decimal, b bounds) {
		if value == nil {
			return
		}
		if !b.contains(*value) {
			rejected = append(rejected, name)
			return
		}
		*target = *value
	}

	pick("vatStandard", &merged.VatStandard, ext.VatStandard, vatStandardBounds)
	pick("vatReduced", &merged.VatReduced, ext.VatReduced, vatReducedBounds)
	if !merged.VatReduced.LessThan(merged.VatStandard) {
		merged.VatStandard, merged.VatReduced = floor.VatStandard, floor.VatReduced
		rejected = append(rejected, "vatReduced>=vatStandard")
	}
	pick("generalTaxCredit", &merged.GeneralTaxCredit, ext.GeneralTaxCredit, taxCreditBounds)
	pick("employmentTaxCredit", &merged.EmploymentTaxCredit, ext.EmploymentTaxCredit, taxCreditBounds)
	pick("selfEmployedDeduction", &merged.SelfEmployedDeduction, ext.SelfEmployedDeduction, deductionBounds)
	pick("smeExemptionPct", &merged.SmeExemptionPct, ext.SmeExemptionPct, smeExemptionBounds)

	previous := decimal.Zero
	for i := range merged.Brackets {
		if i < len(ext.BracketRates) {
			pick(fmt.Sprintf("bracketRate[%d]", i), &merged.Brackets[i].Rate, ext.BracketRates[i], bracketRateBounds)
		}
		current := merged.Brackets[i].Ceiling
		if current == nil {
			// The open-ended top bracket never takes a ceiling from outside.
			continue
		}
		if i < len(ext.BracketCeilings) && ext.BracketCeilings[i] != nil {
			candidate := externalCeiling(ext, i)
			if candidate != nil && candidate.GreaterThan(previous) && belowNextCeiling(*candidate, floor, ext, i) {
				current = candidate
			} else {
				rejected = append(rejected, fmt.Sprintf("bracketCeiling[%d]", i))
			}
		}
		if !current.GreaterThan(previous) {
			current = floor.Brackets[i].Ceiling
		}
		merged.Brackets[i].Ceiling = current
		previous = *current
	}

	if !ceilingsAscending(merged.Brackets) {
		for i := range merged.Brackets {
			merged.Brackets[i].Ceiling = floor.Brackets[i].Ceiling
		}
		rejected = append(rejected, "bracketCeilings")
	}
	return merged, rejected
}

// externalCeiling returns the in-range external ceiling of bracket i, if any.
func externalCeiling(ext domain.TaxRulesData, i int) *decimal.Decimal {
	if i >= len(ext.BracketCeilings) || ext.BracketCeilings[i] == nil {
		return nil
	}
	if !bracketCeilBounds.contains(*ext.BracketCeilings[i]) {
		return nil
	}
	candidate := *ext.BracketCeilings[i]
	return &candidate
}

// belowNextCeiling reports whether a ceiling for bracket i stays under the
// ceiling of bracket i+1, either the static one or an in-range external one.
func belowNextCeiling(candidate decimal.Decimal, floor domain.TaxRules, ext domain.TaxRulesData, i int) bool {
	if i+1 >= len(floor.Brackets) || floor.Brackets[i+1].Ceiling == nil {
		return true
	}
	if candidate.LessThan(*floor.Brackets[i+1].Ceiling) {
		return true
	}
	next := externalCeiling(ext, i+1)
	return next != nil && candidate.LessThan(*next)
}

func ceilingsAscending(brackets []domain.TaxBracket) bool {
	previous := decimal.Zero
	for _, b := range brackets {
		if b.Ceiling == nil {
			continue
		}
		if !b.Ceiling.GreaterThan(previous) {
			return false
		}
		previous = *b.Ceiling
	}
	return true
}
