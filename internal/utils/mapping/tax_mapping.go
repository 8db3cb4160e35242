package mapping

import (
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/models"
)

// ToModelTaxRules flattens the bracket list onto the four bracket column pairs.
func ToModelTaxRules(d domain.TaxRules) models.TaxRules {
	m := models.TaxRules{
		TaxRulesID:            d.TaxRulesID,
		CompanyID:             d.CompanyID,
		Year:                  d.Year,
		VatStandard:           d.VatStandard,
		VatReduced:            d.VatReduced,
		VatZero:               d.VatZero,
		GeneralTaxCredit:      d.GeneralTaxCredit,
		EmploymentTaxCredit:   d.EmploymentTaxCredit,
		SelfEmployedDeduction: d.SelfEmployedDeduction,
		SmeExemptionPct:       d.SmeExemptionPct,
		FilingFrequency:       string(d.FilingFrequency),
		Source:                d.Source,
		RefreshedAt:           d.RefreshedAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
	for i, b := range d.Brackets {
		if i >= domain.MaxTaxBrackets {
			break
		}
		rate := b.Rate
		m.BracketRates[i] = &rate
		if b.Ceiling != nil {
			ceiling := *b.Ceiling
			m.BracketCeilings[i] = &ceiling
		}
	}
	return m
}

// ToDomainTaxRules rebuilds the bracket list. Brackets without a rate are unused
// and end the list.
func ToDomainTaxRules(m models.TaxRules) domain.TaxRules {
	d := domain.TaxRules{
		TaxRulesID:            m.TaxRulesID,
		CompanyID:             m.CompanyID,
		Year:                  m.Year,
		VatStandard:           m.VatStandard,
		VatReduced:            m.VatReduced,
		VatZero:               m.VatZero,
		GeneralTaxCredit:      m.GeneralTaxCredit,
		EmploymentTaxCredit:   m.EmploymentTaxCredit,
		SelfEmployedDeduction: m.SelfEmployedDeduction,
		SmeExemptionPct:       m.SmeExemptionPct,
		FilingFrequency:       domain.FilingFrequency(m.FilingFrequency),
		Source:                m.Source,
		RefreshedAt:           m.RefreshedAt,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
	for i := 0; i < domain.MaxTaxBrackets; i++ {
		if m.BracketRates[i] == nil {
			break
		}
		d.Brackets = append(d.Brackets, domain.TaxBracket{Ceiling: m.BracketCeilings[i], Rate: *m.BracketRates[i]})
	}
	return d
}

// ToModelIncomeTaxData converts domain IncomeTaxData to its model
func ToModelIncomeTaxData(d domain.IncomeTaxData) models.IncomeTaxData {
	return models.IncomeTaxData{
		CompanyID:        d.CompanyID,
		Year:             d.Year,
		MaritalStatus:    string(d.MaritalStatus),
		OtherIncome:      d.OtherIncome,
		MortgageInterest: d.MortgageInterest,
		HealthcareCosts:  d.HealthcareCosts,
		EducationCosts:   d.EducationCosts,
		OtherDeductions:  d.OtherDeductions,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncomeTaxData converts model IncomeTaxData to its domain form
func ToDomainIncomeTaxData(m models.IncomeTaxData) domain.IncomeTaxData {
	return domain.IncomeTaxData{
		CompanyID:        m.CompanyID,
		Year:             m.Year,
		MaritalStatus:    domain.MaritalStatus(m.MaritalStatus),
		OtherIncome:      m.OtherIncome,
		MortgageInterest: m.MortgageInterest,
		HealthcareCosts:  m.HealthcareCosts,
		EducationCosts:   m.EducationCosts,
		OtherDeductions:  m.OtherDeductions,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVatPeriod converts a domain VatPeriod to its model
func ToModelVatPeriod(d domain.VatPeriod) models.VatPeriod {
	return models.VatPeriod{
		PeriodID:    d.PeriodID,
		CompanyID:   d.CompanyID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVatPeriod converts a model VatPeriod to its domain form
func ToDomainVatPeriod(m models.VatPeriod) domain.VatPeriod {
	return domain.VatPeriod{
		PeriodID:    m.PeriodID,
		CompanyID:   m.CompanyID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.VatPeriodStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
