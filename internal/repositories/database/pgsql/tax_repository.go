package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/freelance_ledger/internal/models"
	"github.com/SscSPs/freelance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaxRulesRepository struct {
	BaseRepository
}

func newPgxTaxRulesRepository(pool *pgxpool.Pool) portsrepo.TaxRulesRepository {
	return &PgxTaxRulesRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxRulesRepository = (*PgxTaxRulesRepository)(nil)

const taxRulesColumns = `
	tax_rules_id, company_id, year, vat_standard, vat_reduced, vat_zero,
	bracket1_ceiling, bracket1_rate, bracket2_ceiling, bracket2_rate,
	bracket3_ceiling, bracket3_rate, bracket4_ceiling, bracket4_rate,
	general_tax_credit, employment_tax_credit, self_employed_deduction, sme_exemption_pct,
	filing_frequency, source, refreshed_at,
	created_at, created_by, last_updated_at, last_updated_by`

// taxRulesArgs lists the column values in taxRulesColumns order.
func taxRulesArgs(m models.TaxRules) []any {
	return []any{
		m.TaxRulesID, m.CompanyID, m.Year, m.VatStandard, m.VatReduced, m.VatZero,
		m.BracketCeilings[0], m.BracketRates[0], m.BracketCeilings[1], m.BracketRates[1],
		m.BracketCeilings[2], m.BracketRates[2], m.BracketCeilings[3], m.BracketRates[3],
		m.GeneralTaxCredit, m.EmploymentTaxCredit, m.SelfEmployedDeduction, m.SmeExemptionPct,
		m.FilingFrequency, m.Source, m.RefreshedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// FindTaxRules retrieves the rule set of a company for a fiscal year.
func (r *PgxTaxRulesRepository) FindTaxRules(ctx context.Context, companyID string, year int) (*domain.TaxRules, error) {
	query := `SELECT ` + taxRulesColumns + ` FROM tax_rules WHERE company_id = $1 AND year = $2;`
	var m models.TaxRules
	err := r.Pool.QueryRow(ctx, query, companyID, year).Scan(
		&m.TaxRulesID, &m.CompanyID, &m.Year, &m.VatStandard, &m.VatReduced, &m.VatZero,
		&m.BracketCeilings[0], &m.BracketRates[0], &m.BracketCeilings[1], &m.BracketRates[1],
		&m.BracketCeilings[2], &m.BracketRates[2], &m.BracketCeilings[3], &m.BracketRates[3],
		&m.GeneralTaxCredit, &m.EmploymentTaxCredit, &m.SelfEmployedDeduction, &m.SmeExemptionPct,
		&m.FilingFrequency, &m.Source, &m.RefreshedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find tax rules for %d", year), err)
	}
	d := mapping.ToDomainTaxRules(m)
	return &d, nil
}

// SaveTaxRules inserts a rule set; a second set for the same year is a duplicate.
func (r *PgxTaxRulesRepository) SaveTaxRules(ctx context.Context, rules domain.TaxRules) error {
	query := `
		INSERT INTO tax_rules (` + taxRulesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err := r.Pool.Exec(ctx, query, taxRulesArgs(mapping.ToModelTaxRules(rules))...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax rules for %d already exist", apperrors.ErrDuplicate, rules.Year)
		}
		return apperrors.NewAppError(500, "failed to save tax rules", err)
	}
	return nil
}

// UpdateTaxRules overwrites the rates of an existing rule set.
func (r *PgxTaxRulesRepository) UpdateTaxRules(ctx context.Context, rules domain.TaxRules) error {
	m := mapping.ToModelTaxRules(rules)
	query := `
		UPDATE tax_rules
		SET vat_standard = $3, vat_reduced = $4, vat_zero = $5,
		    bracket1_ceiling = $6, bracket1_rate = $7, bracket2_ceiling = $8, bracket2_rate = $9,
		    bracket3_ceiling = $10, bracket3_rate = $11, bracket4_ceiling = $12, bracket4_rate = $13,
		    general_tax_credit = $14, employment_tax_credit = $15, self_employed_deduction = $16,
		    sme_exemption_pct = $17, filing_frequency = $18, source = $19, refreshed_at = $20,
		    last_updated_at = $21, last_updated_by = $22
		WHERE company_id = $1 AND year = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Year, m.VatStandard, m.VatReduced, m.VatZero,
		m.BracketCeilings[0], m.BracketRates[0], m.BracketCeilings[1], m.BracketRates[1],
		m.BracketCeilings[2], m.BracketRates[2], m.BracketCeilings[3], m.BracketRates[3],
		m.GeneralTaxCredit, m.EmploymentTaxCredit, m.SelfEmployedDeduction,
		m.SmeExemptionPct, m.FilingFrequency, m.Source, m.RefreshedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tax rules", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxIncomeTaxDataRepository struct {
	BaseRepository
}

func newPgxIncomeTaxDataRepository(pool *pgxpool.Pool) portsrepo.IncomeTaxDataRepository {
	return &PgxIncomeTaxDataRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeTaxDataRepository = (*PgxIncomeTaxDataRepository)(nil)

// FindIncomeTaxData retrieves the personal adjustments of a (company, year).
func (r *PgxIncomeTaxDataRepository) FindIncomeTaxData(ctx context.Context, companyID string, year int) (*domain.IncomeTaxData, error) {
	query := `
		SELECT company_id, year, marital_status, other_income, mortgage_interest, healthcare_costs,
		       education_costs, other_deductions, created_at, created_by, last_updated_at, last_updated_by
		FROM income_tax_data
		WHERE company_id = $1 AND year = $2;
	`
	var m models.IncomeTaxData
	err := r.Pool.QueryRow(ctx, query, companyID, year).Scan(
		&m.CompanyID,
		&m.Year,
		&m.MaritalStatus,
		&m.OtherIncome,
		&m.MortgageInterest,
		&m.HealthcareCosts,
		&m.EducationCosts,
		&m.OtherDeductions,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find income tax data", err)
	}
	d := mapping.ToDomainIncomeTaxData(m)
	return &d, nil
}

// UpsertIncomeTaxData inserts or replaces the adjustments of a (company, year).
// The original creation audit fields survive a replace.
func (r *PgxIncomeTaxDataRepository) UpsertIncomeTaxData(ctx context.Context, data domain.IncomeTaxData) error {
	m := mapping.ToModelIncomeTaxData(data)
	query := `
		INSERT INTO income_tax_data (
			company_id, year, marital_status, other_income, mortgage_interest, healthcare_costs,
			education_costs, other_deductions, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, year) DO UPDATE
		SET marital_status = EXCLUDED.marital_status,
		    other_income = EXCLUDED.other_income,
		    mortgage_interest = EXCLUDED.mortgage_interest,
		    healthcare_costs = EXCLUDED.healthcare_costs,
		    education_costs = EXCLUDED.education_costs,
		    other_deductions = EXCLUDED.other_deductions,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Year,
		m.MaritalStatus,
		m.OtherIncome,
		m.MortgageInterest,
		m.HealthcareCosts,
		m.EducationCosts,
		m.OtherDeductions,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert income tax data", err)
	}
	return nil
}
