package mapping

import (
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to a model LedgerAccount
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:   d.AccountID,
		CompanyID:   d.CompanyID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.Type),
		Category:    string(d.Category),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a model LedgerAccount to a domain LedgerAccount
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:   m.AccountID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		Category:    domain.AccountCategory(m.Category),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		OwnerUserID: d.OwnerUserID,
		VatNumber:   optionalString(d.VatNumber),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
		VatNumber:   derefString(m.VatNumber),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
