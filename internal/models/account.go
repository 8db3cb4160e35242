package models

// LedgerAccount is a row of the ledger_accounts table.
type LedgerAccount struct {
	AccountID   string `db:"account_id"`
	CompanyID   string `db:"company_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	Category    string `db:"category"`
	AuditFields
}
