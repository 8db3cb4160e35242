package models

// Company is a row of the companies table.
type Company struct {
	CompanyID   string  `db:"company_id"`
	Name        string  `db:"name"`
	OwnerUserID string  `db:"owner_user_id"`
	VatNumber   *string `db:"vat_number"` // Nullable
	AuditFields
}
