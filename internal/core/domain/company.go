package domain

// Company is the isolated bookkeeping unit owning accounts, bookings and invoices.
type Company struct {
	CompanyID   string `json:"companyID"`   // Primary Key (UUID)
	Name        string `json:"name"`        // Trading name
	OwnerUserID string `json:"ownerUserID"` // The freelancer owning the books
	VatNumber   string `json:"vatNumber"`   // Optional
	AuditFields
}
