package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceLine is one line item. NetAmount and VatAmount are computed on creation.
type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VatCode     VatCode         `json:"vatCode"`
	VatRate     decimal.Decimal `json:"vatRate"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	VatAmount   decimal.Decimal `json:"vatAmount"`
	TimeEntryID *string         `json:"timeEntryID,omitempty"`
}

// Invoice is an outgoing sales invoice.
type Invoice struct {
	InvoiceID        string          `json:"invoiceID"`
	CompanyID        string          `json:"companyID"`
	CustomerID       string          `json:"customerID"`
	Number           string          `json:"number"` // Unique per company
	Date             time.Time       `json:"date"`
	DueDate          time.Time       `json:"dueDate"`
	PricesIncludeVat bool            `json:"pricesIncludeVat"`
	Lines            []InvoiceLine   `json:"lines"`
	Total            decimal.Decimal `json:"total"`    // Gross
	VatTotal         decimal.Decimal `json:"vatTotal"` // Total - net
	Status           InvoiceStatus   `json:"status"`
	AuditFields
}

// NetTotal is the invoice total excluding VAT.
func (i Invoice) NetTotal() decimal.Decimal {
	return i.Total.Sub(i.VatTotal)
}

// EffectiveStatus reports overdue for unpaid invoices whose due date has passed.
func (i Invoice) EffectiveStatus(today time.Time) InvoiceStatus {
	if i.Status == InvoiceSent && today.After(i.DueDate) {
		return InvoiceOverdue
	}
	return i.Status
}

// CanTransitionTo enforces draft -> sent -> paid (overdue counts as sent).
func (i Invoice) CanTransitionTo(next InvoiceStatus) bool {
	switch i.Status {
	case InvoiceDraft:
		return next == InvoiceSent || next == InvoicePaid
	case InvoiceSent, InvoiceOverdue:
		return next == InvoicePaid
	default:
		return false
	}
}
