package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one requested line item.
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VatCode     string          `json:"vatCode"` // HOOG, LAAG or NUL; defaults to HOOG
}

// CreateInvoiceRequest defines the data needed to create an invoice.
// TimeEntryIDs are turned into additional lines at the entry's hourly rate.
type CreateInvoiceRequest struct {
	CustomerID       string               `json:"customerID" binding:"required"`
	Number           string               `json:"number" binding:"required,max=50"`
	Date             time.Time            `json:"date" binding:"required"`
	DueDate          time.Time            `json:"dueDate" binding:"required"`
	PricesIncludeVat bool                 `json:"pricesIncludeVat"`
	Lines            []InvoiceLineRequest `json:"lines" binding:"dive"`
	TimeEntryIDs     []string             `json:"timeEntryIDs"`
	TimeEntryVatCode string               `json:"timeEntryVatCode"`
}

// UpdateInvoiceStatusRequest moves an invoice along its lifecycle.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=sent paid"`
}

// ListInvoicesParams defines the query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	domain.Invoice
	NetTotal        decimal.Decimal      `json:"netTotal"`
	EffectiveStatus domain.InvoiceStatus `json:"effectiveStatus"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice, deriving the overdue state for today.
func ToInvoiceResponse(inv *domain.Invoice, today time.Time) InvoiceResponse {
	return InvoiceResponse{
		Invoice:         *inv,
		NetTotal:        inv.NetTotal(),
		EffectiveStatus: inv.EffectiveStatus(today),
	}
}

// ToListInvoicesResponse converts a page of invoices.
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string, today time.Time) ListInvoicesResponse {
	resp := ListInvoicesResponse{Invoices: make([]InvoiceResponse, len(invoices)), NextToken: nextToken}
	for i := range invoices {
		resp.Invoices[i] = ToInvoiceResponse(&invoices[i], today)
	}
	return resp
}
