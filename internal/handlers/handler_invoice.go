package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	now            func() time.Time
}

// RegisterInvoiceRoutes registers invoice routes under a company group.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService, now: time.Now}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PATCH("/:invoice_id/status", h.updateInvoiceStatus)
	}
}

func (h *invoiceHandler) today() time.Time {
	return h.now().UTC().Truncate(24 * time.Hour)
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice and posts its revenue and VAT bookings in one transaction. Referenced time entries become lines and are marked invoiced.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 409 {object} map[string]string "Invoice number already used"
// @Failure 423 {object} map[string]string "Time entry already invoiced"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.today()))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, next, err := h.invoiceService.ListInvoices(c.Request.Context(), companyID, params.Limit, optionalToken(params.NextToken), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, next, h.today()))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Returns the invoice with its derived effective status (overdue once the due date passed unpaid)
// @Tags invoices
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.today()))
}

// updateInvoiceStatus godoc
// @Summary Update invoice status
// @Description Moves an invoice along draft, sent, paid. Paying books the receipt on the bank account.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   invoice_id path string true "Invoice ID"
// @Param   status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 423 {object} map[string]string "Invoice already paid"
// @Security BearerAuth
// @Router /companies/{company_id}/invoices/{invoice_id}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoice_id")

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), companyID, invoiceID, req.Status, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update invoice status")
		return
	}

	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.today()))
}
