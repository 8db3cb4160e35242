package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// taxHandler serves tax rules, income-tax data and VAT helpers.
type taxHandler struct {
	taxRules  portssvc.TaxRulesSvc
	incomeTax portssvc.IncomeTaxSvc
	vat       portssvc.VatSvc
}

// RegisterTaxRoutes registers tax routes under a company group.
func RegisterTaxRoutes(rg *gin.RouterGroup, taxRules portssvc.TaxRulesSvc, incomeTax portssvc.IncomeTaxSvc, vat portssvc.VatSvc) {
	h := &taxHandler{taxRules: taxRules, incomeTax: incomeTax, vat: vat}

	tax := rg.Group("/tax")
	{
		tax.GET("/rules", h.getRules)
		tax.POST("/rules/refresh", h.refreshRules)
		tax.GET("/income-tax-data", h.getIncomeTaxData)
		tax.PUT("/income-tax-data", h.upsertIncomeTaxData)
		tax.GET("/income-tax-estimate", h.estimateIncomeTax)
		tax.GET("/vat/split", h.splitVat)
	}
}

// bindYear reads the optional year query parameter, defaulting to the current year.
func bindYear(c *gin.Context) (int, bool) {
	var params dto.YearParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid year parameter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + err.Error()})
		return 0, false
	}
	if params.Year == 0 {
		return time.Now().UTC().Year(), true
	}
	return params.Year, true
}

// getRules godoc
// @Summary Get tax rules
// @Description Returns the year's rules, storing the static rules on first access
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Param year query int false "Fiscal year" default(current year)
// @Success 200 {object} domain.TaxRules
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/rules [get]
func (h *taxHandler) getRules(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	rules, err := h.taxRules.GetOrCreateForYear(c.Request.Context(), companyID, year, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load tax rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// refreshRules godoc
// @Summary Refresh tax rules from the external source
// @Description Overlays plausible externally published values on the static rules. Lookup failures keep the existing rules.
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Param year query int false "Fiscal year" default(current year)
// @Success 200 {object} domain.TaxRules
// @Failure 400 {object} map[string]string "Invalid year"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/rules/refresh [post]
func (h *taxHandler) refreshRules(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	rules, err := h.taxRules.RefreshFromExternalSource(c.Request.Context(), companyID, year, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to refresh tax rules")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Tax rules refreshed", slog.Int("year", year), slog.String("source", rules.Source))
	c.JSON(http.StatusOK, rules)
}

// getIncomeTaxData godoc
// @Summary Get income tax data
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Param year query int false "Fiscal year" default(current year)
// @Success 200 {object} domain.IncomeTaxData
// @Failure 404 {object} map[string]string "No data for the year"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/income-tax-data [get]
func (h *taxHandler) getIncomeTaxData(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	data, err := h.incomeTax.GetIncomeTaxData(c.Request.Context(), companyID, year, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load income tax data")
		return
	}
	c.JSON(http.StatusOK, data)
}

// upsertIncomeTaxData godoc
// @Summary Store income tax data
// @Description Stores the personal adjustments used by the income tax estimate
// @Tags tax
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param year query int false "Fiscal year" default(current year)
// @Param data body dto.UpsertIncomeTaxDataRequest true "Adjustments"
// @Success 200 {object} domain.IncomeTaxData
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/income-tax-data [put]
func (h *taxHandler) upsertIncomeTaxData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	var req dto.UpsertIncomeTaxDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertIncomeTaxData", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	data, err := h.incomeTax.UpsertIncomeTaxData(c.Request.Context(), companyID, year, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to store income tax data")
		return
	}
	c.JSON(http.StatusOK, data)
}

// estimateIncomeTax godoc
// @Summary Estimate income tax
// @Description Applies the year's brackets and credits to the year's profit and adjustments
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Param year query int false "Fiscal year" default(current year)
// @Success 200 {object} domain.IncomeTaxResult
// @Failure 400 {object} map[string]string "Invalid year"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/income-tax-estimate [get]
func (h *taxHandler) estimateIncomeTax(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	year, ok := bindYear(c)
	if !ok {
		return
	}

	result, err := h.incomeTax.EstimateIncomeTax(c.Request.Context(), companyID, year, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to estimate income tax")
		return
	}
	c.JSON(http.StatusOK, result)
}

// splitVat godoc
// @Summary Split an amount into net and VAT
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Param amount query string true "Amount"
// @Param vatCode query string false "HOOG, LAAG or NUL" default(HOOG)
// @Param inclusive query bool false "Amount includes VAT"
// @Success 200 {object} dto.VatSplitResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 403 {object} map[string]string "Not the company owner"
// @Security BearerAuth
// @Router /companies/{company_id}/tax/vat/split [get]
func (h *taxHandler) splitVat(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.VatSplitParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a non-negative decimal"})
		return
	}

	ctx := c.Request.Context()
	code, _ := domain.NormalizeVatCode(params.VatCode)
	rate, err := h.vat.Resolve(ctx, companyID, code, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve VAT rate")
		return
	}

	resp := dto.VatSplitResponse{VatCode: code, Rate: rate}
	if params.Inclusive {
		net, vat, err := h.vat.SplitInclusive(ctx, companyID, amount, code, userID)
		if err != nil {
			respondServiceError(c, err, "Failed to split VAT")
			return
		}
		resp.Net, resp.Vat, resp.Gross = net, vat, amount
	} else {
		vat, err := h.vat.SplitExclusive(ctx, companyID, amount, code, userID)
		if err != nil {
			respondServiceError(c, err, "Failed to split VAT")
			return
		}
		resp.Net, resp.Vat, resp.Gross = amount, vat, amount.Add(vat)
	}
	c.JSON(http.StatusOK, resp)
}
