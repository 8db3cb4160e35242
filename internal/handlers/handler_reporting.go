package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/trends", h.getTrends)
	}
}

// bindPeriod binds from/to query parameters or writes 400.
func bindPeriod(c *gin.Context) (dto.PeriodParams, bool) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid period parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return params, false
	}
	if !params.From.IsZero() && !params.To.IsZero() && params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return params, false
	}
	return params, true
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Revenue and cost accounts with their totals for a period. Missing bounds default to the current year.
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	params, ok := bindPeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, params.From, params.To, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets, liabilities and equity including the undistributed current result
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, params.AsOf, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate balance sheet report")
		return
	}

	if !report.Balanced {
		logger.Warn("Balance sheet does not balance", slog.String("company_id", companyID))
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getCashFlow godoc
// @Summary Generate operating cash flow
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	params, ok := bindPeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), companyID, params.From, params.To, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate cash flow report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getTrends godoc
// @Summary Monthly profit trend
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param months query int false "Number of months including the current one" default(12)
// @Success 200 {object} dto.TrendsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/trends [get]
func (h *reportingHandler) getTrends(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.TrendsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	points, err := h.reportingService.Trends(c.Request.Context(), companyID, params.Months, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate trends")
		return
	}
	c.JSON(http.StatusOK, dto.TrendsResponse{Months: points})
}
