package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vatPeriodHandler handles VAT filing periods and returns.
type vatPeriodHandler struct {
	periodService portssvc.VatPeriodSvc
}

// RegisterVatPeriodRoutes registers VAT period routes under a company group.
func RegisterVatPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.VatPeriodSvc) {
	h := &vatPeriodHandler{periodService: periodService}

	periods := rg.Group("/vat-periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/current", h.getCurrentPeriod)
		periods.GET("/:period_id/return", h.getVatReturn)
		periods.PATCH("/:period_id/status", h.updateStatus)
	}
}

// listPeriods godoc
// @Summary List VAT periods
// @Tags vat
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ListVatPeriodsResponse
// @Security BearerAuth
// @Router /companies/{company_id}/vat-periods [get]
func (h *vatPeriodHandler) listPeriods(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list VAT periods")
		return
	}
	c.JSON(http.StatusOK, dto.ListVatPeriodsResponse{Periods: periods})
}

// getCurrentPeriod godoc
// @Summary Get the current VAT period
// @Description Returns the period containing today, creating the calendar quarter on first access
// @Tags vat
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} domain.VatPeriod
// @Security BearerAuth
// @Router /companies/{company_id}/vat-periods/current [get]
func (h *vatPeriodHandler) getCurrentPeriod(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetOrCreateCurrentPeriod(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load current VAT period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// getVatReturn godoc
// @Summary Get the VAT return of a period
// @Tags vat
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "VAT period ID"
// @Success 200 {object} domain.VatReturn
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /companies/{company_id}/vat-periods/{period_id}/return [get]
func (h *vatPeriodHandler) getVatReturn(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	vatReturn, err := h.periodService.GetVatReturn(c.Request.Context(), companyID, c.Param("period_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build VAT return")
		return
	}
	c.JSON(http.StatusOK, vatReturn)
}

// updateStatus godoc
// @Summary Update VAT period status
// @Description Moves a period along open, ready, filed. Filed periods are immutable.
// @Tags vat
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "VAT period ID"
// @Param status body dto.UpdateVatPeriodStatusRequest true "New status"
// @Success 200 {object} domain.VatPeriod
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 423 {object} map[string]string "Period already filed"
// @Security BearerAuth
// @Router /companies/{company_id}/vat-periods/{period_id}/status [patch]
func (h *vatPeriodHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	periodID := c.Param("period_id")

	var req dto.UpdateVatPeriodStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVatPeriodStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period, err := h.periodService.UpdateStatus(c.Request.Context(), companyID, periodID, req.Status, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update VAT period status")
		return
	}

	logger.Info("VAT period status updated", slog.String("period_id", periodID), slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, period)
}
