package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workEntryHandler handles time and mileage entries.
type workEntryHandler struct {
	workService portssvc.WorkEntrySvcFacade
}

// RegisterWorkEntryRoutes registers time entry and mileage routes under a company group.
func RegisterWorkEntryRoutes(rg *gin.RouterGroup, workService portssvc.WorkEntrySvcFacade) {
	h := &workEntryHandler{workService: workService}

	timeEntries := rg.Group("/time-entries")
	{
		timeEntries.POST("", h.createTimeEntry)
		timeEntries.GET("", h.listTimeEntries)
		timeEntries.PUT("/:entry_id", h.updateTimeEntry)
		timeEntries.DELETE("/:entry_id", h.deleteTimeEntry)
	}

	mileage := rg.Group("/mileage")
	{
		mileage.POST("", h.createMileageEntry)
		mileage.GET("", h.listMileageEntries)
		mileage.DELETE("/:entry_id", h.deleteMileageEntry)
		mileage.POST("/:entry_id/book", h.bookMileageEntry)
	}
}

// createTimeEntry godoc
// @Summary Record billable time
// @Tags time-entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateTimeEntryRequest true "Time entry"
// @Success 201 {object} domain.TimeEntry
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{company_id}/time-entries [post]
func (h *workEntryHandler) createTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.workService.CreateTimeEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create time entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// listTimeEntries godoc
// @Summary List time entries
// @Tags time-entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param uninvoiced query bool false "Only entries not yet invoiced"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Security BearerAuth
// @Router /companies/{company_id}/time-entries [get]
func (h *workEntryHandler) listTimeEntries(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.workService.ListTimeEntries(c.Request.Context(), companyID, params.UninvoicedOnly, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list time entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListTimeEntriesResponse{Entries: entries})
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Tags time-entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Time entry ID"
// @Param entry body dto.UpdateTimeEntryRequest true "Fields to change"
// @Success 200 {object} domain.TimeEntry
// @Failure 423 {object} map[string]string "Entry already invoiced"
// @Security BearerAuth
// @Router /companies/{company_id}/time-entries/{entry_id} [put]
func (h *workEntryHandler) updateTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.workService.UpdateTimeEntry(c.Request.Context(), companyID, c.Param("entry_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update time entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Tags time-entries
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Time entry ID"
// @Success 204 "No Content"
// @Failure 423 {object} map[string]string "Entry already invoiced"
// @Security BearerAuth
// @Router /companies/{company_id}/time-entries/{entry_id} [delete]
func (h *workEntryHandler) deleteTimeEntry(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	if err := h.workService.DeleteTimeEntry(c.Request.Context(), companyID, c.Param("entry_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete time entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// createMileageEntry godoc
// @Summary Record business travel
// @Description A zero rate per km uses the default mileage allowance
// @Tags mileage
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateMileageEntryRequest true "Mileage entry"
// @Success 201 {object} domain.MileageEntry
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies/{company_id}/mileage [post]
func (h *workEntryHandler) createMileageEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.CreateMileageEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMileageEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.workService.CreateMileageEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create mileage entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// listMileageEntries godoc
// @Summary List mileage entries
// @Tags mileage
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ListMileageEntriesResponse
// @Security BearerAuth
// @Router /companies/{company_id}/mileage [get]
func (h *workEntryHandler) listMileageEntries(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	entries, err := h.workService.ListMileageEntries(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list mileage entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListMileageEntriesResponse{Entries: entries})
}

// deleteMileageEntry godoc
// @Summary Delete a mileage entry
// @Tags mileage
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Mileage entry ID"
// @Success 204 "No Content"
// @Failure 423 {object} map[string]string "Entry already booked"
// @Security BearerAuth
// @Router /companies/{company_id}/mileage/{entry_id} [delete]
func (h *workEntryHandler) deleteMileageEntry(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	if err := h.workService.DeleteMileageEntry(c.Request.Context(), companyID, c.Param("entry_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete mileage entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// bookMileageEntry godoc
// @Summary Book a mileage entry
// @Description Posts travel costs against equity and locks the entry
// @Tags mileage
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Mileage entry ID"
// @Success 201 {object} dto.BookMileageResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 423 {object} map[string]string "Entry already booked"
// @Security BearerAuth
// @Router /companies/{company_id}/mileage/{entry_id}/book [post]
func (h *workEntryHandler) bookMileageEntry(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")

	entry, booking, err := h.workService.BookMileageEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to book mileage entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Mileage entry booked", slog.String("entry_id", entryID), slog.String("booking_id", booking.BookingID))
	c.JSON(http.StatusCreated, dto.BookMileageResponse{Entry: *entry, Booking: dto.ToBookingResponse(booking)})
}
