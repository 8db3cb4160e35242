package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles HTTP requests related to bookings.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

// RegisterBookingRoutes registers booking routes under a company group.
func RegisterBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := &bookingHandler{bookingService: bookingService}

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/:booking_id", h.getBooking)
		bookings.PUT("/:booking_id", h.updateBooking)
		bookings.DELETE("/:booking_id", h.deleteBooking)
	}
}

// createBooking godoc
// @Summary Post a manual booking
// @Description Posts one double-entry booking between two accounts of the company
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create booking"
// @Security BearerAuth
// @Router /companies/{company_id}/bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create booking")
		return
	}

	logger.Info("Booking created successfully", slog.String("booking_id", booking.BookingID))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// listBookings godoc
// @Summary List bookings
// @Description Lists bookings newest first using cursor pagination
// @Tags bookings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{company_id}/bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var params dto.ListBookingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBookings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bookings, next, err := h.bookingService.ListBookings(c.Request.Context(), companyID, params.Limit, optionalToken(params.NextToken), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, dto.ListBookingsResponse{
		Bookings:  dto.ToBookingResponses(bookings),
		NextToken: next,
	})
}

// getBooking godoc
// @Summary Get a booking
// @Tags bookings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   booking_id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} map[string]string "Booking not found"
// @Security BearerAuth
// @Router /companies/{company_id}/bookings/{booking_id} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), companyID, c.Param("booking_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// updateBooking godoc
// @Summary Update a manual booking
// @Description Changes date, description, amount or VAT code. Bookings generated by invoices, documents or mileage are locked.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   booking_id path string true "Booking ID"
// @Param   booking body dto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 423 {object} map[string]string "Booking is locked"
// @Security BearerAuth
// @Router /companies/{company_id}/bookings/{booking_id} [put]
func (h *bookingHandler) updateBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	bookingID := c.Param("booking_id")

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), companyID, bookingID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update booking")
		return
	}

	logger.Info("Booking updated successfully", slog.String("booking_id", bookingID))
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// deleteBooking godoc
// @Summary Delete a manual booking
// @Tags bookings
// @Param   company_id path string true "Company ID"
// @Param   booking_id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 423 {object} map[string]string "Booking is locked"
// @Security BearerAuth
// @Router /companies/{company_id}/bookings/{booking_id} [delete]
func (h *bookingHandler) deleteBooking(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}
	bookingID := c.Param("booking_id")

	if err := h.bookingService.DeleteBooking(c.Request.Context(), companyID, bookingID, userID); err != nil {
		respondServiceError(c, err, "Failed to delete booking")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Booking deleted successfully", slog.String("booking_id", bookingID))
	c.Status(http.StatusNoContent)
}
