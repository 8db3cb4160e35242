package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type documentHandler struct {
	intakeService portssvc.DocumentIntakeSvc
}

// RegisterDocumentRoutes registers document intake routes under a company group.
func RegisterDocumentRoutes(rg *gin.RouterGroup, intakeService portssvc.DocumentIntakeSvc) {
	h := &documentHandler{intakeService: intakeService}
	rg.POST("/documents", h.processDocument)
}

// processDocument godoc
// @Summary Book an expense document
// @Description Validates the OCR suggestion and posts the cost and input VAT bookings against the payment account
// @Tags documents
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param document body dto.ProcessDocumentRequest true "Suggestion and payment account"
// @Success 201 {object} dto.ProcessDocumentResponse
// @Failure 400 {object} map[string]string "Suggestion rejected"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /companies/{company_id}/documents [post]
func (h *documentHandler) processDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	var req dto.ProcessDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.intakeService.ProcessDocumentSuggestion(c.Request.Context(), companyID, req.Suggestion, req.PaymentAccountCode, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to book document")
		return
	}

	logger.Info("Document booked", slog.String("cost_booking_id", result.CostBooking.BookingID), slog.String("vendor", req.Suggestion.Vendor))
	c.JSON(http.StatusCreated, dto.ToProcessDocumentResponse(result))
}
