package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type reservationHandler struct {
	reservationService portssvc.ReservationSvc
}

// RegisterReservationRoutes registers the reservation advice route under a company group.
func RegisterReservationRoutes(rg *gin.RouterGroup, reservationService portssvc.ReservationSvc) {
	h := &reservationHandler{reservationService: reservationService}
	rg.GET("/reservation", h.getAdvice)
}

// getAdvice godoc
// @Summary Tax reservation advice
// @Description VAT owed for the current quarter plus the income tax estimate, with straight-line progress against the savings balance
// @Tags tax
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} domain.ReservationAdvice
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to compute advice"
// @Security BearerAuth
// @Router /companies/{company_id}/reservation [get]
func (h *reservationHandler) getAdvice(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	advice, err := h.reservationService.Advise(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute reservation advice")
		return
	}
	c.JSON(http.StatusOK, advice)
}
