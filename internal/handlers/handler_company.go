package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// registerCompanyRoutes registers the top-level company routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := &companyHandler{companyService: companyService}

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:company_id", h.getCompany)
	}
}

// createCompany godoc
// @Summary Register a company
// @Description Registers a company owned by the caller. No accounts are seeded.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create company")
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Description Lists the companies owned by the caller
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	userID, companyID, ok := callerAndCompany(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
