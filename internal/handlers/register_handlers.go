package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/freelance_ledger/cmd/docs"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
	"github.com/SscSPs/freelance_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter and healthCheck may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	healthCheck HealthCheck,
) {
	r.GET("/health", func(c *gin.Context) {
		if healthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := healthCheck(ctx); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	registerCompanyRoutes(v1, services.Company)

	company := v1.Group("/companies/:company_id")
	RegisterAccountRoutes(company, services.Account)
	RegisterBookingRoutes(company, services.Booking)
	RegisterInvoiceRoutes(company, services.Invoice)
	RegisterReportingRoutes(company, services.Reporting)
	RegisterTaxRoutes(company, services.TaxRules, services.IncomeTax, services.Vat)
	RegisterVatPeriodRoutes(company, services.VatPeriod)
	RegisterReservationRoutes(company, services.Reservation)
	RegisterDocumentRoutes(company, services.DocumentIntake)
	RegisterWorkEntryRoutes(company, services.WorkEntry)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
