package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/staff_ledger_app/cmd/docs"
	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := domain.RegisterValidators(v); err != nil {
			return err
		}
	}

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:          12 * time.Hour,
	}))

	// Add health check route
	r.GET("/health", healthCheck(services.Health))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	v1 := r.Group("/api/v1",
		middleware.RateLimit(rateLimiter),
		middleware.AuthMiddleware(middleware.AuthConfig{
			JWTSecret:      cfg.JWTSecret,
			JWTIssuer:      cfg.JWTIssuer,
			GoogleClientID: cfg.GoogleClientID,
		}),
		middleware.PosthogMiddleware(posthogClient),
	)

	// Delegate route registration to specific handlers, passing required services
	registerLedgerRoutes(v1, service.Ledger)
	registerEmployeeRoutes(v1, service.Employee, service.Aggregation)
	registerCustomerRoutes(v1, service.Customer)
	registerReportingRoutes(v1, service.Aggregation, service.MonthlyReport)
	registerJobRoutes(v1, service)
	return nil
}

// healthCheck godoc
// @Summary Liveness and storage check
// @Tags health
// @Produce  plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "Unavailable"
// @Router /health [get]
func healthCheck(health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := health.Check(c.Request.Context()); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
			c.String(http.StatusServiceUnavailable, "Unavailable")
			return
		}
		c.String(http.StatusOK, "OK")
	}
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
