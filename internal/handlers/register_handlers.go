package handlers

import (
	"fmt"

	"github.com/SscSPs/trading_wallet_app/cmd/docs"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/SscSPs/trading_wallet_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
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
	services *portssvc.ServiceContainer,
) error {
	handlers := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if cfg.RateLimit != "" {
		l, err := middleware.NewLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
		}
		handlers = append(handlers, middleware.RateLimit(l))
	}
	v1 := r.Group("/api/v1", handlers...)

	registerWalletRoutes(v1, services.Orchestrator, services.Wallet)
	registerTradeRoutes(v1, services.Orchestrator)
	registerPortfolioRoutes(v1, services.Portfolio)
	registerTransactionRoutes(v1, services.Journal)
	return nil
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
