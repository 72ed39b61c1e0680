package handlers

import (
	"time"

	"github.com/dkazlouski/currency_exchange_app/cmd/docs"
	portssvc "github.com/dkazlouski/currency_exchange_app/internal/core/ports/services"
	"github.com/dkazlouski/currency_exchange_app/internal/middleware"
	"github.com/dkazlouski/currency_exchange_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	limiterInstance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  120,
	})

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	registerDealRoutes(v1, services.Deal)
	registerRateRoutes(v1, services.Rate, services.RateSync)
	registerReportingRoutes(v1, services.Deal)
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
