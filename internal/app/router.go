package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/limiter"
	http_middleware "loadsmart_billing/internal/middleware/http"
	"loadsmart_billing/internal/provider"
	"loadsmart_billing/internal/service"
)

// newEngine creates a gin engine with the base middleware and health probe.
func newEngine(mode provider.AppMode) *gin.Engine {
	if mode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return engine
}

// NewAdminRouter builds the router for the operations console.
func NewAdminRouter(
	mode provider.AppMode,
	authMiddleware http_middleware.AuthMiddleware,
	limiterManager *limiter.Manager,
	adminService *service.InvoicesAdminService,
) *gin.Engine {
	engine := newEngine(mode)

	api := engine.Group("/api/v1/console")
	api.Use(gin.HandlerFunc(authMiddleware))
	api.Use(http_middleware.RequireRole(constants.UserRoleAdmin))
	api.Use(http_middleware.CreateRateLimitMiddleware(limiterManager, "admin_api"))

	adminService.RegisterRoutes(api)

	return engine
}

// NewShipperRouter builds the router for the shipper portal.
func NewShipperRouter(
	mode provider.AppMode,
	authMiddleware http_middleware.AuthMiddleware,
	limiterManager *limiter.Manager,
	shipperService *service.InvoicesShipperService,
) *gin.Engine {
	engine := newEngine(mode)

	api := engine.Group("/api/v1")
	api.Use(gin.HandlerFunc(authMiddleware))
	api.Use(http_middleware.RequireRole(constants.UserRoleShipper))
	api.Use(http_middleware.CreateRateLimitMiddleware(limiterManager, "shipper_api"))

	shipperService.RegisterRoutes(api)

	return engine
}
