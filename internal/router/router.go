package router

import (
	"github.com/gin-gonic/gin"

	"nfimport/internal/config"
	"nfimport/internal/handler"
	"nfimport/internal/middleware"
	"nfimport/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	importH *handler.ImportHandler,
	payableH *handler.PayableHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT with tenant and user
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	payables := protected.Group("/payables")
	payables.POST("/import-xml", importH.ImportXML)
	payables.GET("/:id", payableH.GetByID)
	payables.GET("/:id/xml", payableH.GetSourceURL)
	payables.GET("/:id/items.csv", payableH.ExportItemsCSV)
	payables.GET("/:id/items.xlsx", payableH.ExportItemsXLSX)

	return r
}
