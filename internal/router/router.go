package router

import (
	"github.com/gin-gonic/gin"

	"beanvault/internal/config"
	"beanvault/internal/handler"
	"beanvault/internal/middleware"
	"beanvault/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	beanH *handler.BeanHandler,
	priceListH *handler.PriceListHandler,
	agentH *handler.AgentHandler,
	exportH *handler.ExportHandler,
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
	auth.POST("/token", authH.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Catalog routes
	beans := protected.Group("/beans")
	beans.GET("", beanH.List)
	beans.GET("/latest", beanH.Latest)
	beans.GET("/trends", beanH.Trends)
	beans.GET("/:provider/:year/:month/:code", beanH.GetByKey)

	// Price list queue routes
	priceLists := protected.Group("/price-lists")
	priceLists.POST("", priceListH.Upload)
	priceLists.GET("", priceListH.List)
	priceLists.GET("/:id", priceListH.GetByID)
	priceLists.POST("/:id/flavors", priceListH.Categorize)

	// Query agent
	protected.POST("/query", agentH.Query)

	// Exports
	exports := protected.Group("/exports")
	exports.GET("/beans.csv", exportH.CSV)
	exports.GET("/beans.xlsx", exportH.XLSX)

	return r
}
