package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jaksa-v/stock-tracker/internal/api/handlers"
	"github.com/jaksa-v/stock-tracker/internal/api/middleware"
	"github.com/jaksa-v/stock-tracker/internal/pkg/config"
	"github.com/jaksa-v/stock-tracker/internal/pkg/logger"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

// Router holds all dependencies for API routing
type Router struct {
	engine        *gin.Engine
	config        *config.Config
	healthHandler *handlers.HealthHandler
	stockHandler  *handlers.StockHandler
	priceHandler  *handlers.PriceHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, priceService *prices.Service, db, cachePing handlers.Pinger, version string) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	router := &Router{
		engine:        engine,
		config:        cfg,
		healthHandler: handlers.NewHealthHandler(db, cachePing, version),
		stockHandler:  handlers.NewStockHandler(priceService),
		priceHandler:  handlers.NewPriceHandler(priceService),
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	accessLogPath := ""
	if r.config.Logging.FileEnabled {
		accessLogPath = r.config.Logging.FilePath
	}
	accessLogger := logger.NewAccessLogger(
		accessLogPath,
		r.config.Logging.RotationSize,
		r.config.Logging.RetentionDays,
	)
	r.engine.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health"},
	}))

	r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.healthHandler.Health)

	api := r.engine.Group("/api")
	{
		stocks := api.Group("/stocks")
		{
			stocks.GET("", r.stockHandler.List)
			stocks.GET("/:symbol", r.stockHandler.GetBySymbol)
		}

		priceGroup := api.Group("/prices")
		{
			priceGroup.GET("", r.priceHandler.LatestAll)
			// Register literal routes before the :symbol parameter so
			// "batch" and "change" are not captured as symbols
			priceGroup.GET("/batch", r.priceHandler.LatestBatch)
			priceGroup.GET("/change", r.priceHandler.Change)
			priceGroup.GET("/:symbol", r.priceHandler.LatestOne)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
