package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-concordance/internal/analytics"
	"github.com/gcbaptista/go-concordance/internal/jobs"
	"github.com/gcbaptista/go-concordance/services"
)

// maxRequestBodySize bounds JSON request bodies (cache warm-up lists).
const maxRequestBodySize = 1 << 20

// Engine is what the HTTP layer needs from the concordance engine.
type Engine interface {
	services.Concordancer
	services.JobManager
	GetJobMetrics() jobs.JobMetricsData
}

// API holds dependencies for API handlers.
type API struct {
	engine    Engine
	analytics *analytics.Service
	logger    *slog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine Engine, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		engine:    engine,
		analytics: analytics.NewService(engine, logger),
		logger:    logger,
	}
}

// NewRouter builds a gin engine with the standard middleware stack and every
// route registered.
func NewRouter(engine Engine, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware(logger))
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	SetupRoutes(router, engine, logger)
	return router
}

// SetupRoutes defines all the API routes for the concordance service.
func SetupRoutes(router *gin.Engine, engine Engine, logger *slog.Logger) {
	apiHandler := NewAPI(engine, logger)

	// Status routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/api", apiHandler.StatusHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Corpus routes
	router.GET("/corpora", apiHandler.ListCorporaHandler)
	router.GET("/view/:corpus", apiHandler.ViewCorpusHandler)

	// Search routes
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/search-in-file/:corpus", apiHandler.SearchInFileHandler)

	// Cache routes
	cacheRoutes := router.Group("/cache")
	{
		cacheRoutes.GET("/stats", apiHandler.CacheStatsHandler)       // Cache introspection
		cacheRoutes.DELETE("", apiHandler.ClearCacheHandler)          // Evict every corpus
		cacheRoutes.DELETE("/:corpus", apiHandler.EvictCorpusHandler) // Evict one corpus
		cacheRoutes.POST("/warm", apiHandler.WarmCacheHandler)        // Load corpora in the background
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally filtered
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}
}
