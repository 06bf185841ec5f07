// server runs the translation dataset ingest endpoint.
//
// Records are accepted on POST /api/dataset, deduplicated against a bounded
// recent-history cache, and appended as JSON lines to DATA_PATH. Health and
// counter snapshots are served on /api/health and /api/metrics; Prometheus
// metrics on /metrics.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/dataset-ingest/internal/api/handlers"
	"github.com/codyseavey/dataset-ingest/internal/config"
	"github.com/codyseavey/dataset-ingest/internal/metrics"
	"github.com/codyseavey/dataset-ingest/internal/middleware"
	"github.com/codyseavey/dataset-ingest/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	writer, err := services.NewLogWriter(cfg.DataPath)
	if err != nil {
		log.Fatalf("Failed to open dataset log %s: %v", cfg.DataPath, err)
	}

	cache := services.NewDedupCache(cfg.CacheMax, cfg.CacheTTL)
	normalizer := services.NewNormalizer(cfg.MaxSourceLen)
	counters := metrics.NewCounters()
	handler := handlers.NewDatasetHandler(normalizer, cache, writer, counters)
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	limiter.StartJanitor(ctx)

	router := newRouter(cfg, handler, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}

	// Close after the HTTP server stops so every accepted request has
	// submitted its write.
	if err := writer.Close(); err != nil {
		log.Printf("Writer close: %v", err)
	}
	log.Println("Shutdown complete")
}

func newRouter(cfg config.Config, handler *handlers.DatasetHandler, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Panic recovered (request_id=%s): %v", middleware.GetRequestID(c), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ServerError"})
	}))
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(metrics.HTTPMetrics())

	api := router.Group("/api")
	api.GET("/health", handler.Health)
	api.GET("/metrics", handler.Metrics)
	// Admission control applies only to ingestion, not health/metrics.
	api.POST("/dataset",
		limiter.Middleware(),
		middleware.BodySizeLimit(cfg.MaxBodyBytes),
		handler.Ingest,
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}
