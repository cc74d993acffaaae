package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/papermorph/papermorph/config"
	"github.com/papermorph/papermorph/handlers"
	"github.com/papermorph/papermorph/handlers/convert"
	"github.com/papermorph/papermorph/handlers/extract"
	"github.com/papermorph/papermorph/internal/metrics"
	"github.com/papermorph/papermorph/internal/pdf"
	"github.com/papermorph/papermorph/internal/render"
	"github.com/papermorph/papermorph/internal/services"
)

// Version/build info (set via -ldflags at build time)
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "none"
)

func main() {
	cfg := config.LoadConfig()
	cfg.Version = Version
	cfg.BuildTime = BuildTime
	cfg.CommitHash = CommitHash

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infof("PaperMorph Version: %s", Version)
	logger.Infof("Build Time:    %s", BuildTime)
	logger.Infof("Commit Hash:   %s", CommitHash)
	logger.WithFields(logrus.Fields{
		"port":       cfg.Port,
		"upload_dir": cfg.UploadDir,
		"max_upload": cfg.MaxUploadSize,
	}).Debug("Loaded config")

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalf("Failed to create upload dir %s: %v", cfg.UploadDir, err)
	}

	parser := pdf.NewParser(logger)
	service := services.NewExtractService(parser, logger)
	renderer := render.NewPDFRenderer(cfg.Wkhtmltopdf, logger)

	router := setupRouter(service, renderer, cfg, logger)
	runHTTPServer(router, cfg, logger)
}

// setupRouter creates and configures the Gin router
func setupRouter(service *services.ExtractService, renderer convert.Renderer, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	extractHandler := extract.NewHandler(service, cfg, logger)
	convertHandler := convert.NewHandler(service, renderer, cfg, logger)
	systemHandler := handlers.NewSystemHandler()

	router := gin.New()

	// jsonRecovery runs inside gin.Recovery so API endpoints return JSON
	// error responses instead of empty 500s.
	router.Use(gin.Logger())
	router.Use(jsonRecovery(logger))
	router.Use(gin.Recovery())

	// System routes
	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Core API routes
	v1 := router.Group("/api/v1")
	v1.POST("/extract-style", extractHandler.ExtractStyle)
	v1.POST("/extract-content", extractHandler.ExtractContent)
	v1.POST("/apply-style-upload", convertHandler.ApplyStyle)

	// Global 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	return router
}

// jsonRecovery returns a middleware that recovers from panics and ensures
// the response is JSON formatted.
func jsonRecovery(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithField("panic", r).Error("Recovered from panic")
				c.Header("Content-Type", "application/json; charset=utf-8")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

// runHTTPServer starts the HTTP server and blocks until shutdown
func runHTTPServer(router *gin.Engine, cfg *config.Config, logger *logrus.Logger) {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Starting papermorph server on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Info("Server shutdown complete")
	}
}
