package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/auth"
	"github.com/hyper-a11/cyber-gst-info/internal/cache"
	"github.com/hyper-a11/cyber-gst-info/internal/config"
	"github.com/hyper-a11/cyber-gst-info/internal/gst"
	"github.com/hyper-a11/cyber-gst-info/internal/handlers"
	"github.com/hyper-a11/cyber-gst-info/internal/upstream"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting GST lookup service")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Load the key registry once at startup; it stays read-only for the
	// process lifetime.
	registry, err := loadRegistry(cfg)
	if err != nil {
		logger.Fatal("Failed to load key registry", zap.Error(err))
	}
	logger.Info("Key registry loaded", zap.Int("keys", registry.Len()))

	// Days remaining are computed against IST regardless of server locale.
	ist := auth.ISTLocation()

	authorizer := auth.NewAuthorizer(registry, ist)
	normalizer := gst.NewNormalizer("CharteredInfo GST API", ist)
	fetcher := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, logger)

	// Rate limiting is enabled only when Redis is configured.
	var limiter cache.Limiter
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewCache(cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize cache", zap.Error(err))
		}
		defer redisCache.Close()
		limiter = redisCache
	}

	// Initialize handlers
	lookupHandler := handlers.NewLookupHandler(authorizer, fetcher, normalizer, cfg, logger)

	// Setup router
	router := SetupRouter(lookupHandler, limiter, cfg.RateLimit, cfg.RateLimitWindow, logger)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// loadRegistry resolves the key registry from, in order: a YAML file, the
// inline API_KEYS variable, or the built-in demo keys.
func loadRegistry(cfg *config.Config) (*auth.Registry, error) {
	if cfg.APIKeysFile != "" {
		return auth.LoadRegistryFile(cfg.APIKeysFile)
	}
	if cfg.APIKeysInline != "" {
		return auth.NewRegistry(auth.ParseInline(cfg.APIKeysInline))
	}
	return auth.NewRegistry(auth.DefaultKeys)
}
