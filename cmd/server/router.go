package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/cache"
	"github.com/hyper-a11/cyber-gst-info/internal/handlers"
	"github.com/hyper-a11/cyber-gst-info/internal/middleware"
)

// SetupRouter configures and returns the HTTP router with all routes and middleware
func SetupRouter(
	lookupHandler *handlers.LookupHandler,
	limiter cache.Limiter,
	rateLimit int,
	rateLimitWindow time.Duration,
	logger *zap.Logger,
) *mux.Router {
	router := mux.NewRouter()

	// Add CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Add request-ID and logging middleware
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(logger))

	// Rate limiting is optional; without Redis the service runs unthrottled.
	if limiter != nil {
		router.Use(middleware.RateLimitMiddleware(limiter, logger, rateLimit, rateLimitWindow))
	}

	// GST lookup
	router.HandleFunc("/", lookupHandler.HandleLookup).Methods("GET", "OPTIONS")

	// Health check
	// @Summary     Health check endpoint
	// @Description Returns OK if the service is running
	// @Tags        health
	// @Produce     text/plain
	// @Success     200  {string}  string  "OK"
	// @Router      /health [get]
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return router
}
