// Package api provides the HTTP API for EcoRoute.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/api/handler"
	"github.com/ecoroute/ecoroute/internal/api/middleware"
	"github.com/ecoroute/ecoroute/internal/emissions"
	"github.com/ecoroute/ecoroute/internal/geocoding"
	"github.com/ecoroute/ecoroute/internal/optimizer"
	"github.com/ecoroute/ecoroute/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	RequireTLS  bool
	Optimizer   *optimizer.Service
	Geocoder    *geocoding.Service
	Registry    *resilience.Registry
	Vehicles    map[string]emissions.VehicleProfile
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "ecoroute-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.ContentTypeJSON) // JSON content type
	r.Use(middleware.RequireJSON)     // Reject non-JSON request bodies

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry)
	routeHandler := handler.NewRouteHandler(cfg.Optimizer, cfg.Geocoder)
	emissionsHandler := handler.NewEmissionsHandler(cfg.Optimizer, cfg.Vehicles)

	// Rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/providers", opsHandler.ProvidersStatus)
		})

		// Route optimization - expensive, involves upstream provider calls
		r.Route("/routes", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Post("/optimize", routeHandler.OptimizeRoutes)
		})

		// Standalone emissions estimation
		r.Route("/emissions", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Post("/estimate", emissionsHandler.EstimateEmissions)
			r.Get("/vehicles", emissionsHandler.ListVehicles)
		})
	})

	return r
}
