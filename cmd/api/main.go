// Package main provides the entrypoint for the EcoRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/config"
	"github.com/ecoroute/ecoroute/internal/airquality"
	"github.com/ecoroute/ecoroute/internal/airquality/aqicn"
	"github.com/ecoroute/ecoroute/internal/api"
	"github.com/ecoroute/ecoroute/internal/api/middleware"
	"github.com/ecoroute/ecoroute/internal/emissions"
	"github.com/ecoroute/ecoroute/internal/geocoding"
	geocodegoogle "github.com/ecoroute/ecoroute/internal/geocoding/googlemaps"
	"github.com/ecoroute/ecoroute/internal/optimizer"
	"github.com/ecoroute/ecoroute/internal/provider/resilience"
	"github.com/ecoroute/ecoroute/internal/routing"
	routinggoogle "github.com/ecoroute/ecoroute/internal/routing/googlemaps"
	"github.com/ecoroute/ecoroute/internal/routing/osrm"
	routingtomtom "github.com/ecoroute/ecoroute/internal/routing/tomtom"
	"github.com/ecoroute/ecoroute/internal/telemetry"
	"github.com/ecoroute/ecoroute/internal/traffic"
	traffictomtom "github.com/ecoroute/ecoroute/internal/traffic/tomtom"
	"github.com/ecoroute/ecoroute/internal/weather"
	"github.com/ecoroute/ecoroute/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := zerolog.New(os.Stderr)
		fallbackLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	serviceName := cfg.Telemetry.ServiceName

	// Setup structured logging
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = os.Stdout
	logWriter := zerolog.New(out)
	if cfg.Logging.Pretty {
		logWriter = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	log := logWriter.
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting EcoRoute API")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: serviceName,
		Version:     Version,
		Environment: env,
		Endpoint:    cfg.Telemetry.Endpoint,
		Enabled:     cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.Endpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Provider health registry, shared by every upstream client
	registry := resilience.NewRegistry()

	// Routing providers, queried in configured order
	var providers []routing.Provider
	if cfg.Providers.TomTom.Active() {
		providers = append(providers, routingtomtom.NewClient(routingtomtom.ClientConfig{
			APIKey:   cfg.Providers.TomTom.Key,
			BaseURL:  cfg.Providers.TomTom.BaseURL,
			Timeout:  cfg.Providers.TomTom.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		}))
	}
	if cfg.Providers.GoogleMaps.Active() {
		providers = append(providers, routinggoogle.NewClient(routinggoogle.ClientConfig{
			APIKey:   cfg.Providers.GoogleMaps.Key,
			BaseURL:  cfg.Providers.GoogleMaps.BaseURL,
			Timeout:  cfg.Providers.GoogleMaps.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		}))
	}
	if cfg.Providers.OSRM.Active() {
		providers = append(providers, osrm.NewClient(osrm.ClientConfig{
			BaseURL:  cfg.Providers.OSRM.BaseURL,
			Timeout:  cfg.Providers.OSRM.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		}))
	}
	if len(providers) == 0 {
		log.Warn().Msg("no routing providers configured, serving demonstration routes")
	}

	// Ancillary context providers, each optional
	var trafficProvider traffic.Provider
	if cfg.Providers.TomTom.Active() {
		trafficProvider = traffictomtom.NewClient(traffictomtom.ClientConfig{
			APIKey:   cfg.Providers.TomTom.Key,
			BaseURL:  cfg.Providers.TomTom.BaseURL,
			Timeout:  cfg.Providers.TomTom.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		})
	}

	var weatherProvider weather.Provider
	if cfg.Providers.OpenWeatherMap.Active() {
		weatherProvider = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:   cfg.Providers.OpenWeatherMap.Key,
			BaseURL:  cfg.Providers.OpenWeatherMap.BaseURL,
			Timeout:  cfg.Providers.OpenWeatherMap.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		})
	}

	var airProvider airquality.Provider
	if cfg.Providers.AQICN.Active() {
		airProvider = aqicn.NewClient(aqicn.ClientConfig{
			Token:    cfg.Providers.AQICN.Key,
			BaseURL:  cfg.Providers.AQICN.BaseURL,
			Timeout:  cfg.Providers.AQICN.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		})
	}

	// Geocoding, used to resolve named places in requests
	var geocodeProvider geocoding.Provider
	if cfg.Providers.GoogleMaps.Active() {
		geocodeProvider = geocodegoogle.NewClient(geocodegoogle.ClientConfig{
			APIKey:   cfg.Providers.GoogleMaps.Key,
			BaseURL:  cfg.Providers.GoogleMaps.BaseURL,
			Timeout:  cfg.Providers.GoogleMaps.TimeoutDuration(),
			Registry: registry,
			Logger:   log,
		})
	}
	geocoder := geocoding.NewService(geocoding.ServiceConfig{
		Provider: geocodeProvider,
		Logger:   log,
	})

	// Emissions estimator with configured per-unit factors
	estimator := emissions.NewEstimator(emissions.EstimatorConfig{
		Factors: cfg.Emissions.Factors(),
		Logger:  log,
	})

	optimizerService := optimizer.NewService(optimizer.ServiceConfig{
		Providers:          providers,
		Traffic:            trafficProvider,
		Weather:            weatherProvider,
		AirQuality:         airProvider,
		Estimator:          estimator,
		Cache:              optimizer.NewCache(cfg.Cache.Expiry()),
		DefaultVehicleType: cfg.Defaults.VehicleType,
		MaxAlternatives:    cfg.Defaults.MaxRouteAlternatives,
		Logger:             log,
	})
	log.Info().
		Int("routing_providers", len(providers)).
		Msg("optimizer service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		RequireTLS:  cfg.Server.RequireTLS,
		Optimizer:   optimizerService,
		Geocoder:    geocoder,
		Registry:    registry,
		Vehicles:    cfg.VehicleProfiles(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
