package optimizer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/airquality"
	"github.com/ecoroute/ecoroute/internal/emissions"
	"github.com/ecoroute/ecoroute/internal/routing"
	"github.com/ecoroute/ecoroute/internal/traffic"
	"github.com/ecoroute/ecoroute/internal/weather"
)

// bboxPaddingDegrees pads the route bounding box for ancillary lookups,
// roughly 5 km at the equator.
const bboxPaddingDegrees = 0.05

// Service orchestrates the optimization pipeline. Every dependency
// except the estimator and cache is optional; missing context providers
// degrade to "unavailable" summaries and missing routing providers
// trigger the fallback route set.
type Service struct {
	providers []routing.Provider
	traffic   traffic.Provider
	weather   weather.Provider
	air       airquality.Provider
	estimator *emissions.Estimator
	cache     *Cache
	logger    zerolog.Logger
	clock     func() time.Time

	defaultVehicle  string
	maxAlternatives int
}

// ServiceConfig holds the orchestrator dependencies.
type ServiceConfig struct {
	// Providers are the routing providers, queried in order. May be empty.
	Providers []routing.Provider

	// Traffic, Weather and AirQuality supply best-effort context (each
	// optional).
	Traffic    traffic.Provider
	Weather    weather.Provider
	AirQuality airquality.Provider

	// Estimator computes per-route emissions. When nil a default one is
	// constructed.
	Estimator *emissions.Estimator

	// Cache memoizes results. When nil a cache with the default TTL is
	// constructed.
	Cache *Cache

	// DefaultVehicleType overrides the built-in default applied to
	// requests without a vehicle type.
	DefaultVehicleType string

	// MaxAlternatives overrides the built-in cap applied to requests
	// without an explicit limit.
	MaxAlternatives int

	// Logger for pipeline operations.
	Logger zerolog.Logger
}

// NewService creates the orchestrator.
func NewService(cfg ServiceConfig) *Service {
	estimator := cfg.Estimator
	if estimator == nil {
		estimator = emissions.NewEstimator(emissions.EstimatorConfig{Logger: cfg.Logger})
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewCache(DefaultCacheTTL)
	}
	return &Service{
		providers: cfg.Providers,
		traffic:   cfg.Traffic,
		weather:   cfg.Weather,
		air:       cfg.AirQuality,
		estimator: estimator,
		cache:     cache,
		logger:    cfg.Logger,
		clock:     time.Now,

		defaultVehicle:  cfg.DefaultVehicleType,
		maxAlternatives: cfg.MaxAlternatives,
	}
}

// providerOutcome is the explicit result of one isolated provider call.
type providerOutcome struct {
	provider string
	routes   []routing.RawRoute
	err      error
}

// routeContext is the best-effort ancillary data for the route area.
type routeContext struct {
	traffic *traffic.Snapshot
	weather *weather.Observation
	air     *airquality.Observation
}

// Optimize runs the full pipeline. The call is total: every failure mode
// is folded into the returned Result, with Status as the authoritative
// success signal.
func (s *Service) Optimize(ctx context.Context, req Request) *Result {
	if req.VehicleType == "" && s.defaultVehicle != "" {
		req.VehicleType = s.defaultVehicle
	}
	if req.MaxAlternatives <= 0 && s.maxAlternatives > 0 {
		req.MaxAlternatives = s.maxAlternatives
	}
	req = req.WithDefaults()

	if err := req.Validate(); err != nil {
		return s.errorResult(req, err)
	}

	key := CacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug().Str("cache_key", key).Msg("returning cached route result")
		return cached
	}

	area := s.routeArea(req)
	rctx := s.fetchContext(ctx, area)

	raws := s.fetchRoutes(ctx, req)
	if len(raws) == 0 {
		s.logger.Info().
			Int("providers", len(s.providers)).
			Msg("no provider routes, synthesizing fallback set")
		raws = FallbackRoutes(req.Origin, req.Destination)
	}

	routes := Normalize(raws, s.logger)
	s.attachEmissions(routes, req, rctx)
	routes = Score(routes, req.Priority)

	if len(routes) > req.MaxAlternatives {
		routes = routes[:req.MaxAlternatives]
	}

	result := &Result{
		Status: StatusSuccess,
		Query:  req,
		Routes: routes,
		Meta: Metadata{
			Traffic:     traffic.Summarize(rctx.traffic),
			Weather:     weather.Summarize(rctx.weather),
			AirQuality:  airquality.Summarize(rctx.air),
			RouteCount:  len(routes),
			GeneratedAt: s.clock().UTC(),
		},
	}

	s.cache.Put(key, result)

	return result
}

// EstimateEmissions exposes the estimator standalone, outside the full
// pipeline.
func (s *Service) EstimateEmissions(distanceKM float64, vehicleType string, ectx emissions.Context) float64 {
	return s.estimator.Estimate(distanceKM, vehicleType, ectx)
}

// EstimateEmissionsFromProfile computes emissions from a vehicle's
// actual consumption figures instead of the category factor model.
func (s *Service) EstimateEmissionsFromProfile(distanceKM float64, profile emissions.VehicleProfile) float64 {
	return s.estimator.EstimateFromProfile(distanceKM, profile)
}

// VehicleTypes lists the vehicle categories known to the estimator.
func (s *Service) VehicleTypes() []string {
	return s.estimator.VehicleTypes()
}

// VehicleFactors returns the estimator's factors for a vehicle category.
func (s *Service) VehicleFactors(vehicleType string) emissions.VehicleFactors {
	return s.estimator.VehicleFactors(vehicleType)
}

// routeArea computes the padded bounding box covering all request points.
func (s *Service) routeArea(req Request) traffic.BBox {
	points := append([]routing.Point{req.Origin, req.Destination}, req.Stops...)

	box := traffic.BBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
		if p.Lon < box.MinLon {
			box.MinLon = p.Lon
		}
		if p.Lon > box.MaxLon {
			box.MaxLon = p.Lon
		}
	}

	box.MinLat -= bboxPaddingDegrees
	box.MaxLat += bboxPaddingDegrees
	box.MinLon -= bboxPaddingDegrees
	box.MaxLon += bboxPaddingDegrees

	return box
}

// fetchContext gathers traffic, weather and air quality concurrently.
// Each lookup is best-effort; failures are logged and leave the
// corresponding field nil.
func (s *Service) fetchContext(ctx context.Context, area traffic.BBox) routeContext {
	var rctx routeContext
	var wg sync.WaitGroup

	lat, lon := area.Center()

	if s.traffic != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := s.traffic.GetFlow(ctx, area)
			if err != nil {
				s.logger.Warn().Err(err).Str("provider", s.traffic.Name()).Msg("traffic lookup failed")
				return
			}
			rctx.traffic = snapshot
		}()
	}

	if s.weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := s.weather.Current(ctx, lat, lon)
			if err != nil {
				s.logger.Warn().Err(err).Str("provider", s.weather.Name()).Msg("weather lookup failed")
				return
			}
			rctx.weather = obs
		}()
	}

	if s.air != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs, err := s.air.Current(ctx, lat, lon)
			if err != nil {
				s.logger.Warn().Err(err).Str("provider", s.air.Name()).Msg("air quality lookup failed")
				return
			}
			rctx.air = obs
		}()
	}

	wg.Wait()
	return rctx
}

// fetchRoutes queries every configured routing provider concurrently.
// Provider failures are isolated and logged; surviving routes are
// concatenated in configured provider order for deterministic
// pre-ranking output.
func (s *Service) fetchRoutes(ctx context.Context, req Request) []routing.RawRoute {
	if len(s.providers) == 0 {
		return nil
	}

	query := req.Query()
	outcomes := make([]providerOutcome, len(s.providers))

	var wg sync.WaitGroup
	for i, provider := range s.providers {
		wg.Add(1)
		go func(i int, p routing.Provider) {
			defer wg.Done()
			routes, err := p.GetRoutes(ctx, query)
			outcomes[i] = providerOutcome{provider: p.Name(), routes: routes, err: err}
		}(i, provider)
	}
	wg.Wait()

	var raws []routing.RawRoute
	for _, outcome := range outcomes {
		if outcome.err != nil {
			s.logger.Warn().
				Err(outcome.err).
				Str("provider", outcome.provider).
				Msg("routing provider failed, continuing with remaining providers")
			continue
		}
		raws = append(raws, outcome.routes...)
	}

	return raws
}

// attachEmissions fills EmissionsKG on each route. Average speed is
// derived from the route's own distance and duration; routes without a
// usable duration assume the urban average.
func (s *Service) attachEmissions(routes []Route, req Request, rctx routeContext) {
	congestion := rctx.traffic.CongestionLevel()
	weatherKeyword := emissionsWeatherKeyword(rctx.weather)

	for i := range routes {
		distanceKM := routes[i].DistanceMeters / 1000

		avgSpeed := fallbackAvgSpeedKPH
		if routes[i].DurationSeconds > 0 {
			avgSpeed = distanceKM / (routes[i].DurationSeconds / 3600)
		}

		routes[i].EmissionsKG = s.estimator.Estimate(distanceKM, req.VehicleType, emissions.Context{
			AvgSpeedKPH:       avgSpeed,
			PayloadKG:         req.PayloadKG,
			TrafficCongestion: congestion,
			Weather:           weatherKeyword,
		})
	}
}

// emissionsWeatherKeyword maps an observation to the estimator's weather
// vocabulary.
func emissionsWeatherKeyword(obs *weather.Observation) string {
	switch {
	case obs.IsSnow():
		return "snow"
	case obs.IsRain():
		return "rain"
	case obs.HasStrongWind():
		return "strong wind"
	default:
		return "normal"
	}
}

func (s *Service) errorResult(req Request, err error) *Result {
	s.logger.Error().Err(err).Msg("route optimization failed")
	return &Result{
		Status: StatusError,
		Error:  err.Error(),
		Query:  req,
		Routes: []Route{},
		Meta: Metadata{
			Traffic:     traffic.Summarize(nil),
			Weather:     weather.Summarize(nil),
			AirQuality:  airquality.Summarize(nil),
			GeneratedAt: s.clock().UTC(),
		},
	}
}
