package emissions

import (
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// Factor model constants.
const (
	// Speed thresholds in km/h. Emissions rise at crawl and at highway
	// speeds; the step function is deliberate, no interpolation.
	lowSpeedThresholdKPH  = 30
	highSpeedThresholdKPH = 75
	lowSpeedFactor        = 1.2
	highSpeedFactor       = 1.15

	// Emissions increase 2% per gradient percentage point.
	gradientFactorPerPct = 0.02

	// Heavy traffic adds up to 30%.
	maxTrafficFactor = 0.3

	// kmPerMile converts for the fallback estimate, which is defined in
	// miles.
	kmPerMile = 1.60934

	// fallbackKGPerMile is the crude constant-rate fallback applied when
	// the factor model cannot run.
	fallbackKGPerMile = 0.4
)

// Estimator computes route CO2 emissions.
type Estimator struct {
	catalog *Catalog
	factors EmissionFactors
	logger  zerolog.Logger
}

// EstimatorConfig holds configuration for the estimator.
type EstimatorConfig struct {
	// Catalog is the vehicle factor catalog. When nil the built-in
	// catalog is used.
	Catalog *Catalog

	// Factors are the per-unit factors for the profile model. Zero
	// value means defaults.
	Factors EmissionFactors

	// Logger for estimator operations.
	Logger zerolog.Logger
}

// NewEstimator creates an estimator.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = NewCatalog(cfg.Logger)
	}
	factors := cfg.Factors
	if factors == (EmissionFactors{}) {
		factors = DefaultEmissionFactors()
	}
	return &Estimator{catalog: catalog, factors: factors, logger: cfg.Logger}
}

// Estimate computes CO2 emissions in kg for a route of the given distance
// using the category factor model. A zero ctx.AvgSpeedKPH means the
// speed is unknown and applies the neutral factor, not the low-speed
// penalty. Pathological inputs degrade to the linear fallback estimate
// instead of failing.
func (e *Estimator) Estimate(distanceKM float64, vehicleType string, ctx Context) float64 {
	if !validInputs(distanceKM, ctx) {
		e.logger.Warn().
			Float64("distance_km", distanceKM).
			Str("vehicle_type", vehicleType).
			Msg("invalid emissions input, using fallback estimate")
		return FallbackEstimate(distanceKM)
	}

	factors := e.catalog.Lookup(vehicleType)

	baseGrams := distanceKM * factors.BaseEmissionRateGPerKM

	speedFactor := 1.0
	switch {
	case ctx.AvgSpeedKPH == 0:
		// Unknown speed, no penalty.
	case ctx.AvgSpeedKPH < lowSpeedThresholdKPH:
		speedFactor = lowSpeedFactor
	case ctx.AvgSpeedKPH > highSpeedThresholdKPH:
		speedFactor = highSpeedFactor
	}

	gradientFactor := 1.0 + math.Abs(ctx.GradientPct)*gradientFactorPerPct
	payloadFactor := 1.0 + (ctx.PayloadKG/100)*factors.PayloadFactor
	trafficFactor := 1.0 + ctx.TrafficCongestion*maxTrafficFactor
	weatherFactor := weatherFactorFor(ctx.Weather)

	totalGrams := baseGrams * speedFactor * gradientFactor * payloadFactor * trafficFactor * weatherFactor

	return totalGrams / 1000
}

// EstimateFromProfile computes CO2 emissions in kg directly from a
// vehicle profile's consumption figure. This is the configuration-driven
// path used when full vehicle specs are available.
func (e *Estimator) EstimateFromProfile(distanceKM float64, profile VehicleProfile) float64 {
	if distanceKM <= 0 || math.IsNaN(distanceKM) || math.IsInf(distanceKM, 0) {
		return 0
	}

	if profile.IsElectric() {
		kwh := distanceKM / 100 * profile.EnergyEfficiencyKWhPer100KM
		return kwh * e.factors.ElectricKGPerKWh
	}

	liters := distanceKM / 100 * profile.FuelEfficiencyLPer100KM
	switch profile.FuelType {
	case FuelGasoline:
		return liters * e.factors.GasolineKGPerLiter
	default:
		// Diesel is the delivery fleet default.
		return liters * e.factors.DieselKGPerLiter
	}
}

// VehicleTypes lists the catalog entries available for estimation.
func (e *Estimator) VehicleTypes() []string {
	return e.catalog.Types()
}

// VehicleFactors returns the catalog factors for a vehicle type.
func (e *Estimator) VehicleFactors(vehicleType string) VehicleFactors {
	return e.catalog.Lookup(vehicleType)
}

// FallbackEstimate is the named degrade-gracefully path: a flat
// per-mile rate applied when the factor model cannot produce a number.
func FallbackEstimate(distanceKM float64) float64 {
	if distanceKM < 0 || math.IsNaN(distanceKM) || math.IsInf(distanceKM, 0) {
		return 0
	}
	return distanceKM / kmPerMile * fallbackKGPerMile
}

// weatherFactorFor maps a weather keyword to its multiplier. Matching is
// case-insensitive and unrecognized values are neutral.
func weatherFactorFor(weather string) float64 {
	switch strings.ToLower(strings.TrimSpace(weather)) {
	case "rain":
		return 1.05
	case "snow":
		return 1.10
	case "strong wind":
		return 1.08
	default:
		return 1.0
	}
}

func validInputs(distanceKM float64, ctx Context) bool {
	for _, v := range []float64{distanceKM, ctx.AvgSpeedKPH, ctx.GradientPct, ctx.PayloadKG, ctx.TrafficCongestion} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return distanceKM >= 0 && ctx.PayloadKG >= 0 && ctx.TrafficCongestion >= 0 && ctx.TrafficCongestion <= 1
}
