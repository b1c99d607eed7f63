package emissions

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestEstimator() *Estimator {
	return NewEstimator(EstimatorConfig{Logger: zerolog.Nop()})
}

func TestEstimateZeroDistance(t *testing.T) {
	est := newTestEstimator()

	for _, vehicle := range []string{"delivery_van", "semi_truck", "electric_vehicle", "hovercraft"} {
		assert.Zero(t, est.Estimate(0, vehicle, Context{}), "vehicle %s", vehicle)
		assert.Zero(t, est.Estimate(0, vehicle, Context{AvgSpeedKPH: 20, GradientPct: 5, PayloadKG: 500, TrafficCongestion: 1, Weather: "snow"}))
	}
}

func TestEstimateBaseRate(t *testing.T) {
	est := newTestEstimator()

	// 10 km in a delivery van at 275 g/km with no adjustments.
	got := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 50})
	assert.InDelta(t, 2.75, got, 1e-9)
}

func TestEstimateLinearInDistance(t *testing.T) {
	est := newTestEstimator()
	ctx := Context{AvgSpeedKPH: 20, GradientPct: 3, PayloadKG: 400, TrafficCongestion: 0.5, Weather: "rain"}

	single := est.Estimate(7.5, "box_truck", ctx)
	double := est.Estimate(15, "box_truck", ctx)
	assert.InDelta(t, 2*single, double, 1e-9)
}

func TestEstimateSpeedSteps(t *testing.T) {
	est := newTestEstimator()
	base := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55})

	slow := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 29.9})
	assert.InDelta(t, base*1.2, slow, 1e-9)

	// Thresholds are exclusive.
	atLow := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 30})
	assert.InDelta(t, base, atLow, 1e-9)

	atHigh := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 75})
	assert.InDelta(t, base, atHigh, 1e-9)

	fast := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 80})
	assert.InDelta(t, base*1.15, fast, 1e-9)

	// Zero means unknown speed, not a sub-30 crawl.
	unknown := est.Estimate(10, "delivery_van", Context{})
	assert.InDelta(t, base, unknown, 1e-9)
}

func TestEstimateAdjustmentFactors(t *testing.T) {
	est := newTestEstimator()
	base := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55})

	gradient := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55, GradientPct: -5})
	assert.InDelta(t, base*1.1, gradient, 1e-9)

	payload := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55, PayloadKG: 200})
	assert.InDelta(t, base*1.1, payload, 1e-9)

	traffic := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55, TrafficCongestion: 1})
	assert.InDelta(t, base*1.3, traffic, 1e-9)
}

func TestEstimateWeatherFactor(t *testing.T) {
	est := newTestEstimator()
	base := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55})

	tests := []struct {
		weather string
		factor  float64
	}{
		{"rain", 1.05},
		{"RAIN", 1.05},
		{"Snow", 1.10},
		{"strong wind", 1.08},
		{"Strong Wind", 1.08},
		{"normal", 1.0},
		{"hailstorm of frogs", 1.0},
		{"", 1.0},
	}

	for _, tt := range tests {
		got := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: 55, Weather: tt.weather})
		assert.InDelta(t, base*tt.factor, got, 1e-9, "weather %q", tt.weather)
	}
}

func TestEstimateUnknownVehicleUsesDefault(t *testing.T) {
	est := newTestEstimator()
	ctx := Context{AvgSpeedKPH: 55}

	unknown := est.Estimate(10, "rocket_sled", ctx)
	van := est.Estimate(10, "delivery_van", ctx)
	assert.InDelta(t, van, unknown, 1e-9)
}

func TestEstimateFallbackOnInvalidInput(t *testing.T) {
	est := newTestEstimator()

	got := est.Estimate(10, "delivery_van", Context{AvgSpeedKPH: math.NaN()})
	assert.InDelta(t, FallbackEstimate(10), got, 1e-9)

	got = est.Estimate(10, "delivery_van", Context{TrafficCongestion: 2})
	assert.InDelta(t, FallbackEstimate(10), got, 1e-9)
}

func TestFallbackEstimate(t *testing.T) {
	// 0.4 kg per mile.
	assert.InDelta(t, 0.4, FallbackEstimate(1.60934), 1e-9)
	assert.Zero(t, FallbackEstimate(-5))
	assert.Zero(t, FallbackEstimate(math.NaN()))
}

func TestEstimateFromProfile(t *testing.T) {
	est := newTestEstimator()

	diesel := VehicleProfile{Type: "delivery_van", FuelType: FuelDiesel, FuelEfficiencyLPer100KM: 12}
	// 100 km at 12 L/100km and 2.68 kg/L.
	assert.InDelta(t, 32.16, est.EstimateFromProfile(100, diesel), 1e-9)

	gasoline := VehicleProfile{Type: "courier_car", FuelType: FuelGasoline, FuelEfficiencyLPer100KM: 8}
	assert.InDelta(t, 8*2.31, est.EstimateFromProfile(100, gasoline), 1e-9)

	electric := VehicleProfile{Type: "electric_van", FuelType: FuelElectric, EnergyEfficiencyKWhPer100KM: 20}
	assert.InDelta(t, 10.0, est.EstimateFromProfile(100, electric), 1e-9)

	assert.Zero(t, est.EstimateFromProfile(0, diesel))
	assert.Zero(t, est.EstimateFromProfile(-10, diesel))
}

func TestBaselineGPerKM(t *testing.T) {
	assert.Equal(t, 180.0, BaselineGPerKM(FuelDiesel))
	assert.Equal(t, 210.0, BaselineGPerKM(FuelGasoline))
	assert.Equal(t, 50.0, BaselineGPerKM(FuelElectric))
	assert.Equal(t, 130.0, BaselineGPerKM(FuelHybrid))
	assert.Equal(t, 160.0, BaselineGPerKM(FuelNaturalGas))
	assert.Equal(t, 200.0, BaselineGPerKM(FuelType("steam")))
}
