// Package emissions estimates CO2 output for delivery routes.
//
// Two models are exposed: a category-based multiplicative factor model
// keyed by vehicle type (Estimator.Estimate), and a configuration-driven
// model computed from a vehicle's fuel or energy consumption figures
// (Estimator.EstimateFromProfile). The two are independent and not
// expected to produce identical numbers.
package emissions

// VehicleFactors holds the per-category parameters of the factor model.
type VehicleFactors struct {
	// BaseEmissionRateGPerKM is the baseline emission rate in grams of
	// CO2 per kilometer.
	BaseEmissionRateGPerKM float64

	// FuelEfficiencyMPG is the nominal fuel efficiency, kept for
	// reporting.
	FuelEfficiencyMPG float64

	// PayloadFactor is the fractional emissions increase per 100 kg of
	// payload.
	PayloadFactor float64
}

// FuelType identifies the energy source of a vehicle.
type FuelType string

const (
	FuelDiesel     FuelType = "diesel"
	FuelGasoline   FuelType = "gasoline"
	FuelElectric   FuelType = "electric"
	FuelHybrid     FuelType = "hybrid"
	FuelNaturalGas FuelType = "natural_gas"
)

// VehicleProfile describes a concrete vehicle's consumption. Exactly one
// of the efficiency fields applies: FuelEfficiencyLPer100KM for
// combustion vehicles, EnergyEfficiencyKWhPer100KM for electric ones.
type VehicleProfile struct {
	Type                        string
	FuelType                    FuelType
	FuelEfficiencyLPer100KM     float64
	EnergyEfficiencyKWhPer100KM float64
}

// IsElectric reports whether the profile uses the energy model.
func (p VehicleProfile) IsElectric() bool {
	return p.FuelType == FuelElectric || p.EnergyEfficiencyKWhPer100KM > 0
}

// Context carries the route conditions that adjust the base estimate.
// The zero value means flat terrain, no payload, free-flowing traffic
// and neutral weather at cruising speed.
type Context struct {
	// AvgSpeedKPH is the expected average speed. Zero means unknown and
	// applies no speed penalty.
	AvgSpeedKPH float64

	// GradientPct is the average route gradient in percent.
	GradientPct float64

	// PayloadKG is the cargo weight in kilograms.
	PayloadKG float64

	// TrafficCongestion is the congestion level on a 0..1 scale.
	TrafficCongestion float64

	// Weather is the condition keyword ("rain", "snow", "strong wind");
	// matching is case-insensitive and unrecognized values are neutral.
	Weather string
}

// EmissionFactors holds per-unit CO2 factors for the profile-based model.
type EmissionFactors struct {
	// DieselKGPerLiter is kg CO2 emitted per liter of diesel.
	DieselKGPerLiter float64

	// GasolineKGPerLiter is kg CO2 emitted per liter of gasoline.
	GasolineKGPerLiter float64

	// ElectricKGPerKWh is kg CO2 per kWh, dependent on the local grid mix.
	ElectricKGPerKWh float64
}

// DefaultEmissionFactors returns the stock per-unit factors.
func DefaultEmissionFactors() EmissionFactors {
	return EmissionFactors{
		DieselKGPerLiter:   2.68,
		GasolineKGPerLiter: 2.31,
		ElectricKGPerKWh:   0.5,
	}
}

// fuel baselines in g CO2 per km, used for comparative reporting.
var fuelBaselines = map[FuelType]float64{
	FuelGasoline:   210,
	FuelDiesel:     180,
	FuelElectric:   50,
	FuelHybrid:     130,
	FuelNaturalGas: 160,
}

// defaultBaselineGPerKM applies when the fuel type is unknown.
const defaultBaselineGPerKM = 200

// BaselineGPerKM returns the baseline emission rate for a fuel type.
func BaselineGPerKM(fuel FuelType) float64 {
	if baseline, ok := fuelBaselines[fuel]; ok {
		return baseline
	}
	return defaultBaselineGPerKM
}
