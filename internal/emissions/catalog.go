package emissions

import (
	"github.com/rs/zerolog"
)

// DefaultVehicleType is the catalog entry substituted for unknown
// vehicle types.
const DefaultVehicleType = "delivery_van"

// Catalog maps vehicle type keys to their emission factors.
type Catalog struct {
	factors map[string]VehicleFactors
	logger  zerolog.Logger
}

// defaultFactors are the built-in category parameters.
func defaultFactors() map[string]VehicleFactors {
	return map[string]VehicleFactors{
		"delivery_van": {
			BaseEmissionRateGPerKM: 275,
			FuelEfficiencyMPG:      12,
			PayloadFactor:          0.05,
		},
		"box_truck": {
			BaseEmissionRateGPerKM: 450,
			FuelEfficiencyMPG:      8,
			PayloadFactor:          0.08,
		},
		"semi_truck": {
			BaseEmissionRateGPerKM: 900,
			FuelEfficiencyMPG:      6,
			PayloadFactor:          0.1,
		},
		"electric_vehicle": {
			BaseEmissionRateGPerKM: 50,
			FuelEfficiencyMPG:      100,
			PayloadFactor:          0.03,
		},
	}
}

// NewCatalog creates a catalog with the built-in vehicle factors.
func NewCatalog(logger zerolog.Logger) *Catalog {
	return &Catalog{factors: defaultFactors(), logger: logger}
}

// NewCatalogWithFactors creates a catalog from configured factors. The
// map must include DefaultVehicleType; missing or empty maps fall back
// to the built-in set.
func NewCatalogWithFactors(factors map[string]VehicleFactors, logger zerolog.Logger) *Catalog {
	if _, ok := factors[DefaultVehicleType]; !ok {
		logger.Warn().Msg("vehicle factor config missing default vehicle, using built-in factors")
		factors = defaultFactors()
	}
	return &Catalog{factors: factors, logger: logger}
}

// Lookup returns the factors for a vehicle type. Unknown types resolve
// to the default vehicle and log the substitution rather than erroring.
func (c *Catalog) Lookup(vehicleType string) VehicleFactors {
	if factors, ok := c.factors[vehicleType]; ok {
		return factors
	}
	c.logger.Warn().
		Str("vehicle_type", vehicleType).
		Str("substituted", DefaultVehicleType).
		Msg("unknown vehicle type, using default factors")
	return c.factors[DefaultVehicleType]
}

// Types returns the known vehicle type keys.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.factors))
	for key := range c.factors {
		types = append(types, key)
	}
	return types
}
