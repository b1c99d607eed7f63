package emissions

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog(zerolog.Nop())

	van := catalog.Lookup("delivery_van")
	assert.Equal(t, 275.0, van.BaseEmissionRateGPerKM)
	assert.Equal(t, 0.05, van.PayloadFactor)

	semi := catalog.Lookup("semi_truck")
	assert.Equal(t, 900.0, semi.BaseEmissionRateGPerKM)

	ev := catalog.Lookup("electric_vehicle")
	assert.Equal(t, 50.0, ev.BaseEmissionRateGPerKM)
}

func TestCatalogLookupUnknownFallsBack(t *testing.T) {
	catalog := NewCatalog(zerolog.Nop())

	got := catalog.Lookup("unicycle")
	assert.Equal(t, catalog.Lookup(DefaultVehicleType), got)
}

func TestCatalogWithConfiguredFactors(t *testing.T) {
	factors := map[string]VehicleFactors{
		"delivery_van": {BaseEmissionRateGPerKM: 300, PayloadFactor: 0.06},
		"cargo_bike":   {BaseEmissionRateGPerKM: 5, PayloadFactor: 0.2},
	}
	catalog := NewCatalogWithFactors(factors, zerolog.Nop())

	assert.Equal(t, 5.0, catalog.Lookup("cargo_bike").BaseEmissionRateGPerKM)
	assert.Equal(t, 300.0, catalog.Lookup("delivery_van").BaseEmissionRateGPerKM)
}

func TestCatalogWithoutDefaultUsesBuiltin(t *testing.T) {
	catalog := NewCatalogWithFactors(map[string]VehicleFactors{
		"cargo_bike": {BaseEmissionRateGPerKM: 5},
	}, zerolog.Nop())

	assert.Equal(t, 275.0, catalog.Lookup("delivery_van").BaseEmissionRateGPerKM)
}
