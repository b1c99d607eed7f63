// Package config loads EcoRoute configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ecoroute/ecoroute/internal/emissions"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig             `mapstructure:"server"`
	Providers ProvidersConfig          `mapstructure:"providers"`
	Vehicles  map[string]VehicleConfig `mapstructure:"vehicles"`
	Emissions EmissionsConfig          `mapstructure:"emissions"`
	Defaults  DefaultsConfig           `mapstructure:"defaults"`
	Cache     CacheConfig              `mapstructure:"cache"`
	Telemetry TelemetryConfig          `mapstructure:"telemetry"`
	Logging   LoggingConfig            `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int  `mapstructure:"port"`
	ReadTimeout  int  `mapstructure:"read_timeout"`
	WriteTimeout int  `mapstructure:"write_timeout"`
	IdleTimeout  int  `mapstructure:"idle_timeout"`
	RequireTLS   bool `mapstructure:"require_tls"`
}

// ProviderConfig holds the connection settings for one external API.
// Keyed providers are disabled until a key is set; keyless ones (OSRM)
// use the explicit enabled flag.
type ProviderConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
	Enabled bool   `mapstructure:"enabled"`
}

// Active reports whether the provider should be constructed.
func (p ProviderConfig) Active() bool {
	return p.Enabled || p.Key != ""
}

// TimeoutDuration returns the provider timeout as a duration.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// ProvidersConfig groups all external API settings.
type ProvidersConfig struct {
	TomTom         ProviderConfig `mapstructure:"tomtom"`
	GoogleMaps     ProviderConfig `mapstructure:"googlemaps"`
	OSRM           ProviderConfig `mapstructure:"osrm"`
	AQICN          ProviderConfig `mapstructure:"aqicn"`
	OpenWeatherMap ProviderConfig `mapstructure:"openweathermap"`
}

// VehicleConfig describes one vehicle model from the fleet catalog.
type VehicleConfig struct {
	FuelType                    string  `mapstructure:"fuel_type"`
	FuelEfficiencyLPer100KM     float64 `mapstructure:"fuel_efficiency_l_per_100km"`
	EnergyEfficiencyKWhPer100KM float64 `mapstructure:"energy_efficiency_kwh_per_100km"`
}

// EmissionsConfig holds per-unit CO2 factors.
type EmissionsConfig struct {
	DieselKGPerLiter   float64 `mapstructure:"diesel_kg_per_liter"`
	GasolineKGPerLiter float64 `mapstructure:"gasoline_kg_per_liter"`
	ElectricKGPerKWh   float64 `mapstructure:"electric_kg_per_kwh"`
}

// Factors converts the config into the estimator's factor set.
func (e EmissionsConfig) Factors() emissions.EmissionFactors {
	return emissions.EmissionFactors{
		DieselKGPerLiter:   e.DieselKGPerLiter,
		GasolineKGPerLiter: e.GasolineKGPerLiter,
		ElectricKGPerKWh:   e.ElectricKGPerKWh,
	}
}

// DefaultsConfig holds fallback values applied to incomplete requests.
type DefaultsConfig struct {
	VehicleType          string `mapstructure:"vehicle_type"`
	MaxRouteAlternatives int    `mapstructure:"max_route_alternatives"`
}

// CacheConfig holds route result cache settings.
type CacheConfig struct {
	ExpirySeconds int `mapstructure:"expiry_seconds"`
}

// Expiry returns the cache TTL as a duration.
func (c CacheConfig) Expiry() time.Duration {
	return time.Duration(c.ExpirySeconds) * time.Second
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
	Enabled     bool   `mapstructure:"enabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration from file and environment variables.
// Environment variables use the ECOROUTE_ prefix with dots replaced by
// underscores, e.g. ECOROUTE_PROVIDERS_TOMTOM_KEY.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.require_tls", false)

	// Keys default to empty so the env override is picked up during
	// Unmarshal; an empty key leaves the provider disabled.
	v.SetDefault("providers.tomtom.key", "")
	v.SetDefault("providers.googlemaps.key", "")
	v.SetDefault("providers.osrm.key", "")
	v.SetDefault("providers.aqicn.key", "")
	v.SetDefault("providers.openweathermap.key", "")

	v.SetDefault("providers.tomtom.base_url", "https://api.tomtom.com")
	v.SetDefault("providers.tomtom.timeout", 30)
	v.SetDefault("providers.googlemaps.base_url", "https://maps.googleapis.com")
	v.SetDefault("providers.googlemaps.timeout", 30)
	v.SetDefault("providers.osrm.base_url", "https://router.project-osrm.org")
	v.SetDefault("providers.osrm.timeout", 30)
	v.SetDefault("providers.osrm.enabled", false)
	v.SetDefault("providers.aqicn.base_url", "https://api.waqi.info")
	v.SetDefault("providers.aqicn.timeout", 10)
	v.SetDefault("providers.openweathermap.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("providers.openweathermap.timeout", 10)

	v.SetDefault("emissions.diesel_kg_per_liter", 2.68)
	v.SetDefault("emissions.gasoline_kg_per_liter", 2.31)
	v.SetDefault("emissions.electric_kg_per_kwh", 0.5)

	v.SetDefault("defaults.vehicle_type", "delivery_van")
	v.SetDefault("defaults.max_route_alternatives", 3)

	v.SetDefault("cache.expiry_seconds", 600)

	v.SetDefault("telemetry.service_name", "ecoroute-api")
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: ECOROUTE_PROVIDERS_TOMTOM_KEY → providers.tomtom.key
	v.SetEnvPrefix("ECOROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// VehicleProfiles converts the configured fleet into estimator profiles.
func (c *Config) VehicleProfiles() map[string]emissions.VehicleProfile {
	if len(c.Vehicles) == 0 {
		return nil
	}
	profiles := make(map[string]emissions.VehicleProfile, len(c.Vehicles))
	for name, vc := range c.Vehicles {
		profiles[name] = emissions.VehicleProfile{
			Type:                        name,
			FuelType:                    emissions.FuelType(vc.FuelType),
			FuelEfficiencyLPer100KM:     vc.FuelEfficiencyLPer100KM,
			EnergyEfficiencyKWhPer100KM: vc.EnergyEfficiencyKWhPer100KM,
		}
	}
	return profiles
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Cache.ExpirySeconds <= 0 {
		errs = append(errs, "cache.expiry_seconds must be positive")
	}
	if c.Defaults.MaxRouteAlternatives <= 0 {
		errs = append(errs, "defaults.max_route_alternatives must be positive")
	}
	if c.Emissions.DieselKGPerLiter <= 0 || c.Emissions.GasolineKGPerLiter <= 0 || c.Emissions.ElectricKGPerKWh <= 0 {
		errs = append(errs, "emissions factors must be positive")
	}
	for name, vc := range c.Vehicles {
		if vc.FuelType == "" {
			errs = append(errs, fmt.Sprintf("vehicles.%s.fuel_type is required", name))
		}
		if vc.FuelEfficiencyLPer100KM <= 0 && vc.EnergyEfficiencyKWhPer100KM <= 0 {
			errs = append(errs, fmt.Sprintf("vehicles.%s needs a fuel or energy efficiency", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
