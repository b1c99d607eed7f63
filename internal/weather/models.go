// Package weather provides weather context for emissions estimation and
// route result metadata.
package weather

import (
	"context"
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
)

// StrongWindThresholdMS is the wind speed above which conditions
// measurably increase fuel consumption.
const StrongWindThresholdMS = 8.0

// Provider fetches weather observations for a location.
type Provider interface {
	// Current retrieves the current weather near the given coordinates.
	Current(ctx context.Context, lat, lon float64) (*Observation, error)
	// Name returns the provider identifier.
	Name() string
}

// Observation represents weather conditions at a specific point and time.
type Observation struct {
	Lat float64
	Lon float64

	// Temperature in Celsius
	Temperature float64

	// Wind speed in m/s
	WindSpeed float64

	Condition   Condition
	Description string

	ObservedAt time.Time
	FetchedAt  time.Time
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionSnow         Condition = "SNOW"
	ConditionMist         Condition = "MIST"
	ConditionFog          Condition = "FOG"
	ConditionHaze         Condition = "HAZE"
	ConditionUnknown      Condition = "UNKNOWN"
)

// IsRain reports whether the observation involves rainfall.
func (o *Observation) IsRain() bool {
	if o == nil {
		return false
	}
	switch o.Condition {
	case ConditionRain, ConditionDrizzle, ConditionThunderstorm:
		return true
	}
	return false
}

// IsSnow reports whether the observation involves snowfall.
func (o *Observation) IsSnow() bool {
	return o != nil && o.Condition == ConditionSnow
}

// HasStrongWind reports whether wind speed exceeds the strong wind
// threshold.
func (o *Observation) HasStrongWind() bool {
	return o != nil && o.WindSpeed > StrongWindThresholdMS
}

// Summary is the bucketed weather description included in result metadata.
type Summary struct {
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature_celsius,omitempty"`
}

// Summarize converts an observation into a human-readable summary. A nil
// observation yields the unknown status.
func Summarize(o *Observation) Summary {
	if o == nil {
		return Summary{Status: "unknown", Description: "Weather data unavailable"}
	}

	status := "clear"
	switch {
	case o.IsSnow():
		status = "snow"
	case o.IsRain():
		status = "rain"
	case o.HasStrongWind():
		status = "windy"
	case o.Condition == ConditionClouds:
		status = "cloudy"
	}

	desc := o.Description
	if desc == "" {
		desc = string(o.Condition)
	}

	return Summary{Status: status, Description: desc, Temperature: o.Temperature}
}
