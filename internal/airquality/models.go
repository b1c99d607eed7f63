// Package airquality provides air quality context for route results.
package airquality

import (
	"context"
	"errors"
	"time"
)

// Provider errors.
var (
	ErrNoData              = errors.New("no air quality data for location")
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
)

// Provider fetches air quality observations for a location.
type Provider interface {
	// Current retrieves the latest observation near the given coordinates.
	Current(ctx context.Context, lat, lon float64) (*Observation, error)
	// Name returns the provider identifier.
	Name() string
}

// Observation is a point-in-time air quality reading from the monitoring
// station nearest the queried location.
type Observation struct {
	Provider    string
	AQI         float64
	StationName string
	Dominant    string
	FetchedAt   time.Time
}

// AQI bucket thresholds. Boundary values fall into the worse bucket.
const (
	goodAQIMax     = 50
	moderateAQIMax = 100
)

// Summary is the bucketed air quality description included in result
// metadata.
type Summary struct {
	Status      string  `json:"status"`
	Description string  `json:"description"`
	AQI         float64 `json:"aqi,omitempty"`
}

// Summarize buckets an observation into a human-readable summary. A nil
// observation yields the unknown status.
func Summarize(o *Observation) Summary {
	if o == nil {
		return Summary{Status: "unknown", Description: "Air quality data unavailable"}
	}

	switch {
	case o.AQI < goodAQIMax:
		return Summary{Status: "good", Description: "Air quality is good", AQI: o.AQI}
	case o.AQI < moderateAQIMax:
		return Summary{Status: "moderate", Description: "Air quality is acceptable", AQI: o.AQI}
	default:
		return Summary{Status: "poor", Description: "Air quality is poor, consider minimizing exposure", AQI: o.AQI}
	}
}
