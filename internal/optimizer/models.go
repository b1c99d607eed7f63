// Package optimizer implements the route optimization pipeline: provider
// route collection, normalization, emissions estimation, multi-criteria
// scoring, and result caching.
package optimizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecoroute/ecoroute/internal/airquality"
	"github.com/ecoroute/ecoroute/internal/routing"
	"github.com/ecoroute/ecoroute/internal/traffic"
	"github.com/ecoroute/ecoroute/internal/weather"
)

// ErrInvalidPriority indicates an unrecognized optimization priority.
var ErrInvalidPriority = errors.New("invalid optimization priority")

// Priority selects the scoring trade-off between travel time and
// emissions.
type Priority string

const (
	PriorityTime      Priority = "time"
	PriorityEmissions Priority = "emissions"
	PriorityBalanced  Priority = "balanced"
)

// ParsePriority validates a priority string. Empty defaults to balanced.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityTime, PriorityEmissions, PriorityBalanced:
		return Priority(s), nil
	case "":
		return PriorityBalanced, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// Default request parameters.
const (
	DefaultVehicleType     = "delivery_van"
	DefaultMaxAlternatives = 3
)

// Request is a route optimization request. Its fields fully determine
// the cache key.
type Request struct {
	Origin      routing.Point   `json:"origin"`
	Destination routing.Point   `json:"destination"`
	Stops       []routing.Point `json:"stops,omitempty"`
	VehicleType string          `json:"vehicle_type"`
	Priority    Priority        `json:"priority"`
	// MaxAlternatives bounds the routes returned (default 3).
	MaxAlternatives int `json:"max_alternatives"`
	// PayloadKG is the cargo weight used for emissions adjustment.
	PayloadKG float64 `json:"payload_kg,omitempty"`
}

// WithDefaults returns a copy with unset fields replaced by defaults.
func (r Request) WithDefaults() Request {
	if r.VehicleType == "" {
		r.VehicleType = DefaultVehicleType
	}
	if r.Priority == "" {
		r.Priority = PriorityBalanced
	}
	if r.MaxAlternatives <= 0 {
		r.MaxAlternatives = DefaultMaxAlternatives
	}
	return r
}

// Validate checks coordinates and priority.
func (r Request) Validate() error {
	if _, err := ParsePriority(string(r.Priority)); err != nil {
		return err
	}
	return r.Query().Validate()
}

// Query converts the request into a provider route query.
func (r Request) Query() routing.RouteQuery {
	return routing.RouteQuery{
		Origin:          r.Origin,
		Destination:     r.Destination,
		Stops:           r.Stops,
		VehicleType:     r.VehicleType,
		MaxAlternatives: r.MaxAlternatives,
	}
}

// Route is a normalized, scored route candidate.
type Route struct {
	// ID is provider-qualified and unique within a result set.
	ID       string `json:"id"`
	Provider string `json:"provider"`

	DistanceMeters      float64 `json:"distance_meters"`
	DurationSeconds     float64 `json:"duration_seconds"`
	TrafficDelaySeconds float64 `json:"traffic_delay_seconds"`

	Geometry []routing.Point `json:"geometry"`

	// EmissionsKG is filled by the emissions stage.
	EmissionsKG float64 `json:"emissions_kg"`

	// Score (0-100) and Recommendation are filled by the scoring stage.
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
}

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metadata describes the context a result was generated under.
type Metadata struct {
	Traffic     traffic.Summary    `json:"traffic_conditions"`
	Weather     weather.Summary    `json:"weather_conditions"`
	AirQuality  airquality.Summary `json:"air_quality"`
	RouteCount  int                `json:"route_count"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Result is the response envelope of an optimize call. Status is the
// authoritative success signal.
type Result struct {
	Status string `json:"status"`
	// Error carries the failure message when Status is "error".
	Error string `json:"error,omitempty"`

	Query  Request  `json:"query"`
	Routes []Route  `json:"routes"`
	Meta   Metadata `json:"metadata"`
}
