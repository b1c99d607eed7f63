// Package routing defines the domain model and provider contract for
// fetching candidate delivery routes from external routing services.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the provider is down, unconfigured,
	// or its circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRoutesFound indicates the provider returned no routes for the
	// given points.
	ErrNoRoutesFound = errors.New("no routes found between the given points")
	// ErrRateLimitExceeded indicates the provider's API quota is exhausted.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates out-of-range coordinates.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether the point lies within coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Provider fetches candidate routes from one external routing service.
type Provider interface {
	// GetRoutes retrieves raw route candidates for the query.
	GetRoutes(ctx context.Context, q RouteQuery) ([]RawRoute, error)
	// Name returns the provider tag used in route IDs, logs, and metrics.
	Name() string
}

// RouteQuery is the request for candidate routes.
type RouteQuery struct {
	Origin      Point
	Destination Point
	Stops       []Point // ordered intermediate stops, possibly empty
	VehicleType string
	// MaxAlternatives bounds the alternatives a provider should return
	// (providers may return fewer, or slightly more).
	MaxAlternatives int
}

// Validate checks the query coordinates.
func (q RouteQuery) Validate() error {
	if !q.Origin.Valid() {
		return fmt.Errorf("origin %v: %w", q.Origin, ErrInvalidCoordinates)
	}
	if !q.Destination.Valid() {
		return fmt.Errorf("destination %v: %w", q.Destination, ErrInvalidCoordinates)
	}
	for i, s := range q.Stops {
		if !s.Valid() {
			return fmt.Errorf("stop %d %v: %w", i, s, ErrInvalidCoordinates)
		}
	}
	return nil
}

// RawRoute is one provider route before normalization. Summary fields carry
// whatever the provider reported; none of them are trusted downstream
// (missing values are zero, and delay is not guaranteed <= travel time).
type RawRoute struct {
	// Provider is the tag of the originating provider.
	Provider string
	// RouteID is the provider-assigned identifier.
	RouteID string
	// Summary metrics as reported by the provider.
	Summary Summary
	// GeometryPolyline is the encoded route geometry, if the provider
	// returns polylines (Google, OSRM).
	GeometryPolyline string
	// GeometryPoints is the inline route geometry, if the provider returns
	// explicit points (TomTom, fallback).
	GeometryPoints []Point
	// Raw is the provider payload, kept for diagnostics only.
	Raw json.RawMessage
}

// Summary holds the provider-reported route metrics.
type Summary struct {
	LengthMeters        float64
	TravelTimeSeconds   float64
	TrafficDelaySeconds float64
}

// Error carries provider error detail alongside a sentinel cause.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
