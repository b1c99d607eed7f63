// Package geocoding resolves free-text place names to coordinates.
package geocoding

import (
	"context"
	"errors"
)

// Geocoding errors.
var (
	ErrNotFound            = errors.New("location not found")
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Location is a resolved place.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"latitude"`
	Lon  float64 `json:"longitude"`
}

// Provider resolves an address or place name to coordinates.
type Provider interface {
	// Geocode resolves the given address to a location.
	Geocode(ctx context.Context, address string) (*Location, error)
	// Name returns the provider identifier.
	Name() string
}
