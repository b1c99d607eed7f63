package geocoding

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Service resolves place names, preferring a configured provider and
// falling back to a built-in gazetteer of known locations so the API
// stays usable without a geocoding key.
type Service struct {
	provider  Provider
	gazetteer map[string]Location
	logger    zerolog.Logger
}

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the upstream geocoder (optional).
	Provider Provider

	// Gazetteer maps lowercase place names to locations. When nil the
	// default gazetteer is used.
	Gazetteer map[string]Location

	// Logger for service operations.
	Logger zerolog.Logger
}

// defaultGazetteer covers the demo locations used in examples and tests.
var defaultGazetteer = map[string]Location{
	"chennai central railway station": {Name: "Chennai Central Railway Station", Lat: 13.0827, Lon: 80.2707},
	"chennai international airport":   {Name: "Chennai International Airport", Lat: 12.9941, Lon: 80.1709},
	"chennai port":                    {Name: "Chennai Port", Lat: 13.1000, Lon: 80.3000},
	"guindy industrial estate":        {Name: "Guindy Industrial Estate", Lat: 13.0067, Lon: 80.2206},
	"tambaram":                        {Name: "Tambaram", Lat: 12.9249, Lon: 80.1000},
}

// NewService creates a geocoding service.
func NewService(cfg ServiceConfig) *Service {
	gazetteer := cfg.Gazetteer
	if gazetteer == nil {
		gazetteer = defaultGazetteer
	}
	return &Service{
		provider:  cfg.Provider,
		gazetteer: gazetteer,
		logger:    cfg.Logger,
	}
}

// Resolve turns a place name into coordinates. The upstream provider is
// consulted first when configured; unresolvable names fall back to the
// gazetteer before returning ErrNotFound.
func (s *Service) Resolve(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNotFound
	}

	if s.provider != nil {
		loc, err := s.provider.Geocode(ctx, query)
		if err == nil {
			return loc, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrProviderUnavailable) {
			return nil, err
		}
		s.logger.Debug().
			Err(err).
			Str("query", query).
			Msg("geocoding provider miss, trying gazetteer")
	}

	if loc, ok := s.gazetteer[strings.ToLower(query)]; ok {
		return &loc, nil
	}

	return nil, ErrNotFound
}
