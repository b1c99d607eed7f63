package optimizer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoroute/ecoroute/internal/routing"
	"github.com/ecoroute/ecoroute/pkg/polyline"
)

func TestNormalizeInlineGeometry(t *testing.T) {
	raws := []routing.RawRoute{
		{
			Provider: "tomtom",
			RouteID:  "tt-0",
			Summary:  routing.Summary{LengthMeters: 14500, TravelTimeSeconds: 1620, TrafficDelaySeconds: 120},
			GeometryPoints: []routing.Point{
				{Lat: 13.0827, Lon: 80.2707},
				{Lat: 12.9941, Lon: 80.1709},
			},
		},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 1)

	assert.Equal(t, "tomtom:tt-0", routes[0].ID)
	assert.Equal(t, "tomtom", routes[0].Provider)
	assert.Equal(t, 14500.0, routes[0].DistanceMeters)
	assert.Equal(t, 1620.0, routes[0].DurationSeconds)
	assert.Equal(t, 120.0, routes[0].TrafficDelaySeconds)
	assert.Len(t, routes[0].Geometry, 2)
}

func TestNormalizePolylineGeometry(t *testing.T) {
	encoded := polyline.Encode([]polyline.Point{
		{Lat: 13.0827, Lon: 80.2707},
		{Lat: 13.0400, Lon: 80.2200},
		{Lat: 12.9941, Lon: 80.1709},
	})

	raws := []routing.RawRoute{
		{
			Provider:         "googlemaps",
			RouteID:          "gm-0",
			Summary:          routing.Summary{LengthMeters: 16000, TravelTimeSeconds: 1500},
			GeometryPolyline: encoded,
		},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Geometry, 3)
	assert.InDelta(t, 13.0827, routes[0].Geometry[0].Lat, 1e-5)
	assert.InDelta(t, 80.1709, routes[0].Geometry[2].Lon, 1e-5)
}

func TestNormalizeBadGeometryDoesNotDropSiblings(t *testing.T) {
	raws := []routing.RawRoute{
		{Provider: "osrm", RouteID: "osrm-0", GeometryPolyline: "!!garbage!!"},
		{
			Provider:         "osrm",
			RouteID:          "osrm-1",
			Summary:          routing.Summary{LengthMeters: 15000, TravelTimeSeconds: 1400},
			GeometryPolyline: polyline.Encode([]polyline.Point{{Lat: 13, Lon: 80}, {Lat: 12.9, Lon: 80.1}}),
		},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 2)
	assert.Empty(t, routes[0].Geometry)
	assert.Len(t, routes[1].Geometry, 2)
}

func TestNormalizeMissingMetricsDefaultToZero(t *testing.T) {
	raws := []routing.RawRoute{
		{Provider: "tomtom", RouteID: "tt-0"},
		{Provider: "tomtom", RouteID: "tt-1", Summary: routing.Summary{LengthMeters: -5, TravelTimeSeconds: -1, TrafficDelaySeconds: -2}},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 2)
	for _, r := range routes {
		assert.Zero(t, r.DistanceMeters)
		assert.Zero(t, r.DurationSeconds)
		assert.Zero(t, r.TrafficDelaySeconds)
	}
}

func TestNormalizePreservesInputOrder(t *testing.T) {
	raws := []routing.RawRoute{
		{Provider: "tomtom", RouteID: "tt-0"},
		{Provider: "googlemaps", RouteID: "gm-0"},
		{Provider: "osrm", RouteID: "osrm-0"},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 3)
	assert.Equal(t, "tomtom:tt-0", routes[0].ID)
	assert.Equal(t, "googlemaps:gm-0", routes[1].ID)
	assert.Equal(t, "osrm:osrm-0", routes[2].ID)
}

func TestNormalizeUnknownProviderUsesEitherShape(t *testing.T) {
	raws := []routing.RawRoute{
		{
			Provider:       "newprovider",
			RouteID:        "np-0",
			GeometryPoints: []routing.Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		},
		{
			Provider:         "newprovider",
			RouteID:          "np-1",
			GeometryPolyline: polyline.Encode([]polyline.Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}),
		},
	}

	routes := Normalize(raws, zerolog.Nop())
	require.Len(t, routes, 2)
	assert.Len(t, routes[0].Geometry, 2)
	assert.Len(t, routes[1].Geometry, 2)
}
