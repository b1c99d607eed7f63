package tomtom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecoroute/ecoroute/internal/routing"
)

const routeFixture = `{
	"formatVersion": "0.0.12",
	"routes": [
		{
			"summary": {
				"lengthInMeters": 16340,
				"travelTimeInSeconds": 1860,
				"trafficDelayInSeconds": 240
			},
			"legs": [
				{
					"summary": {"lengthInMeters": 16340, "travelTimeInSeconds": 1860},
					"points": [
						{"latitude": 13.0827, "longitude": 80.2707},
						{"latitude": 13.0412, "longitude": 80.2201},
						{"latitude": 12.9941, "longitude": 80.1709}
					]
				}
			]
		},
		{
			"summary": {
				"lengthInMeters": 17890,
				"travelTimeInSeconds": 1790,
				"trafficDelayInSeconds": 120
			},
			"legs": [
				{
					"summary": {"lengthInMeters": 17890, "travelTimeInSeconds": 1790},
					"points": [
						{"latitude": 13.0827, "longitude": 80.2707},
						{"latitude": 12.9941, "longitude": 80.1709}
					]
				}
			]
		}
	]
}`

func testQuery() routing.RouteQuery {
	return routing.RouteQuery{
		Origin:          routing.Point{Lat: 13.0827, Lon: 80.2707},
		Destination:     routing.Point{Lat: 12.9941, Lon: 80.1709},
		VehicleType:     "delivery_van",
		MaxAlternatives: 3,
	}
}

func TestClient_GetRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/routing/1/calculateRoute/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("traffic") != "true" {
			t.Error("expected traffic=true")
		}
		if r.URL.Query().Get("travelMode") != "van" {
			t.Errorf("expected travelMode=van for delivery_van, got %q", r.URL.Query().Get("travelMode"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(routeFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	routes, err := client.GetRoutes(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}

	first := routes[0]
	if first.Provider != ProviderName {
		t.Errorf("expected provider %q, got %q", ProviderName, first.Provider)
	}
	if first.RouteID != "tt-0" {
		t.Errorf("expected route id tt-0, got %q", first.RouteID)
	}
	if first.Summary.LengthMeters != 16340 {
		t.Errorf("expected length 16340, got %f", first.Summary.LengthMeters)
	}
	if first.Summary.TrafficDelaySeconds != 240 {
		t.Errorf("expected delay 240, got %f", first.Summary.TrafficDelaySeconds)
	}
	if len(first.GeometryPoints) != 3 {
		t.Errorf("expected 3 geometry points, got %d", len(first.GeometryPoints))
	}
	if len(first.Raw) == 0 {
		t.Error("expected raw payload to be retained")
	}
}

func TestClient_GetRoutes_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detailedError":{"code":"NO_ROUTE_FOUND","message":"no route found"}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.GetRoutes(context.Background(), testQuery())
	if !errors.Is(err, routing.ErrNoRoutesFound) {
		t.Errorf("expected ErrNoRoutesFound, got %v", err)
	}
}

func TestClient_GetRoutes_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	_, err := client.GetRoutes(context.Background(), testQuery())
	if !errors.Is(err, routing.ErrRateLimitExceeded) {
		t.Errorf("expected ErrRateLimitExceeded, got %v", err)
	}
}

func TestClient_GetRoutes_InvalidCoordinates(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "test-key"})

	q := testQuery()
	q.Origin.Lat = 95

	_, err := client.GetRoutes(context.Background(), q)
	if !errors.Is(err, routing.ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}
