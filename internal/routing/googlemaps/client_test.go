package googlemaps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecoroute/ecoroute/internal/routing"
)

const directionsFixture = `{
	"status": "OK",
	"routes": [
		{
			"summary": "NH 45",
			"legs": [
				{
					"distance": {"text": "16.5 km", "value": 16500},
					"duration": {"text": "31 mins", "value": 1860},
					"duration_in_traffic": {"text": "35 mins", "value": 2100}
				}
			],
			"overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"}
		},
		{
			"summary": "GST Road",
			"legs": [
				{
					"distance": {"text": "18.1 km", "value": 18100},
					"duration": {"text": "29 mins", "value": 1740},
					"duration_in_traffic": {"text": "28 mins", "value": 1680}
				}
			],
			"overview_polyline": {"points": "_mqNvxq` + "`" + `@"}
		}
	]
}`

func testQuery() routing.RouteQuery {
	return routing.RouteQuery{
		Origin:      routing.Point{Lat: 13.0827, Lon: 80.2707},
		Destination: routing.Point{Lat: 12.9941, Lon: 80.1709},
		VehicleType: "delivery_van",
	}
}

func TestClient_GetRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("alternatives") != "true" {
			t.Error("expected alternatives=true")
		}
		if q.Get("origin") == "" || q.Get("destination") == "" {
			t.Error("expected origin and destination params")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directionsFixture))
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
	if first.RouteID != "gm-0" {
		t.Errorf("expected route id gm-0, got %q", first.RouteID)
	}
	if first.Summary.LengthMeters != 16500 {
		t.Errorf("expected length 16500, got %f", first.Summary.LengthMeters)
	}
	// 2100s in traffic vs 1860s nominal.
	if first.Summary.TrafficDelaySeconds != 240 {
		t.Errorf("expected delay 240, got %f", first.Summary.TrafficDelaySeconds)
	}
	if first.GeometryPolyline == "" {
		t.Error("expected encoded polyline geometry")
	}

	// Second route is faster in traffic than nominal; delay floors at zero.
	if routes[1].Summary.TrafficDelaySeconds != 0 {
		t.Errorf("expected zero delay, got %f", routes[1].Summary.TrafficDelaySeconds)
	}
}

func TestClient_GetRoutes_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
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

func TestClient_GetRoutes_OverQueryLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "error_message": "quota exceeded", "routes": []}`))
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

	var provErr *routing.Error
	if !errors.As(err, &provErr) || provErr.Message != "quota exceeded" {
		t.Errorf("expected provider error message to surface, got %v", err)
	}
}
