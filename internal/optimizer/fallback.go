package optimizer

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ecoroute/ecoroute/internal/routing"
	"github.com/ecoroute/ecoroute/pkg/polyline"
)

// FallbackProvider tags synthesized routes.
const FallbackProvider = "fallback"

// Fallback route parameters: assumed urban average speed and a flat
// traffic delay share.
const (
	fallbackAvgSpeedKPH     = 40.0
	fallbackTrafficDelayPct = 0.1
)

// fallbackVariant applies fixed multipliers to the great-circle baseline.
type fallbackVariant struct {
	name           string
	distanceFactor float64
	timeFactor     float64
}

var fallbackVariants = []fallbackVariant{
	{name: "Fastest Route", distanceFactor: 1.0, timeFactor: 1.0},
	{name: "Shortest Route", distanceFactor: 0.95, timeFactor: 1.1},
	{name: "Eco-Friendly Route", distanceFactor: 1.05, timeFactor: 1.05},
}

// FallbackRoutes synthesizes three route variants from the great-circle
// distance between origin and destination, so a valid request always
// yields a usable answer even with every provider down.
func FallbackRoutes(origin, destination routing.Point) []routing.RawRoute {
	baseMeters := polyline.Distance(
		polyline.Point{Lat: origin.Lat, Lon: origin.Lon},
		polyline.Point{Lat: destination.Lat, Lon: destination.Lon},
	)

	routes := make([]routing.RawRoute, 0, len(fallbackVariants))
	for i, variant := range fallbackVariants {
		distance := math.Floor(baseMeters * variant.distanceFactor)
		duration := math.Floor(distance / 1000 * 3600 / fallbackAvgSpeedKPH * variant.timeFactor)
		delay := math.Max(0, math.Floor(duration*fallbackTrafficDelayPct))

		raw, _ := json.Marshal(map[string]string{"route_name": variant.name})

		routes = append(routes, routing.RawRoute{
			Provider: FallbackProvider,
			RouteID:  "demo-" + strconv.Itoa(i),
			Summary: routing.Summary{
				LengthMeters:        distance,
				TravelTimeSeconds:   duration,
				TrafficDelaySeconds: delay,
			},
			GeometryPoints: []routing.Point{origin, destination},
			Raw:            raw,
		})
	}

	return routes
}
