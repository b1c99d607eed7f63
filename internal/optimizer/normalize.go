package optimizer

import (
	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/routing"
	"github.com/ecoroute/ecoroute/pkg/polyline"
)

// geometryDecoder extracts the point sequence from one provider's raw
// route. A decoder returns nil when the geometry is absent or malformed;
// that route keeps an empty geometry rather than failing the batch.
type geometryDecoder func(routing.RawRoute) []routing.Point

// inlineGeometry covers providers that return explicit point structures.
func inlineGeometry(raw routing.RawRoute) []routing.Point {
	return raw.GeometryPoints
}

// polylineGeometry covers providers that return encoded polylines.
func polylineGeometry(raw routing.RawRoute) []routing.Point {
	decoded := polyline.Decode(raw.GeometryPolyline)
	if len(decoded) == 0 {
		return nil
	}
	points := make([]routing.Point, len(decoded))
	for i, p := range decoded {
		points[i] = routing.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return points
}

// eitherGeometry prefers inline points and falls back to polyline
// decoding, for providers (and future ones) with no registered decoder.
func eitherGeometry(raw routing.RawRoute) []routing.Point {
	if len(raw.GeometryPoints) > 0 {
		return raw.GeometryPoints
	}
	return polylineGeometry(raw)
}

// geometryDecoders maps provider tags to their geometry shape.
var geometryDecoders = map[string]geometryDecoder{
	"tomtom":         inlineGeometry,
	"googlemaps":     polylineGeometry,
	"osrm":           polylineGeometry,
	FallbackProvider: inlineGeometry,
}

// Normalize flattens raw provider routes into the common route record.
// Input order is preserved; one malformed route never drops its
// siblings. Missing metrics default to zero and negative provider values
// are clamped.
func Normalize(raws []routing.RawRoute, logger zerolog.Logger) []Route {
	routes := make([]Route, 0, len(raws))

	for _, raw := range raws {
		decoder, ok := geometryDecoders[raw.Provider]
		if !ok {
			decoder = eitherGeometry
		}

		geometry := decoder(raw)
		if geometry == nil {
			logger.Warn().
				Str("provider", raw.Provider).
				Str("route_id", raw.RouteID).
				Msg("route geometry missing or undecodable")
			geometry = []routing.Point{}
		}

		routes = append(routes, Route{
			ID:                  raw.Provider + ":" + raw.RouteID,
			Provider:            raw.Provider,
			DistanceMeters:      nonNegative(raw.Summary.LengthMeters),
			DurationSeconds:     nonNegative(raw.Summary.TravelTimeSeconds),
			TrafficDelaySeconds: nonNegative(raw.Summary.TrafficDelaySeconds),
			Geometry:            geometry,
		})
	}

	return routes
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
