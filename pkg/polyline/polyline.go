// Package polyline implements Google's encoded polyline algorithm
// (https://developers.google.com/maps/documentation/utilities/polylinealgorithm)
// at the standard precision of 5 decimal places, plus great-circle helpers
// used for route geometry.
package polyline

import "math"

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

const precision = 1e5

// Decode converts an encoded polyline string into a sequence of points.
// A truncated or malformed tail terminates decoding at the last complete
// point; a fully malformed input yields nil.
func Decode(encoded string) []Point {
	var points []Point
	var lat, lon int64

	i := 0
	for i < len(encoded) {
		dLat, n, ok := decodeDelta(encoded[i:])
		if !ok {
			break
		}
		i += n

		dLon, n, ok := decodeDelta(encoded[i:])
		if !ok {
			break
		}
		i += n

		lat += dLat
		lon += dLon
		points = append(points, Point{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return points
}

// decodeDelta reads one zig-zag varint delta from s.
// Returns the delta, the number of bytes consumed, and whether a complete
// chunk sequence was present.
func decodeDelta(s string) (int64, int, bool) {
	var result int64
	var shift uint
	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		if b < 0 {
			return 0, 0, false
		}
		result |= (b & 0x1f) << shift
		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1, true
			}
			return result >> 1, i + 1, true
		}
		shift += 5
	}
	return 0, 0, false
}

// Encode converts a sequence of points into an encoded polyline string.
func Encode(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(points)*4)
	var prevLat, prevLon int64

	for _, p := range points {
		lat := int64(math.Round(p.Lat * precision))
		lon := int64(math.Round(p.Lon * precision))
		buf = appendDelta(buf, lat-prevLat)
		buf = appendDelta(buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}

	return string(buf)
}

func appendDelta(buf []byte, v int64) []byte {
	if v < 0 {
		v = ^(v << 1)
	} else {
		v <<= 1
	}
	for v >= 0x20 {
		buf = append(buf, byte((v&0x1f)|0x20)+63)
		v >>= 5
	}
	return append(buf, byte(v)+63)
}

const earthRadiusMeters = 6371000

// Distance returns the haversine (great-circle) distance between two
// points in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Length returns the total length of a point sequence in meters.
func Length(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
