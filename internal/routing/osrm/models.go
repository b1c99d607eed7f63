package osrm

// routeResponse is the OSRM route service response envelope.
type routeResponse struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Routes    []route    `json:"routes"`
	Waypoints []waypoint `json:"waypoints,omitempty"`
}

type route struct {
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
	Geometry string  `json:"geometry"` // encoded polyline, precision 5
	Legs     []leg   `json:"legs,omitempty"`
}

type leg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Summary  string  `json:"summary,omitempty"`
}

type waypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"` // [lon, lat]
}

// OSRM response codes.
const (
	codeOK           = "Ok"
	codeNoRoute      = "NoRoute"
	codeNoSegment    = "NoSegment"
	codeInvalidQuery = "InvalidQuery"
)
