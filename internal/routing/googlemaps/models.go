package googlemaps

// directionsResponse is the Google Directions API response envelope.
type directionsResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Routes       []route          `json:"routes"`
	GeocodedWPs  []map[string]any `json:"geocoded_waypoints,omitempty"`
}

type route struct {
	Summary          string   `json:"summary"`
	Legs             []leg    `json:"legs"`
	OverviewPolyline polyline `json:"overview_polyline"`
	Warnings         []string `json:"warnings,omitempty"`
}

type leg struct {
	Distance          textValue `json:"distance"`
	Duration          textValue `json:"duration"`
	DurationInTraffic textValue `json:"duration_in_traffic"`
	StartAddress      string    `json:"start_address,omitempty"`
	EndAddress        string    `json:"end_address,omitempty"`
}

type textValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type polyline struct {
	Points string `json:"points"`
}

// Directions API status codes.
const (
	statusOK               = "OK"
	statusZeroResults      = "ZERO_RESULTS"
	statusOverQueryLimit   = "OVER_QUERY_LIMIT"
	statusRequestDenied    = "REQUEST_DENIED"
	statusInvalidRequest   = "INVALID_REQUEST"
	statusUnknownError     = "UNKNOWN_ERROR"
	statusNotFoundLocation = "NOT_FOUND"
)
