package tomtom

// calculateRouteResponse is the TomTom Routing API response envelope.
type calculateRouteResponse struct {
	FormatVersion string  `json:"formatVersion"`
	Routes        []route `json:"routes"`
}

type route struct {
	Summary routeSummary `json:"summary"`
	Legs    []leg        `json:"legs"`
}

type routeSummary struct {
	LengthInMeters        float64 `json:"lengthInMeters"`
	TravelTimeInSeconds   float64 `json:"travelTimeInSeconds"`
	TrafficDelayInSeconds float64 `json:"trafficDelayInSeconds"`
	DepartureTime         string  `json:"departureTime,omitempty"`
	ArrivalTime           string  `json:"arrivalTime,omitempty"`
}

type leg struct {
	Summary routeSummary `json:"summary"`
	Points  []legPoint   `json:"points"`
}

type legPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// errorResponse is the TomTom error envelope.
type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
	DetailedError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"detailedError"`
}
