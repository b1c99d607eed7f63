package models

// Place identifies a location either by coordinates or by a resolvable
// place name. Coordinates win when both are present.
type Place struct {
	Name string   `json:"name,omitempty"`
	Lat  *float64 `json:"latitude,omitempty"`
	Lon  *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the place carries explicit coordinates.
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}

// OptimizeRouteRequest is the request body for POST /v1/routes/optimize.
type OptimizeRouteRequest struct {
	Origin      Place   `json:"origin"`
	Destination Place   `json:"destination"`
	Stops       []Place `json:"stops,omitempty"`

	VehicleType string `json:"vehicle_type,omitempty"`
	// Priority is one of "time", "emissions", "balanced" (default).
	Priority        string  `json:"priority,omitempty"`
	MaxAlternatives int     `json:"max_alternatives,omitempty"`
	PayloadKG       float64 `json:"payload_kg,omitempty"`
}
