package models

// EstimateEmissionsRequest is the request body for
// POST /v1/emissions/estimate.
type EstimateEmissionsRequest struct {
	DistanceKM  float64 `json:"distance_km"`
	VehicleType string  `json:"vehicle_type,omitempty"`

	AvgSpeedKPH       float64 `json:"avg_speed_kph,omitempty"`
	GradientPct       float64 `json:"gradient_pct,omitempty"`
	PayloadKG         float64 `json:"payload_kg,omitempty"`
	TrafficCongestion float64 `json:"traffic_congestion,omitempty"`
	Weather           string  `json:"weather,omitempty"`
}

// EstimateEmissionsResponse is the response body for
// POST /v1/emissions/estimate. FuelBurnEmissionsKG is present only when
// a consumption profile is configured for the vehicle type.
type EstimateEmissionsResponse struct {
	EmissionsKG         float64  `json:"emissions_kg"`
	FuelBurnEmissionsKG *float64 `json:"fuel_burn_emissions_kg,omitempty"`
	DistanceKM          float64  `json:"distance_km"`
	VehicleType         string   `json:"vehicle_type"`
}

// VehicleInfo describes one vehicle model available for estimation.
// FuelBaselineGPerKM is the fleet-comparison baseline for the fuel type
// and is present only for vehicles with a configured profile.
type VehicleInfo struct {
	Type           string `json:"type"`
	FuelType       string `json:"fuel_type,omitempty"`
	BaselineGPerKM int    `json:"baseline_g_per_km,omitempty"`

	FuelBaselineGPerKM          float64 `json:"fuel_baseline_g_per_km,omitempty"`
	FuelEfficiencyLPer100KM     float64 `json:"fuel_efficiency_l_per_100km,omitempty"`
	EnergyEfficiencyKWhPer100KM float64 `json:"energy_efficiency_kwh_per_100km,omitempty"`
}

// FleetResponse is the response body for GET /v1/emissions/vehicles.
type FleetResponse struct {
	Vehicles []VehicleInfo `json:"vehicles"`
}
