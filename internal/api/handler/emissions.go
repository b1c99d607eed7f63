package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/ecoroute/ecoroute/internal/api/models"
	"github.com/ecoroute/ecoroute/internal/api/response"
	"github.com/ecoroute/ecoroute/internal/emissions"
	"github.com/ecoroute/ecoroute/internal/optimizer"
)

// EmissionsHandler handles standalone emissions estimation, outside the
// route optimization pipeline.
type EmissionsHandler struct {
	optimizer *optimizer.Service
	profiles  map[string]emissions.VehicleProfile
}

// NewEmissionsHandler creates a new EmissionsHandler. The profiles map
// carries the configured fleet's consumption figures and may be nil.
func NewEmissionsHandler(opt *optimizer.Service, profiles map[string]emissions.VehicleProfile) *EmissionsHandler {
	return &EmissionsHandler{optimizer: opt, profiles: profiles}
}

// EstimateEmissions handles POST /v1/emissions/estimate.
func (h *EmissionsHandler) EstimateEmissions(w http.ResponseWriter, r *http.Request) {
	var body models.EstimateEmissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if body.DistanceKM < 0 {
		response.BadRequest(w, r, "distance_km must be non-negative", []models.FieldError{
			{Field: "distance_km", Message: "must be non-negative", Code: "invalid"},
		})
		return
	}

	vehicleType := body.VehicleType
	if vehicleType == "" {
		vehicleType = optimizer.DefaultVehicleType
	}

	resp := models.EstimateEmissionsResponse{
		EmissionsKG: h.optimizer.EstimateEmissions(body.DistanceKM, vehicleType, emissions.Context{
			AvgSpeedKPH:       body.AvgSpeedKPH,
			GradientPct:       body.GradientPct,
			PayloadKG:         body.PayloadKG,
			TrafficCongestion: body.TrafficCongestion,
			Weather:           body.Weather,
		}),
		DistanceKM:  body.DistanceKM,
		VehicleType: vehicleType,
	}

	// When the fleet config knows the vehicle's actual consumption,
	// report the fuel-burn figure alongside the factor model's.
	if profile, ok := h.profiles[vehicleType]; ok {
		fuelBurn := h.optimizer.EstimateEmissionsFromProfile(body.DistanceKM, profile)
		resp.FuelBurnEmissionsKG = &fuelBurn
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// ListVehicles handles GET /v1/emissions/vehicles.
func (h *EmissionsHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	types := h.optimizer.VehicleTypes()
	sort.Strings(types)

	vehicles := make([]models.VehicleInfo, 0, len(types))
	for _, vehicleType := range types {
		factors := h.optimizer.VehicleFactors(vehicleType)
		info := models.VehicleInfo{
			Type:           vehicleType,
			BaselineGPerKM: int(factors.BaseEmissionRateGPerKM),
		}
		if profile, ok := h.profiles[vehicleType]; ok {
			info.FuelType = string(profile.FuelType)
			info.FuelBaselineGPerKM = emissions.BaselineGPerKM(profile.FuelType)
			info.FuelEfficiencyLPer100KM = profile.FuelEfficiencyLPer100KM
			info.EnergyEfficiencyKWhPer100KM = profile.EnergyEfficiencyKWhPer100KM
		}
		vehicles = append(vehicles, info)
	}

	response.JSON(w, r, http.StatusOK, models.FleetResponse{Vehicles: vehicles})
}
