package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecoroute/ecoroute/internal/api/models"
	"github.com/ecoroute/ecoroute/internal/api/response"
	"github.com/ecoroute/ecoroute/internal/geocoding"
	"github.com/ecoroute/ecoroute/internal/optimizer"
	"github.com/ecoroute/ecoroute/internal/routing"
)

// RouteHandler handles route optimization requests.
type RouteHandler struct {
	optimizer *optimizer.Service
	geocoder  *geocoding.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(opt *optimizer.Service, geocoder *geocoding.Service) *RouteHandler {
	return &RouteHandler{optimizer: opt, geocoder: geocoder}
}

// OptimizeRoutes handles POST /v1/routes/optimize.
func (h *RouteHandler) OptimizeRoutes(w http.ResponseWriter, r *http.Request) {
	var body models.OptimizeRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	origin, fieldErr := h.resolvePlace(r, body.Origin, "origin")
	if fieldErr != nil {
		response.BadRequest(w, r, fieldErr.Message, []models.FieldError{*fieldErr})
		return
	}
	destination, fieldErr := h.resolvePlace(r, body.Destination, "destination")
	if fieldErr != nil {
		response.BadRequest(w, r, fieldErr.Message, []models.FieldError{*fieldErr})
		return
	}

	stops := make([]routing.Point, 0, len(body.Stops))
	for i, stop := range body.Stops {
		point, fieldErr := h.resolvePlace(r, stop, fmt.Sprintf("stops[%d]", i))
		if fieldErr != nil {
			response.BadRequest(w, r, fieldErr.Message, []models.FieldError{*fieldErr})
			return
		}
		stops = append(stops, point)
	}

	priority, err := optimizer.ParsePriority(body.Priority)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "priority", Message: "must be one of time, emissions, balanced", Code: "invalid"},
		})
		return
	}

	result := h.optimizer.Optimize(r.Context(), optimizer.Request{
		Origin:          origin,
		Destination:     destination,
		Stops:           stops,
		VehicleType:     body.VehicleType,
		Priority:        priority,
		MaxAlternatives: body.MaxAlternatives,
		PayloadKG:       body.PayloadKG,
	})

	response.JSON(w, r, http.StatusOK, result)
}

// resolvePlace turns a place reference into coordinates, geocoding names
// when no explicit coordinates are given.
func (h *RouteHandler) resolvePlace(r *http.Request, place models.Place, field string) (routing.Point, *models.FieldError) {
	if place.HasCoordinates() {
		return routing.Point{Lat: *place.Lat, Lon: *place.Lon}, nil
	}

	if place.Name == "" {
		return routing.Point{}, &models.FieldError{
			Field:   field,
			Message: field + " requires coordinates or a name",
			Code:    "required",
		}
	}

	if h.geocoder == nil {
		return routing.Point{}, &models.FieldError{
			Field:   field,
			Message: "geocoding is not configured; provide coordinates",
			Code:    "unsupported",
		}
	}

	loc, err := h.geocoder.Resolve(r.Context(), place.Name)
	if err != nil {
		code := "invalid"
		if errors.Is(err, geocoding.ErrNotFound) {
			code = "not_found"
		}
		return routing.Point{}, &models.FieldError{
			Field:   field,
			Message: fmt.Sprintf("could not resolve %q", place.Name),
			Code:    code,
		}
	}

	return routing.Point{Lat: loc.Lat, Lon: loc.Lon}, nil
}
