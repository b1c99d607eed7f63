// Package handler provides HTTP handlers for the EcoRoute API.
package handler

import (
	"net/http"
	"time"

	"github.com/ecoroute/ecoroute/internal/api/models"
	"github.com/ecoroute/ecoroute/internal/api/response"
	"github.com/ecoroute/ecoroute/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// carries no hard dependencies: providers are best-effort, so readiness
// follows liveness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ProvidersStatus handles GET /v1/ops/providers - per-provider circuit
// state from the resilience registry.
func (h *OpsHandler) ProvidersStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	status := models.ProvidersStatus{
		Status:    models.HealthStatusOK,
		Time:      now,
		Providers: []models.ProviderStatus{},
	}

	if h.registry != nil {
		for _, health := range h.registry.AllHealth() {
			providerStatus := models.ProviderStatus{
				Provider:     health.Name,
				Status:       models.HealthStatusOK,
				CircuitState: health.CircuitState.String(),
			}
			if !health.IsHealthy() {
				providerStatus.Status = models.HealthStatusDegraded
				status.Status = models.HealthStatusDegraded
			}
			if health.LastSuccessAt != nil {
				ts := models.Timestamp(*health.LastSuccessAt)
				providerStatus.LastSuccessAt = &ts
			}
			if health.LastFailureAt != nil {
				ts := models.Timestamp(*health.LastFailureAt)
				providerStatus.LastFailureAt = &ts
			}
			if health.LastError != "" {
				msg := health.LastError
				providerStatus.Message = &msg
			}
			status.Providers = append(status.Providers, providerStatus)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}
