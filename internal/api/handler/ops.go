// Package handler provides HTTP handlers for the driver-x API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/api/response"
)

// Pinger checks a dependency's connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version  string
	database Pinger
}

// NewOpsHandler creates a new OpsHandler. The database pinger is optional;
// without one the readiness check only reports the process as up.
func NewOpsHandler(version string, database Pinger) *OpsHandler {
	return &OpsHandler{
		version:  version,
		database: database,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.HealthResponse{
		Status:  models.HealthStatusOK,
		Version: h.version,
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check including
// dependency connectivity.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.HealthResponse{
		Status:  models.HealthStatusOK,
		Version: h.version,
	}

	if h.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		check := models.HealthCheck{Name: "postgres", Status: models.HealthStatusOK}
		if err := h.database.Ping(ctx); err != nil {
			check.Status = models.HealthStatusFail
			check.Detail = err.Error()
			health.Status = models.HealthStatusFail
		}
		health.Checks = append(health.Checks, check)
	}

	status := http.StatusOK
	if health.Status != models.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, health)
}
