package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/hapkiduki/dimweight/internal/application/dto"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
	StatusUnhealthy = "unhealthy"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	carriers  repository.CarrierRepository
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler.
// Uptime is measured from the moment it is created.
func NewHealthHandler(carriers repository.CarrierRepository, version string) *HealthHandler {
	return &HealthHandler{
		carriers:  carriers,
		version:   version,
		startTime: time.Now(),
	}
}

// Health handles GET /health. The process is alive if it can answer.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.HealthResponse{
		Status:  StatusHealthy,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready handles GET /ready. The service is ready once the carrier catalog
// can be read and is not empty.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	check := dto.HealthCheckResult{Status: StatusHealthy}
	status, code := StatusReady, http.StatusOK

	carriers, err := h.carriers.List(r.Context())
	switch {
	case err != nil:
		check = dto.HealthCheckResult{Status: StatusUnhealthy, Message: err.Error()}
		status, code = StatusNotReady, http.StatusServiceUnavailable
	case len(carriers) == 0:
		check = dto.HealthCheckResult{Status: StatusUnhealthy, Message: "carrier catalog is empty"}
		status, code = StatusNotReady, http.StatusServiceUnavailable
	}

	render.Status(r, code)
	render.JSON(w, r, dto.HealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Checks:  map[string]dto.HealthCheckResult{"carriers": check},
	})
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, dto.NewErrorResponse[any](dto.CodeNotFound, "The requested resource was not found"))
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, dto.NewErrorResponse[any]("METHOD_NOT_ALLOWED", "The requested method is not allowed for this resource"))
}
