package handler

import (
	"context"
	"net/http"
	"time"
)

// CachePinger checks connectivity of the balance cache
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	cache CachePinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cache CachePinger) *HealthHandler {
	return &HealthHandler{
		cache: cache,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
	Uptime string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health
// Basic health check - returns 200 OK if service is running
func GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(startTime).String(),
	})
}

// GetLiveness handles GET /health/live
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "alive"})
}

// GetReadiness handles GET /health/ready
// The balance cache is a degradable dependency: an unreachable cache is
// reported but does not fail readiness.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"cache": "ok"}
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "unavailable"
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ready",
		Checks: checks,
	})
}
