package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// HealthHandler serves liveness and the service banner.
type HealthHandler struct {
	startedAt   time.Time
	environment string
	docsEnabled bool
}

// NewHealthHandler creates a health handler. Uptime is measured from this call.
func NewHealthHandler(environment string, docsEnabled bool) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		environment: environment,
		docsEnabled: docsEnabled,
	}
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string  `json:"status" example:"OK"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime" example:"12.5"`
}

// BannerResponse is returned by the root endpoint.
type BannerResponse struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Endpoints   map[string]string `json:"endpoints"`
	Environment string            `json:"environment"`
}

// Health godoc
// @Summary API health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: Timestamp(),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

// Root describes the API and its entry points.
func (h *HealthHandler) Root(c echo.Context) error {
	endpoints := map[string]string{
		"users":   "/api/users",
		"tasks":   "/api/tasks",
		"reports": "/api/reports",
		"health":  "/api/health",
	}
	if h.docsEnabled {
		endpoints["documentation"] = "/api-docs/index.html"
	}
	return c.JSON(http.StatusOK, BannerResponse{
		Message:     "TaskOps API",
		Version:     Version,
		Endpoints:   endpoints,
		Environment: h.environment,
	})
}
