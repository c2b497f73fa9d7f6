package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/property-search/internal/store"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	db store.Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil db means no database is
// configured and readiness depends on the process alone.
func NewHealthHandler(db store.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the database (when configured) is reachable, 503
// otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.db != nil {
		if err := h.db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
