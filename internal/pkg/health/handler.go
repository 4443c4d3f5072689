package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Status is the health endpoint payload.
type Status struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler serves liveness checks.
type Handler struct {
	service string
	version string
}

// NewHandler creates a health handler for the named service.
func NewHandler(service, version string) *Handler {
	return &Handler{service: service, version: version}
}

// RegisterRoutes mounts the health endpoint.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health reports the service as up.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{
		Status:    "ok",
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now(),
	})
}
