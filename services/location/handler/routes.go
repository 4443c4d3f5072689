package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/services/location"
	httpHandler "github.com/piresc/taxigo/services/location/handler/http"
)

// RouteMiddleware carries the middleware chain applied to location routes.
// The rate limiter runs before authentication so rejected floods never
// reach token verification.
type RouteMiddleware struct {
	RateLimit     echo.MiddlewareFunc
	Auth          echo.MiddlewareFunc
	RequireDriver echo.MiddlewareFunc
	RequireRider  echo.MiddlewareFunc
	RequireAdmin  echo.MiddlewareFunc
}

// HTTPHandler wires the location HTTP handlers to routes
type HTTPHandler struct {
	locationHTTP *httpHandler.LocationHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(locationUC location.LocationUC) *HTTPHandler {
	return &HTTPHandler{
		locationHTTP: httpHandler.NewLocationHandler(locationUC),
	}
}

// RegisterRoutes registers all location HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo, mw RouteMiddleware) {
	g := e.Group("/v1/location", mw.RateLimit, mw.Auth)

	g.POST("/driver", h.locationHTTP.UpdateDriverLocation, mw.RequireDriver)
	g.POST("/passenger", h.locationHTTP.UpdatePassengerLocation, mw.RequireRider)
	g.GET("/drivers/:id", h.locationHTTP.GetDriverLocation, mw.RequireAdmin)

	geofences := e.Group("/v1/geofences", mw.RateLimit, mw.Auth, mw.RequireAdmin)
	geofences.POST("", h.locationHTTP.CreateGeofence)
	geofences.GET("", h.locationHTTP.ListGeofences)
}
