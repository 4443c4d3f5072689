package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/services/match"
	httpHandler "github.com/piresc/taxigo/services/match/handler/http"
)

// RouteMiddleware carries the middleware chain applied to matching routes.
type RouteMiddleware struct {
	RateLimit echo.MiddlewareFunc
	Auth      echo.MiddlewareFunc
}

// HTTPHandler wires the match HTTP handlers to routes
type HTTPHandler struct {
	matchHTTP *httpHandler.MatchHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(matchUC match.MatchUC) *HTTPHandler {
	return &HTTPHandler{
		matchHTTP: httpHandler.NewMatchHandler(matchUC),
	}
}

// RegisterRoutes registers all matching HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo, mw RouteMiddleware) {
	g := e.Group("/v1/match", mw.RateLimit, mw.Auth)

	g.POST("/nearby", h.matchHTTP.FindNearbyDrivers)
	g.POST("/route", h.matchHTTP.CalculateRoute)
	g.POST("/progress", h.matchHTTP.TrackRideProgress)
}
