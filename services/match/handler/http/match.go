package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/match"
)

// MatchHandler handles HTTP requests for proximity matching and routing
type MatchHandler struct {
	matchUC match.MatchUC
}

// NewMatchHandler creates a new match HTTP handler
func NewMatchHandler(matchUC match.MatchUC) *MatchHandler {
	return &MatchHandler{
		matchUC: matchUC,
	}
}

// FindNearbyDrivers returns drivers around a point, closest first
func (h *MatchHandler) FindNearbyDrivers(c echo.Context) error {
	var req models.NearbyDriversRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	origin := models.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	nearby, err := h.matchUC.FindNearby(c.Request().Context(), origin, req.RadiusKm, req.MaxResults)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to find nearby drivers")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Nearby drivers retrieved", nearby)
}

// CalculateRoute returns a route with a fare estimate between two points
func (h *MatchHandler) CalculateRoute(c echo.Context) error {
	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	route, err := h.matchUC.CalculateRoute(c.Request().Context(),
		models.Location{Latitude: req.StartLatitude, Longitude: req.StartLongitude},
		models.Location{Latitude: req.EndLatitude, Longitude: req.EndLongitude},
	)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to calculate route")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Route calculated", route)
}

// TrackRideProgress reports how far along a route a driver currently is
func (h *MatchHandler) TrackRideProgress(c echo.Context) error {
	var req models.RideProgressRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	ctx := c.Request().Context()
	route, err := h.matchUC.CalculateRoute(ctx,
		models.Location{Latitude: req.Route.StartLatitude, Longitude: req.Route.StartLongitude},
		models.Location{Latitude: req.Route.EndLatitude, Longitude: req.Route.EndLongitude},
	)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to calculate route")
	}

	progress, err := h.matchUC.TrackRideProgress(ctx, req.DriverID, route)
	if err != nil {
		if errors.Is(err, match.ErrNoLocation) {
			return utils.NotFoundResponse(c, "No location tracked for driver")
		}
		return utils.InternalServerErrorResponse(c, "Failed to track ride progress")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride progress retrieved", progress)
}
