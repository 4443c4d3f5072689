package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/taxigo/internal/pkg/middleware"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/location"
)

// LocationHandler handles HTTP requests for location operations
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
	}
}

// UpdateDriverLocation records a position for the authenticated driver
func (h *LocationHandler) UpdateDriverLocation(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated subject")
	}

	var req models.LocationUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	loc := &models.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		Heading:   req.Heading,
	}

	update, err := h.locationUC.UpdateDriverLocation(c.Request().Context(), userID.String(), loc)
	if err != nil {
		if errors.Is(err, location.ErrInvalidLocation) {
			return utils.BadRequestResponse(c, err.Error())
		}
		return utils.InternalServerErrorResponse(c, "Failed to record location")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location recorded", update)
}

// UpdatePassengerLocation records a position for the authenticated passenger
func (h *LocationHandler) UpdatePassengerLocation(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated subject")
	}

	var req models.LocationUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	loc := &models.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		Heading:   req.Heading,
	}

	stored, err := h.locationUC.UpdatePassengerLocation(c.Request().Context(), userID.String(), loc)
	if err != nil {
		if errors.Is(err, location.ErrInvalidLocation) {
			return utils.BadRequestResponse(c, err.Error())
		}
		return utils.InternalServerErrorResponse(c, "Failed to record location")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location recorded", stored)
}

// GetDriverLocation returns a driver's latest tracked position
func (h *LocationHandler) GetDriverLocation(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "driver id is required")
	}

	loc, ok := h.locationUC.LatestDriverLocation(driverID)
	if !ok {
		return utils.NotFoundResponse(c, "No location tracked for driver")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location retrieved", loc)
}

// CreateGeofence registers a new geofence
func (h *LocationHandler) CreateGeofence(c echo.Context) error {
	var req models.GeofenceRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	center := models.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	fence, err := h.locationUC.CreateGeofence(c.Request().Context(), req.Name, center, req.RadiusMeters)
	if err != nil {
		if errors.Is(err, location.ErrInvalidLocation) {
			return utils.BadRequestResponse(c, err.Error())
		}
		return utils.InternalServerErrorResponse(c, "Failed to create geofence")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Geofence created", fence)
}

// ListGeofences returns all registered geofences
func (h *LocationHandler) ListGeofences(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Geofences retrieved", h.locationUC.Geofences())
}
