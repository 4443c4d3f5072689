package models

// Request payloads accepted by the HTTP layer. Validation constraints are
// declared on the fields and evaluated by the shared request validator.

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=passenger driver"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LocationUpdateRequest records a position for the authenticated subject.
type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Accuracy  float64 `json:"accuracy" validate:"omitempty,min=0"`
	Heading   float64 `json:"heading" validate:"omitempty,min=0,lt=360"`
}

// NearbyDriversRequest queries drivers around a point.
type NearbyDriversRequest struct {
	Latitude   float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusKm   float64 `json:"radius_km" validate:"omitempty,gt=0,max=100"`
	MaxResults int     `json:"max_results" validate:"omitempty,gt=0,max=50"`
}

// RouteRequest calculates a route between two points.
type RouteRequest struct {
	StartLatitude  float64 `json:"start_latitude" validate:"min=-90,max=90"`
	StartLongitude float64 `json:"start_longitude" validate:"min=-180,max=180"`
	EndLatitude    float64 `json:"end_latitude" validate:"min=-90,max=90"`
	EndLongitude   float64 `json:"end_longitude" validate:"min=-180,max=180"`
}

// RideProgressRequest reports progress of a driver along a route.
type RideProgressRequest struct {
	DriverID string       `json:"driver_id" validate:"required"`
	Route    RouteRequest `json:"route" validate:"required"`
}

// GeofenceRequest registers a new geofence.
type GeofenceRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"gt=0,max=100000"`
}

// UnblockRequest clears a blocked source address.
type UnblockRequest struct {
	IPAddress string `json:"ip_address" validate:"required,ip"`
}
