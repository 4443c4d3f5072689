package models

import "time"

// Location represents a single recorded position. Latitude and longitude
// are validated before a Location is accepted into any store; out-of-range
// values are rejected, never clamped.
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Heading   float64   `json:"heading,omitempty"`
	Speed     float64   `json:"speed,omitempty"` // km/h, derived from the previous track entry
	Geohash   string    `json:"geohash,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DriverLocationUpdate is the result of recording a driver position:
// the annotated location plus any geofence events it triggered.
type DriverLocationUpdate struct {
	DriverID       string          `json:"driver_id"`
	Location       Location        `json:"location"`
	GeofenceEvents []GeofenceEvent `json:"geofence_events,omitempty"`
}

// Geofence is a named circular region checked against driver updates.
type Geofence struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Center       Location  `json:"center"`
	RadiusMeters float64   `json:"radius_meters"`
	CreatedAt    time.Time `json:"created_at"`
}

// GeofenceEvent is emitted when a driver position falls inside a geofence.
// Only enter events exist; there is no exit transition.
type GeofenceEvent struct {
	Type         string    `json:"type"`
	GeofenceID   string    `json:"geofence_id"`
	GeofenceName string    `json:"geofence_name"`
	DriverID     string    `json:"driver_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// GeofenceEventEnter is the only geofence event type emitted.
const GeofenceEventEnter = "geofence_enter"

// NearbyDriver is one entry of a proximity query result.
type NearbyDriver struct {
	DriverID   string   `json:"driver_id"`
	Location   Location `json:"location"`
	DistanceKm float64  `json:"distance_km"`
	ETAMinutes int      `json:"eta_minutes"`
}

// Route represents a calculated route between two points.
type Route struct {
	Start           Location   `json:"start"`
	End             Location   `json:"end"`
	Waypoints       []Location `json:"waypoints"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	EstimatedFare   float64    `json:"estimated_fare"`
}

// RideProgress reports how far along a route a driver currently is.
type RideProgress struct {
	DriverID            string   `json:"driver_id"`
	CurrentLocation     Location `json:"current_location"`
	ProgressPercent     float64  `json:"progress_percent"`
	RemainingKm         float64  `json:"remaining_km"`
	RemainingETAMinutes int      `json:"remaining_eta_minutes"`
	CurrentSpeedKmh     float64  `json:"current_speed_kmh"`
}
