package constants

// NATS subjects published by the location service.
const (
	SubjectGeofenceEnter  = "location.geofence.enter"
	SubjectDriverLocation = "location.driver.updated"
)
