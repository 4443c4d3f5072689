package models

// DriverSnapshot is the latest known position of one driver, as handed to
// the matching service.
type DriverSnapshot struct {
	DriverID string
	Location Location
}
