// Package geo provides the pure distance, bearing, ETA and fare math used
// by the location and matching services. All functions are deterministic
// and hold no state.
package geo

import (
	"math"
	"time"

	"github.com/piresc/taxigo/internal/pkg/models"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	averageCitySpeedKmh = 25.0
	etaBufferMinutes    = 2
	minimumETAMinutes   = 3

	baseFare      = 5.00
	perKmRate     = 2.50
	perMinuteRate = 0.50
)

// Distance calculates the great-circle distance between two locations in
// kilometers using the haversine formula.
func Distance(a, b models.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Bearing calculates the initial great-circle bearing from a to b in
// degrees, normalized to [0, 360).
func Bearing(a, b models.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(bearing+360.0, 360.0)
}

// Speed derives the speed in km/h implied by moving between two recorded
// positions. Returns 0 when the elapsed time is zero or negative.
func Speed(prev, cur models.Location) float64 {
	elapsedHours := cur.Timestamp.Sub(prev.Timestamp).Hours()
	if elapsedHours <= 0 {
		return 0
	}
	return Distance(prev, cur) / elapsedHours
}

// ETA estimates minutes to travel between two locations assuming average
// city traffic, with a fixed buffer and a 3 minute floor.
func ETA(from, to models.Location) int {
	distanceKm := Distance(from, to)
	etaMinutes := int(math.Ceil(distanceKm/averageCitySpeedKmh*60)) + etaBufferMinutes
	if etaMinutes < minimumETAMinutes {
		return minimumETAMinutes
	}
	return etaMinutes
}

// Fare calculates the ride fare for a distance and duration, applying the
// surge multiplier for the local hour of `at`. Rounded to 2 decimals.
func Fare(distanceKm, durationMinutes float64, at time.Time) float64 {
	total := baseFare + distanceKm*perKmRate + durationMinutes*perMinuteRate
	total *= SurgeMultiplier(at.Hour())
	return math.Round(total*100) / 100
}

// SurgeMultiplier returns the time-of-day fare scaling factor:
// 1.5 during morning and evening peaks, 1.3 late at night, else 1.0.
func SurgeMultiplier(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 1.5
	case hour >= 17 && hour <= 19:
		return 1.5
	case hour >= 23 || hour <= 3:
		return 1.3
	default:
		return 1.0
	}
}
