package location

import (
	"context"
	"time"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// LocationUC is the location store contract consumed by handlers and the
// matching service.
type LocationUC interface {
	UpdateDriverLocation(ctx context.Context, driverID string, loc *models.Location) (*models.DriverLocationUpdate, error)
	UpdatePassengerLocation(ctx context.Context, passengerID string, loc *models.Location) (*models.Location, error)
	LatestDriverLocation(driverID string) (models.Location, bool)
	DriverSnapshots() []models.DriverSnapshot
	CreateGeofence(ctx context.Context, name string, center models.Location, radiusMeters float64) (*models.Geofence, error)
	Geofences() []models.Geofence
	PruneStale(now time.Time)
}
