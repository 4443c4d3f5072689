package match

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// MatchUC is the proximity matching and routing contract.
type MatchUC interface {
	FindNearby(ctx context.Context, origin models.Location, radiusKm float64, maxResults int) ([]models.NearbyDriver, error)
	CalculateRoute(ctx context.Context, start, end models.Location) (*models.Route, error)
	TrackRideProgress(ctx context.Context, driverID string, route *models.Route) (*models.RideProgress, error)
}

// DriverLocator is the slice of the location store the matcher consumes.
type DriverLocator interface {
	DriverSnapshots() []models.DriverSnapshot
	LatestDriverLocation(driverID string) (models.Location, bool)
}
