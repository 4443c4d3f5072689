package location

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// LocationRepo mirrors accepted positions into external storage for trip
// history analysis. The in-memory store stays authoritative; mirror
// failures are logged and never fail the update.
type LocationRepo interface {
	StoreDriverLocation(ctx context.Context, driverID string, loc models.Location) error
	StoreDriverHistory(ctx context.Context, driverID string, loc models.Location) error
	StorePassengerLocation(ctx context.Context, passengerID string, loc models.Location) error
	GetDriverLocation(ctx context.Context, driverID string) (*models.Location, error)
}
