package location

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// LocationGW publishes location events to the message bus.
type LocationGW interface {
	PublishGeofenceEvent(ctx context.Context, event models.GeofenceEvent) error
	PublishDriverLocation(ctx context.Context, update models.DriverLocationUpdate) error
}
