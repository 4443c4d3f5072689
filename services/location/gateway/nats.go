package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/taxigo/internal/pkg/constants"
	"github.com/piresc/taxigo/internal/pkg/models"
	natspkg "github.com/piresc/taxigo/internal/pkg/nats"
	"github.com/piresc/taxigo/services/location"
)

type locationGW struct {
	publisher natspkg.NATSPublisher
}

// NewLocationGW creates a new location gateway
func NewLocationGW(publisher natspkg.NATSPublisher) location.LocationGW {
	return &locationGW{
		publisher: publisher,
	}
}

// PublishGeofenceEvent publishes a geofence enter event to NATS
func (g *locationGW) PublishGeofenceEvent(ctx context.Context, event models.GeofenceEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal geofence event: %w", err)
	}

	return g.publisher.Publish(constants.SubjectGeofenceEnter, data)
}

// PublishDriverLocation publishes a driver location update to NATS
func (g *locationGW) PublishDriverLocation(ctx context.Context, update models.DriverLocationUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal driver location update: %w", err)
	}

	return g.publisher.Publish(constants.SubjectDriverLocation, data)
}
