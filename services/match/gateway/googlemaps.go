package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/piresc/taxigo/internal/pkg/circuitbreaker"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/pkg/retry"
	"github.com/piresc/taxigo/services/match"
)

// ErrNoRoute is returned when the directions API has no route between the
// two points. It is terminal: retrying will not produce one.
var ErrNoRoute = errors.New("no route found")

// directionsAPI is the slice of the Maps client the provider uses, so
// tests can substitute the HTTP-backed client.
type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// GoogleRouteProvider fetches driving routes from the Google Maps
// Directions API. Transient failures are retried with backoff; repeated
// failures trip a circuit breaker so a dead upstream fails fast and the
// matcher falls back to straight-line estimates.
type GoogleRouteProvider struct {
	client  directionsAPI
	breaker *circuitbreaker.CircuitBreaker
	retrier *retry.Retrier
}

// NewGoogleRouteProvider creates a new GoogleRouteProvider instance.
func NewGoogleRouteProvider(apiKey string, appLogger *logger.AppLogger) (*GoogleRouteProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return newProvider(c, appLogger), nil
}

func newProvider(client directionsAPI, appLogger *logger.AppLogger) *GoogleRouteProvider {
	retryConfig := retry.Config{
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		Retryable: func(err error) bool {
			return !errors.Is(err, ErrNoRoute)
		},
	}

	return &GoogleRouteProvider{
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("google-directions"), appLogger),
		retrier: retry.New(retryConfig, appLogger),
	}
}

var _ match.RouteProvider = (*GoogleRouteProvider)(nil)

// FetchRoute requests a driving route between two points.
func (g *GoogleRouteProvider) FetchRoute(ctx context.Context, start, end models.Location) (*models.Route, error) {
	var route *models.Route

	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.retrier.Execute(ctx, func(ctx context.Context) error {
			fetched, err := g.fetchOnce(ctx, start, end)
			if err != nil {
				return err
			}
			route = fetched
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return route, nil
}

func (g *GoogleRouteProvider) fetchOnce(ctx context.Context, start, end models.Location) (*models.Route, error) {
	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", start.Latitude, start.Longitude),
		Destination: fmt.Sprintf("%f,%f", end.Latitude, end.Longitude),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w between %f,%f and %f,%f", ErrNoRoute,
			start.Latitude, start.Longitude, end.Latitude, end.Longitude)
	}

	return routeFromDirections(start, end, routes[0]), nil
}

// routeFromDirections flattens the legs of a directions result into a
// single route with step start points as waypoints.
func routeFromDirections(start, end models.Location, r maps.Route) *models.Route {
	route := &models.Route{
		Start: start,
		End:   end,
	}

	for _, leg := range r.Legs {
		route.DistanceKm += float64(leg.Distance.Meters) / 1000
		route.DurationMinutes += leg.Duration.Minutes()
		for _, step := range leg.Steps {
			route.Waypoints = append(route.Waypoints, models.Location{
				Latitude:  step.StartLocation.Lat,
				Longitude: step.StartLocation.Lng,
			})
		}
	}
	route.Waypoints = append(route.Waypoints, end)

	return route
}
