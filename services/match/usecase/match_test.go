package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/piresc/taxigo/internal/pkg/geo"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/match"
)

// MockDriverLocator is a mock implementation of match.DriverLocator
type MockDriverLocator struct {
	mock.Mock
}

func (m *MockDriverLocator) DriverSnapshots() []models.DriverSnapshot {
	args := m.Called()
	snapshots, _ := args.Get(0).([]models.DriverSnapshot)
	return snapshots
}

func (m *MockDriverLocator) LatestDriverLocation(driverID string) (models.Location, bool) {
	args := m.Called(driverID)
	return args.Get(0).(models.Location), args.Bool(1)
}

// MockRouteProvider is a mock implementation of match.RouteProvider
type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) FetchRoute(ctx context.Context, start, end models.Location) (*models.Route, error) {
	args := m.Called(ctx, start, end)
	route, _ := args.Get(0).(*models.Route)
	return route, args.Error(1)
}

func matchConfig() *models.Config {
	return &models.Config{
		Location: models.LocationConfig{GeohashPrecision: 6},
		Match:    models.MatchConfig{SearchRadiusKm: 5, MaxResults: 10},
		Routing:  models.RoutingConfig{Timeout: 1},
	}
}

func newTestMatchUC(t *testing.T) (*MatchUC, *MockDriverLocator, *MockRouteProvider) {
	t.Helper()

	appLogger, err := logger.NewAppLogger(models.LoggerConfig{Level: "error"})
	require.NoError(t, err)
	t.Cleanup(func() { appLogger.Close() })

	locator := new(MockDriverLocator)
	routes := new(MockRouteProvider)
	return NewMatchUC(locator, routes, matchConfig(), appLogger), locator, routes
}

func snapshot(driverID string, lat, lng float64) models.DriverSnapshot {
	loc := models.Location{Latitude: lat, Longitude: lng, Timestamp: time.Now()}
	loc.Geohash = utils.EncodeLocation(loc, 6)
	return models.DriverSnapshot{DriverID: driverID, Location: loc}
}

func TestFindNearby_OrdersByDistance(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	origin := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{
		snapshot("driver-far", -6.2054, 106.8272),  // ~3.3 km
		snapshot("driver-near", -6.1764, 106.8272), // ~0.1 km
		snapshot("driver-mid", -6.1854, 106.8272),  // ~1.1 km
	})

	nearby, err := uc.FindNearby(context.Background(), origin, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 3)

	assert.Equal(t, "driver-near", nearby[0].DriverID)
	assert.Equal(t, "driver-mid", nearby[1].DriverID)
	assert.Equal(t, "driver-far", nearby[2].DriverID)
	for _, d := range nearby {
		assert.LessOrEqual(t, d.DistanceKm, 5.0)
		assert.GreaterOrEqual(t, d.ETAMinutes, 3, "ETA floor")
	}
}

func TestFindNearby_ExcludesDriversOutsideRadius(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	origin := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{
		snapshot("driver-inside", -6.1764, 106.8272),
		snapshot("driver-outside", -6.3554, 106.8272), // ~20 km away
	})

	nearby, err := uc.FindNearby(context.Background(), origin, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "driver-inside", nearby[0].DriverID)
}

func TestFindNearby_EquidistantTieBrokenByDriverID(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	origin := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	// Same position, so identical distance
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{
		snapshot("driver-b", -6.1764, 106.8272),
		snapshot("driver-a", -6.1764, 106.8272),
	})

	nearby, err := uc.FindNearby(context.Background(), origin, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "driver-a", nearby[0].DriverID)
	assert.Equal(t, "driver-b", nearby[1].DriverID)
}

func TestFindNearby_HighLatitude(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	// Near the pole meridians converge, so a driver 24 degrees of
	// longitude away is still only a few kilometers out. No geohash
	// covering can bound the circle there; the scan must be unfiltered
	// rather than dropping an in-radius driver whose hash falls outside
	// the origin's cell block.
	origin := models.Location{Latitude: 89.9, Longitude: 0}
	driver := snapshot("driver-polar", 89.9, 24)
	require.Less(t, geo.Distance(origin, driver.Location), 5.0)

	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{driver})

	nearby, err := uc.FindNearby(context.Background(), origin, 5, 10)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "driver-polar", nearby[0].DriverID)
}

func TestFindNearby_TruncatesToMaxResults(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	origin := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{
		snapshot("driver-1", -6.1764, 106.8272),
		snapshot("driver-2", -6.1774, 106.8272),
		snapshot("driver-3", -6.1784, 106.8272),
	})

	nearby, err := uc.FindNearby(context.Background(), origin, 5, 2)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "driver-1", nearby[0].DriverID)
}

func TestFindNearby_DefaultsApplied(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	origin := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{
		snapshot("driver-1", -6.1764, 106.8272),
	})

	nearby, err := uc.FindNearby(context.Background(), origin, 0, 0)
	require.NoError(t, err)
	assert.Len(t, nearby, 1)
}

func TestFindNearby_EmptyStore(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)
	locator.On("DriverSnapshots").Return([]models.DriverSnapshot{})

	nearby, err := uc.FindNearby(context.Background(), models.Location{}, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, nearby)
}

func TestCalculateRoute_UsesProvider(t *testing.T) {
	uc, _, routes := newTestMatchUC(t)

	start := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	end := models.Location{Latitude: -6.2254, Longitude: 106.8272}

	provided := &models.Route{
		Start:           start,
		End:             end,
		Waypoints:       []models.Location{start, {Latitude: -6.2, Longitude: 106.83}, end},
		DistanceKm:      7.4,
		DurationMinutes: 21,
	}
	routes.On("FetchRoute", mock.Anything, start, end).Return(provided, nil)

	route, err := uc.CalculateRoute(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 7.4, route.DistanceKm)
	assert.Len(t, route.Waypoints, 3)
	assert.Greater(t, route.EstimatedFare, 0.0)
	routes.AssertExpectations(t)
}

func TestCalculateRoute_FallbackIsDeterministic(t *testing.T) {
	uc, _, routes := newTestMatchUC(t)
	routes.On("FetchRoute", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("provider down"))

	start := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	end := models.Location{Latitude: -6.2254, Longitude: 106.8272}

	first, err := uc.CalculateRoute(context.Background(), start, end)
	require.NoError(t, err)
	second, err := uc.CalculateRoute(context.Background(), start, end)
	require.NoError(t, err)

	wantDistance := geo.Distance(start, end)
	assert.InDelta(t, wantDistance, first.DistanceKm, 1e-9)
	assert.InDelta(t, 2*wantDistance, first.DurationMinutes, 1e-9)
	assert.Equal(t, []models.Location{start, end}, first.Waypoints)

	assert.Equal(t, first.DistanceKm, second.DistanceKm)
	assert.Equal(t, first.DurationMinutes, second.DurationMinutes)
	assert.Equal(t, first.Waypoints, second.Waypoints)
}

func TestTrackRideProgress(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	start := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	end := models.Location{Latitude: -6.2654, Longitude: 106.8272} // ~10 km
	route := fallbackRoute(start, end)

	midpoint := models.Location{Latitude: -6.2204, Longitude: 106.8272, Speed: 36}
	locator.On("LatestDriverLocation", "driver-1").Return(midpoint, true)

	progress, err := uc.TrackRideProgress(context.Background(), "driver-1", route)
	require.NoError(t, err)
	assert.InDelta(t, 50, progress.ProgressPercent, 1)
	assert.InDelta(t, route.DistanceKm/2, progress.RemainingKm, 0.1)
	assert.Equal(t, 36.0, progress.CurrentSpeedKmh)
	assert.GreaterOrEqual(t, progress.RemainingETAMinutes, 3)
}

func TestTrackRideProgress_ClampedToRange(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)

	start := models.Location{Latitude: -6.1754, Longitude: 106.8272}
	end := models.Location{Latitude: -6.1854, Longitude: 106.8272}
	route := fallbackRoute(start, end)

	// Far behind the start: raw progress would be negative
	behind := models.Location{Latitude: -6.1254, Longitude: 106.8272}
	locator.On("LatestDriverLocation", "driver-behind").Return(behind, true)

	progress, err := uc.TrackRideProgress(context.Background(), "driver-behind", route)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.ProgressPercent)

	// At the endpoint exactly
	locator.On("LatestDriverLocation", "driver-done").Return(end, true)
	progress, err = uc.TrackRideProgress(context.Background(), "driver-done", route)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress.ProgressPercent)
}

func TestTrackRideProgress_UntrackedDriver(t *testing.T) {
	uc, locator, _ := newTestMatchUC(t)
	locator.On("LatestDriverLocation", "ghost").Return(models.Location{}, false)

	_, err := uc.TrackRideProgress(context.Background(), "ghost", &models.Route{DistanceKm: 5})
	assert.ErrorIs(t, err, match.ErrNoLocation)
}
