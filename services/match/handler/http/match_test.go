package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/pkg/validation"
	"github.com/piresc/taxigo/services/match"
)

// MockMatchUC is a mock implementation of match.MatchUC
type MockMatchUC struct {
	mock.Mock
}

func (m *MockMatchUC) FindNearby(ctx context.Context, origin models.Location, radiusKm float64, maxResults int) ([]models.NearbyDriver, error) {
	args := m.Called(ctx, origin, radiusKm, maxResults)
	nearby, _ := args.Get(0).([]models.NearbyDriver)
	return nearby, args.Error(1)
}

func (m *MockMatchUC) CalculateRoute(ctx context.Context, start, end models.Location) (*models.Route, error) {
	args := m.Called(ctx, start, end)
	route, _ := args.Get(0).(*models.Route)
	return route, args.Error(1)
}

func (m *MockMatchUC) TrackRideProgress(ctx context.Context, driverID string, route *models.Route) (*models.RideProgress, error) {
	args := m.Called(ctx, driverID, route)
	progress, _ := args.Get(0).(*models.RideProgress)
	return progress, args.Error(1)
}

func newContext(t *testing.T, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validation.NewRequestValidator()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFindNearbyDrivers_Success(t *testing.T) {
	mockUC := new(MockMatchUC)
	handler := NewMatchHandler(mockUC)

	c, rec := newContext(t, "/v1/match/nearby", models.NearbyDriversRequest{
		Latitude:  -6.1754,
		Longitude: 106.8272,
		RadiusKm:  3,
	})

	mockUC.On("FindNearby", mock.Anything, models.Location{Latitude: -6.1754, Longitude: 106.8272}, 3.0, 0).
		Return([]models.NearbyDriver{{DriverID: "driver-1", DistanceKm: 0.4, ETAMinutes: 3}}, nil)

	require.NoError(t, handler.FindNearbyDrivers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestFindNearbyDrivers_ValidationFailure(t *testing.T) {
	mockUC := new(MockMatchUC)
	handler := NewMatchHandler(mockUC)

	c, rec := newContext(t, "/v1/match/nearby", models.NearbyDriversRequest{
		Latitude: 95, Longitude: 0,
	})

	require.NoError(t, handler.FindNearbyDrivers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "FindNearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateRoute_Success(t *testing.T) {
	mockUC := new(MockMatchUC)
	handler := NewMatchHandler(mockUC)

	c, rec := newContext(t, "/v1/match/route", models.RouteRequest{
		StartLatitude: -6.1754, StartLongitude: 106.8272,
		EndLatitude: -6.2254, EndLongitude: 106.8500,
	})

	mockUC.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Route{DistanceKm: 7.4, DurationMinutes: 16, EstimatedFare: 31.5}, nil)

	require.NoError(t, handler.CalculateRoute(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrackRideProgress_Success(t *testing.T) {
	mockUC := new(MockMatchUC)
	handler := NewMatchHandler(mockUC)

	c, rec := newContext(t, "/v1/match/progress", models.RideProgressRequest{
		DriverID: "driver-1",
		Route: models.RouteRequest{
			StartLatitude: -6.1754, StartLongitude: 106.8272,
			EndLatitude: -6.2254, EndLongitude: 106.8500,
		},
	})

	route := &models.Route{DistanceKm: 7.4, DurationMinutes: 16}
	mockUC.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything).Return(route, nil)
	mockUC.On("TrackRideProgress", mock.Anything, "driver-1", route).
		Return(&models.RideProgress{DriverID: "driver-1", ProgressPercent: 42}, nil)

	require.NoError(t, handler.TrackRideProgress(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestTrackRideProgress_UntrackedDriver(t *testing.T) {
	mockUC := new(MockMatchUC)
	handler := NewMatchHandler(mockUC)

	c, rec := newContext(t, "/v1/match/progress", models.RideProgressRequest{
		DriverID: "ghost",
		Route: models.RouteRequest{
			StartLatitude: -6.1754, StartLongitude: 106.8272,
			EndLatitude: -6.2254, EndLongitude: 106.8500,
		},
	})

	mockUC.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Route{DistanceKm: 7.4}, nil)
	mockUC.On("TrackRideProgress", mock.Anything, "ghost", mock.Anything).
		Return(nil, match.ErrNoLocation)

	require.NoError(t, handler.TrackRideProgress(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
