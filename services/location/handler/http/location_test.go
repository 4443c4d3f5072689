package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/piresc/taxigo/internal/pkg/middleware"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/pkg/validation"
	"github.com/piresc/taxigo/services/location"
)

// MockLocationUC is a mock implementation of location.LocationUC
type MockLocationUC struct {
	mock.Mock
}

func (m *MockLocationUC) UpdateDriverLocation(ctx context.Context, driverID string, loc *models.Location) (*models.DriverLocationUpdate, error) {
	args := m.Called(ctx, driverID, loc)
	update, _ := args.Get(0).(*models.DriverLocationUpdate)
	return update, args.Error(1)
}

func (m *MockLocationUC) UpdatePassengerLocation(ctx context.Context, passengerID string, loc *models.Location) (*models.Location, error) {
	args := m.Called(ctx, passengerID, loc)
	stored, _ := args.Get(0).(*models.Location)
	return stored, args.Error(1)
}

func (m *MockLocationUC) LatestDriverLocation(driverID string) (models.Location, bool) {
	args := m.Called(driverID)
	return args.Get(0).(models.Location), args.Bool(1)
}

func (m *MockLocationUC) DriverSnapshots() []models.DriverSnapshot {
	args := m.Called()
	snapshots, _ := args.Get(0).([]models.DriverSnapshot)
	return snapshots
}

func (m *MockLocationUC) CreateGeofence(ctx context.Context, name string, center models.Location, radiusMeters float64) (*models.Geofence, error) {
	args := m.Called(ctx, name, center, radiusMeters)
	fence, _ := args.Get(0).(*models.Geofence)
	return fence, args.Error(1)
}

func (m *MockLocationUC) Geofences() []models.Geofence {
	args := m.Called()
	fences, _ := args.Get(0).([]models.Geofence)
	return fences
}

func (m *MockLocationUC) PruneStale(now time.Time) {
	m.Called(now)
}

func newContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validation.NewRequestValidator()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUpdateDriverLocation_Success(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	driverID := uuid.New()
	c, rec := newContext(t, http.MethodPost, "/v1/location/driver", models.LocationUpdateRequest{
		Latitude:  -6.175392,
		Longitude: 106.827153,
		Heading:   90,
	})
	c.Set(middleware.ContextUserID, driverID)

	mockUC.On("UpdateDriverLocation", mock.Anything, driverID.String(), mock.Anything).
		Return(&models.DriverLocationUpdate{DriverID: driverID.String()}, nil)

	require.NoError(t, handler.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestUpdateDriverLocation_MissingIdentity(t *testing.T) {
	handler := NewLocationHandler(new(MockLocationUC))

	c, rec := newContext(t, http.MethodPost, "/v1/location/driver", models.LocationUpdateRequest{
		Latitude: -6.17, Longitude: 106.82,
	})

	require.NoError(t, handler.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateDriverLocation_ValidationFailure(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodPost, "/v1/location/driver", models.LocationUpdateRequest{
		Latitude: 91, Longitude: 0,
	})
	c.Set(middleware.ContextUserID, uuid.New())

	require.NoError(t, handler.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "UpdateDriverLocation", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDriverLocation_InvalidLocationFromUsecase(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodPost, "/v1/location/driver", models.LocationUpdateRequest{
		Latitude: -6.17, Longitude: 106.82,
	})
	c.Set(middleware.ContextUserID, uuid.New())

	mockUC.On("UpdateDriverLocation", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, location.ErrInvalidLocation)

	require.NoError(t, handler.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePassengerLocation_Success(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	passengerID := uuid.New()
	c, rec := newContext(t, http.MethodPost, "/v1/location/passenger", models.LocationUpdateRequest{
		Latitude: -6.2, Longitude: 106.8,
	})
	c.Set(middleware.ContextUserID, passengerID)

	mockUC.On("UpdatePassengerLocation", mock.Anything, passengerID.String(), mock.Anything).
		Return(&models.Location{Latitude: -6.2, Longitude: 106.8}, nil)

	require.NoError(t, handler.UpdatePassengerLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestGetDriverLocation(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodGet, "/v1/location/drivers/driver-1", nil)
	c.SetParamNames("id")
	c.SetParamValues("driver-1")

	mockUC.On("LatestDriverLocation", "driver-1").
		Return(models.Location{Latitude: -6.17, Longitude: 106.82}, true)

	require.NoError(t, handler.GetDriverLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDriverLocation_NotTracked(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodGet, "/v1/location/drivers/ghost", nil)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	mockUC.On("LatestDriverLocation", "ghost").Return(models.Location{}, false)

	require.NoError(t, handler.GetDriverLocation(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGeofence_Success(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodPost, "/v1/geofences", models.GeofenceRequest{
		Name:         "airport",
		Latitude:     -6.1256,
		Longitude:    106.6559,
		RadiusMeters: 1200,
	})

	mockUC.On("CreateGeofence", mock.Anything, "airport", mock.Anything, 1200.0).
		Return(&models.Geofence{ID: "fence-1", Name: "airport"}, nil)

	require.NoError(t, handler.CreateGeofence(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestCreateGeofence_ValidationFailure(t *testing.T) {
	mockUC := new(MockLocationUC)
	handler := NewLocationHandler(mockUC)

	c, rec := newContext(t, http.MethodPost, "/v1/geofences", models.GeofenceRequest{
		Name: "x", Latitude: -6.1, Longitude: 106.6, RadiusMeters: 0,
	})

	require.NoError(t, handler.CreateGeofence(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "CreateGeofence", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
