package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/taxigo/internal/pkg/geo"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/location"
)

// LocationUC implements the location.LocationUC interface. Driver tracks,
// passenger positions and geofences live in memory behind one RWMutex;
// the append plus speed derivation plus geofence scan runs under the
// write lock so concurrent updates to the same driver cannot interleave.
type LocationUC struct {
	cfg       *models.Config
	repo      location.LocationRepo
	gw        location.LocationGW
	logger    *logger.AppLogger
	maxTrack  int
	maxAge    time.Duration
	precision uint

	mu         sync.RWMutex
	drivers    map[string][]models.Location
	passengers map[string]models.Location
	geofences  map[string]models.Geofence

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewLocationUC creates a new location use case
func NewLocationUC(repo location.LocationRepo, gw location.LocationGW, cfg *models.Config, appLogger *logger.AppLogger) *LocationUC {
	maxTrack := cfg.Location.MaxTrackLength
	if maxTrack <= 0 {
		maxTrack = 100
	}
	maxAge := time.Duration(cfg.Location.MaxAgeHours) * time.Hour
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	precision := cfg.Location.GeohashPrecision
	if precision == 0 {
		precision = 6
	}

	return &LocationUC{
		cfg:        cfg,
		repo:       repo,
		gw:         gw,
		logger:     appLogger,
		maxTrack:   maxTrack,
		maxAge:     maxAge,
		precision:  precision,
		drivers:    make(map[string][]models.Location),
		passengers: make(map[string]models.Location),
		geofences:  make(map[string]models.Geofence),
		stop:       make(chan struct{}),
	}
}

// UpdateDriverLocation appends a position to the driver's track, derives
// the speed from the previous entry and reports any geofences entered.
func (s *LocationUC) UpdateDriverLocation(ctx context.Context, driverID string, loc *models.Location) (*models.DriverLocationUpdate, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	if loc.Timestamp.IsZero() {
		loc.Timestamp = time.Now()
	}
	loc.Geohash = utils.EncodeLocation(*loc, s.precision)

	s.mu.Lock()
	track := s.drivers[driverID]
	if len(track) > 0 {
		loc.Speed = geo.Speed(track[len(track)-1], *loc)
	}

	if len(track) >= s.maxTrack {
		// Evict the oldest entry in place
		copy(track, track[1:])
		track = track[:len(track)-1]
	}
	s.drivers[driverID] = append(track, *loc)

	events := s.geofenceEventsLocked(driverID, *loc)
	s.mu.Unlock()

	update := &models.DriverLocationUpdate{
		DriverID:       driverID,
		Location:       *loc,
		GeofenceEvents: events,
	}

	// Mirror to Redis and publish events; the in-memory store stays
	// authoritative, so failures here are logged and swallowed.
	if err := s.repo.StoreDriverLocation(ctx, driverID, *loc); err != nil {
		s.logger.WithError(err).Warn("failed to mirror driver location")
	}
	if err := s.repo.StoreDriverHistory(ctx, driverID, *loc); err != nil {
		s.logger.WithError(err).Warn("failed to store driver location history")
	}
	if err := s.gw.PublishDriverLocation(ctx, *update); err != nil {
		s.logger.WithError(err).Warn("failed to publish driver location")
	}
	for _, event := range events {
		if err := s.gw.PublishGeofenceEvent(ctx, event); err != nil {
			s.logger.WithError(err).Warn("failed to publish geofence event")
		}
	}

	return update, nil
}

// geofenceEventsLocked compares a position against every registered
// geofence. Only enter events exist; there is no exit transition.
func (s *LocationUC) geofenceEventsLocked(driverID string, loc models.Location) []models.GeofenceEvent {
	var events []models.GeofenceEvent
	for _, fence := range s.geofences {
		distanceMeters := geo.Distance(loc, fence.Center) * 1000
		if distanceMeters <= fence.RadiusMeters {
			events = append(events, models.GeofenceEvent{
				Type:         models.GeofenceEventEnter,
				GeofenceID:   fence.ID,
				GeofenceName: fence.Name,
				DriverID:     driverID,
				Timestamp:    loc.Timestamp,
			})
		}
	}
	return events
}

// UpdatePassengerLocation overwrites the passenger's latest position.
func (s *LocationUC) UpdatePassengerLocation(ctx context.Context, passengerID string, loc *models.Location) (*models.Location, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	if loc.Timestamp.IsZero() {
		loc.Timestamp = time.Now()
	}
	loc.Geohash = utils.EncodeLocation(*loc, s.precision)

	s.mu.Lock()
	s.passengers[passengerID] = *loc
	s.mu.Unlock()

	if err := s.repo.StorePassengerLocation(ctx, passengerID, *loc); err != nil {
		s.logger.WithError(err).Warn("failed to mirror passenger location")
	}

	return loc, nil
}

// LatestDriverLocation returns the most recent position of a driver.
func (s *LocationUC) LatestDriverLocation(driverID string) (models.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	track := s.drivers[driverID]
	if len(track) == 0 {
		return models.Location{}, false
	}
	return track[len(track)-1], true
}

// DriverSnapshots returns the latest position of every tracked driver.
func (s *LocationUC) DriverSnapshots() []models.DriverSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := make([]models.DriverSnapshot, 0, len(s.drivers))
	for driverID, track := range s.drivers {
		if len(track) == 0 {
			continue
		}
		snapshots = append(snapshots, models.DriverSnapshot{
			DriverID: driverID,
			Location: track[len(track)-1],
		})
	}
	return snapshots
}

// CreateGeofence registers a circular region checked on every driver
// update. Repeated calls create distinct geofences.
func (s *LocationUC) CreateGeofence(ctx context.Context, name string, center models.Location, radiusMeters float64) (*models.Geofence, error) {
	if err := validateLocation(&center); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", location.ErrInvalidLocation)
	}

	fence := models.Geofence{
		ID:           uuid.New().String(),
		Name:         name,
		Center:       center,
		RadiusMeters: radiusMeters,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.geofences[fence.ID] = fence
	s.mu.Unlock()

	return &fence, nil
}

// Geofences returns all registered geofences.
func (s *LocationUC) Geofences() []models.Geofence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fences := make([]models.Geofence, 0, len(s.geofences))
	for _, fence := range s.geofences {
		fences = append(fences, fence)
	}
	return fences
}

// PruneStale drops track entries and passenger positions older than the
// configured maximum age and removes drivers whose track becomes empty.
// Geofences never expire.
func (s *LocationUC) PruneStale(now time.Time) {
	cutoff := now.Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	for driverID, track := range s.drivers {
		kept := 0
		for kept < len(track) && !track[kept].Timestamp.After(cutoff) {
			kept++
		}
		if kept == 0 {
			continue
		}
		if kept == len(track) {
			delete(s.drivers, driverID)
			continue
		}
		s.drivers[driverID] = track[kept:]
	}

	for passengerID, loc := range s.passengers {
		if !loc.Timestamp.After(cutoff) {
			delete(s.passengers, passengerID)
		}
	}
}

// StartJanitor launches the periodic prune loop.
func (s *LocationUC) StartJanitor() {
	interval := time.Duration(s.cfg.Location.PruneInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.PruneStale(now)
			}
		}
	}()
}

// Stop terminates the janitor and waits for it to exit. Idempotent.
func (s *LocationUC) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func validateLocation(loc *models.Location) error {
	if loc == nil {
		return fmt.Errorf("%w: location is required", location.ErrInvalidLocation)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.6f out of range", location.ErrInvalidLocation, loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.6f out of range", location.ErrInvalidLocation, loc.Longitude)
	}
	if loc.Accuracy < 0 {
		return fmt.Errorf("%w: accuracy must not be negative", location.ErrInvalidLocation)
	}
	if loc.Heading < 0 || loc.Heading >= 360 {
		return fmt.Errorf("%w: heading %.2f out of range", location.ErrInvalidLocation, loc.Heading)
	}
	if loc.Speed < 0 {
		return fmt.Errorf("%w: speed must not be negative", location.ErrInvalidLocation)
	}
	return nil
}
