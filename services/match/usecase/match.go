package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/piresc/taxigo/internal/pkg/geo"
	"github.com/piresc/taxigo/internal/pkg/logger"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/internal/utils"
	"github.com/piresc/taxigo/services/match"
)

// MatchUC implements proximity matching over the location store. Candidate
// drivers are prefiltered by geohash cell before the exact distance check
// so a full scan only touches drivers near the origin.
type MatchUC struct {
	locator        match.DriverLocator
	routes         match.RouteProvider
	logger         *logger.AppLogger
	defaultRadius  float64
	defaultResults int
	storePrecision uint
	routeTimeout   time.Duration
}

// NewMatchUC creates a new match use case
func NewMatchUC(locator match.DriverLocator, routes match.RouteProvider, cfg *models.Config, appLogger *logger.AppLogger) *MatchUC {
	defaultRadius := cfg.Match.SearchRadiusKm
	if defaultRadius <= 0 {
		defaultRadius = 5
	}
	defaultResults := cfg.Match.MaxResults
	if defaultResults <= 0 {
		defaultResults = 10
	}
	storePrecision := cfg.Location.GeohashPrecision
	if storePrecision == 0 {
		storePrecision = 6
	}
	routeTimeout := time.Duration(cfg.Routing.Timeout) * time.Second
	if routeTimeout <= 0 {
		routeTimeout = 5 * time.Second
	}

	return &MatchUC{
		locator:        locator,
		routes:         routes,
		logger:         appLogger,
		defaultRadius:  defaultRadius,
		defaultResults: defaultResults,
		storePrecision: storePrecision,
		routeTimeout:   routeTimeout,
	}
}

// FindNearby returns drivers within radiusKm of the origin, closest first.
// Equidistant drivers are ordered by ascending driver id so results are
// deterministic.
func (uc *MatchUC) FindNearby(ctx context.Context, origin models.Location, radiusKm float64, maxResults int) ([]models.NearbyDriver, error) {
	if radiusKm <= 0 {
		radiusKm = uc.defaultRadius
	}
	if maxResults <= 0 {
		maxResults = uc.defaultResults
	}

	prefixes := uc.cellPrefixes(origin, radiusKm)

	var nearby []models.NearbyDriver
	for _, snapshot := range uc.locator.DriverSnapshots() {
		if !matchesAnyPrefix(snapshot.Location.Geohash, prefixes) {
			continue
		}
		distance := geo.Distance(origin, snapshot.Location)
		if distance > radiusKm {
			continue
		}
		nearby = append(nearby, models.NearbyDriver{
			DriverID:   snapshot.DriverID,
			Location:   snapshot.Location,
			DistanceKm: distance,
			ETAMinutes: geo.ETA(snapshot.Location, origin),
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKm != nearby[j].DistanceKm {
			return nearby[i].DistanceKm < nearby[j].DistanceKm
		}
		return nearby[i].DriverID < nearby[j].DriverID
	})

	if len(nearby) > maxResults {
		nearby = nearby[:maxResults]
	}
	return nearby, nil
}

// cellPrefixes computes the geohash prefixes covering the search circle,
// capped at the precision locations are stored with. Returns nil when no
// precision covers the circle at the origin's latitude.
func (uc *MatchUC) cellPrefixes(origin models.Location, radiusKm float64) []string {
	cells := utils.CoveringCells(origin, radiusKm)

	seen := make(map[string]struct{}, len(cells))
	prefixes := cells[:0]
	for _, cell := range cells {
		if uint(len(cell)) > uc.storePrecision {
			cell = cell[:uc.storePrecision]
		}
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		prefixes = append(prefixes, cell)
	}
	return prefixes
}

func matchesAnyPrefix(hash string, prefixes []string) bool {
	// An empty covering means the prefilter cannot bound the circle, and
	// snapshots without a geohash cannot be prefiltered; both fall through
	// to the exact distance check.
	if len(prefixes) == 0 || hash == "" {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

// CalculateRoute asks the external provider for a route and falls back to
// a deterministic straight-line estimate when the provider is unavailable.
// The fare estimate uses the current time's surge multiplier.
func (uc *MatchUC) CalculateRoute(ctx context.Context, start, end models.Location) (*models.Route, error) {
	providerCtx, cancel := context.WithTimeout(ctx, uc.routeTimeout)
	defer cancel()

	route, err := uc.routes.FetchRoute(providerCtx, start, end)
	if err != nil {
		uc.logger.WithError(err).Warn("route provider unavailable, using straight-line estimate")
		route = fallbackRoute(start, end)
	}

	route.EstimatedFare = geo.Fare(route.DistanceKm, route.DurationMinutes, time.Now())
	return route, nil
}

// fallbackRoute builds a straight-line route: haversine distance and a
// duration of two minutes per kilometer.
func fallbackRoute(start, end models.Location) *models.Route {
	distance := geo.Distance(start, end)
	return &models.Route{
		Start:           start,
		End:             end,
		Waypoints:       []models.Location{start, end},
		DistanceKm:      distance,
		DurationMinutes: 2 * distance,
	}
}

// TrackRideProgress reports how far along a route a driver currently is.
// Progress is clamped to [0, 100] so drivers past the endpoint or still
// behind the start never report out-of-range values.
func (uc *MatchUC) TrackRideProgress(ctx context.Context, driverID string, route *models.Route) (*models.RideProgress, error) {
	current, ok := uc.locator.LatestDriverLocation(driverID)
	if !ok {
		return nil, match.ErrNoLocation
	}

	remaining := geo.Distance(current, route.End)

	progress := 0.0
	if route.DistanceKm > 0 {
		progress = (route.DistanceKm - remaining) / route.DistanceKm * 100
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return &models.RideProgress{
		DriverID:            driverID,
		CurrentLocation:     current,
		ProgressPercent:     progress,
		RemainingKm:         remaining,
		RemainingETAMinutes: geo.ETA(current, route.End),
		CurrentSpeedKmh:     current.Speed,
	}, nil
}
