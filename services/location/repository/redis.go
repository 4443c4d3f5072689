package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/piresc/taxigo/internal/pkg/constants"
	"github.com/piresc/taxigo/internal/pkg/database"
	"github.com/piresc/taxigo/internal/pkg/models"
	"github.com/piresc/taxigo/services/location"
)

// LocationRepo mirrors accepted positions into Redis for trip history
// analysis. Latest positions are hashes, the per-driver history is a
// capped list of JSON entries with a TTL.
type LocationRepo struct {
	redis      *database.RedisClient
	historyCap int64
	historyTTL time.Duration
}

// NewLocationRepo creates a new Redis-backed location repository
func NewLocationRepo(redisClient *database.RedisClient, cfg *models.Config) location.LocationRepo {
	historyCap := int64(cfg.Location.MaxTrackLength)
	if historyCap <= 0 {
		historyCap = 100
	}
	historyTTL := time.Duration(cfg.Location.HistoryTTLHours) * time.Hour
	if historyTTL <= 0 {
		historyTTL = 24 * time.Hour
	}

	return &LocationRepo{
		redis:      redisClient,
		historyCap: historyCap,
		historyTTL: historyTTL,
	}
}

// StoreDriverLocation stores the latest driver position as a hash.
func (r *LocationRepo) StoreDriverLocation(ctx context.Context, driverID string, loc models.Location) error {
	key := fmt.Sprintf(constants.KeyDriverLatest, driverID)
	if err := r.redis.HMSet(ctx, key, locationFields(loc)); err != nil {
		return fmt.Errorf("failed to store driver location: %w", err)
	}
	return r.redis.Expire(ctx, key, r.historyTTL)
}

// StoreDriverHistory prepends the position to the driver's history list,
// trims it to the configured cap and refreshes the TTL.
func (r *LocationRepo) StoreDriverHistory(ctx context.Context, driverID string, loc models.Location) error {
	key := fmt.Sprintf(constants.KeyDriverHistory, driverID)

	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	if err := r.redis.LPush(ctx, key, payload); err != nil {
		return fmt.Errorf("failed to store driver history: %w", err)
	}
	if err := r.redis.LTrim(ctx, key, 0, r.historyCap-1); err != nil {
		return fmt.Errorf("failed to trim driver history: %w", err)
	}
	return r.redis.Expire(ctx, key, r.historyTTL)
}

// StorePassengerLocation stores the latest passenger position as a hash.
func (r *LocationRepo) StorePassengerLocation(ctx context.Context, passengerID string, loc models.Location) error {
	key := fmt.Sprintf(constants.KeyPassengerLatest, passengerID)
	if err := r.redis.HMSet(ctx, key, locationFields(loc)); err != nil {
		return fmt.Errorf("failed to store passenger location: %w", err)
	}
	return r.redis.Expire(ctx, key, r.historyTTL)
}

// GetDriverLocation reads a driver's latest mirrored position.
func (r *LocationRepo) GetDriverLocation(ctx context.Context, driverID string) (*models.Location, error) {
	key := fmt.Sprintf(constants.KeyDriverLatest, driverID)
	fields, err := r.redis.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver location: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no location found for driver %s", driverID)
	}
	return locationFromFields(fields)
}

func locationFields(loc models.Location) map[string]interface{} {
	return map[string]interface{}{
		constants.FieldLatitude:  loc.Latitude,
		constants.FieldLongitude: loc.Longitude,
		constants.FieldSpeed:     loc.Speed,
		constants.FieldHeading:   loc.Heading,
		constants.FieldTimestamp: loc.Timestamp.Format(time.RFC3339Nano),
	}
}

func locationFromFields(fields map[string]string) (*models.Location, error) {
	lat, err := strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in store: %w", err)
	}
	lng, err := strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in store: %w", err)
	}

	loc := &models.Location{Latitude: lat, Longitude: lng}
	if raw, ok := fields[constants.FieldSpeed]; ok {
		loc.Speed, _ = strconv.ParseFloat(raw, 64)
	}
	if raw, ok := fields[constants.FieldHeading]; ok {
		loc.Heading, _ = strconv.ParseFloat(raw, 64)
	}
	if raw, ok := fields[constants.FieldTimestamp]; ok {
		loc.Timestamp, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return loc, nil
}
