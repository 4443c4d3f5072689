package match

import "errors"

var (
	// ErrNoLocation is returned when ride progress is requested for a
	// driver with no tracked position.
	ErrNoLocation = errors.New("no location tracked for driver")

	// ErrRouteProviderUnavailable is returned when no external routing
	// provider is configured. The matcher falls back to straight-line
	// estimates.
	ErrRouteProviderUnavailable = errors.New("route provider unavailable")
)
