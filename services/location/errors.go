package location

import "errors"

// ErrInvalidLocation is returned when a position fails range validation.
// Out-of-range values are rejected, never clamped.
var ErrInvalidLocation = errors.New("invalid location")
