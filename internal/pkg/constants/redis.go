package constants

// Redis key formats used by the location history repository.
const (
	// KeyDriverLatest holds the latest driver position as a hash: driver id.
	KeyDriverLatest = "location:driver:%s:latest"

	// KeyDriverHistory holds recent driver positions as a list: driver id.
	KeyDriverHistory = "location:driver:%s:history"

	// KeyPassengerLatest holds the latest passenger position: passenger id.
	KeyPassengerLatest = "location:passenger:%s:latest"
)

// Hash field names for stored locations.
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldTimestamp = "timestamp"
	FieldSpeed     = "speed"
	FieldHeading   = "heading"
)
