package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/taxigo/internal/pkg/models"
)

// Approximate geohash cell widths in kilometers by precision, measured at
// the equator. Cells are fixed in degrees, so the east-west extent at
// latitude φ is this value times cos(φ).
var cellWidthKm = map[uint]float64{
	1: 5000, 2: 1250, 3: 156, 4: 39.1, 5: 4.89, 6: 1.22, 7: 0.153, 8: 0.0382,
}

// kmPerDegreeLat is the approximate north-south extent of one degree.
const kmPerDegreeLat = 111.32

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}

// DecodeGeohash converts a geohash string to latitude and longitude
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.Decode(hash)
}

// PrecisionForRadius picks the finest geohash precision whose cell is
// still at least as wide as the radius, so a cell plus its neighbors is
// guaranteed to cover a search circle centered at the given latitude.
// The width check uses the circle's poleward edge, where meridians are
// closest together and cells are at their narrowest. Returns 0 when no
// precision can guarantee coverage (circle at or over a pole); callers
// must then scan without a prefilter.
func PrecisionForRadius(radiusKm, latitude float64) uint {
	edge := math.Abs(latitude) + radiusKm/kmPerDegreeLat
	if edge >= 90 {
		return 0
	}
	shrink := math.Cos(edge * math.Pi / 180)

	precision := uint(0)
	for p := uint(1); p <= 8; p++ {
		if cellWidthKm[p]*shrink < radiusKm {
			break
		}
		precision = p
	}
	return precision
}

// CoveringCells returns the geohash cell of the origin plus its eight
// neighbors at a precision wide enough to cover the radius, or nil when
// no precision covers it at the origin's latitude.
func CoveringCells(origin models.Location, radiusKm float64) []string {
	precision := PrecisionForRadius(radiusKm, origin.Latitude)
	if precision == 0 {
		return nil
	}
	center := geohash.EncodeWithPrecision(origin.Latitude, origin.Longitude, precision)
	return append(geohash.Neighbors(center), center)
}
