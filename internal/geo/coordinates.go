package geo

import (
	"math"

	dErrors "safeher/pkg/domain-errors"
)

// ValidateCoordinates rejects latitudes outside ±90, longitudes outside ±180
// and non-finite values.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return dErrors.New(dErrors.CodeInvalidCoordinates, "coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return dErrors.New(dErrors.CodeInvalidCoordinates, "latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return dErrors.New(dErrors.CodeInvalidCoordinates, "longitude must be between -180 and 180")
	}
	return nil
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}
