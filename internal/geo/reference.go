package geo

import (
	"math"
	"strconv"
	"strings"
)

// Resolver turns a routine's free-form location reference into a coordinate.
// A geocoding-backed implementation can replace CoordinateResolver without
// touching the evaluator.
type Resolver interface {
	Resolve(ref string) (Point, bool)
}

// CoordinateResolver understands only explicit "lat,lon" references.
type CoordinateResolver struct{}

func (CoordinateResolver) Resolve(ref string) (Point, bool) {
	return ResolveLocationReference(ref)
}

// ResolveLocationReference parses a reference of the exact form
// "<float>,<float>". Any other shape (place name, empty string, malformed or
// non-finite number, out-of-range value) is reported as unresolved, never as
// an error.
func ResolveLocationReference(ref string) (Point, bool) {
	parts := strings.Split(ref, ",")
	if len(parts) != 2 {
		return Point{}, false
	}
	lat, ok := parseFinite(parts[0])
	if !ok {
		return Point{}, false
	}
	lon, ok := parseFinite(parts[1])
	if !ok {
		return Point{}, false
	}
	if ValidateCoordinates(lat, lon) != nil {
		return Point{}, false
	}
	return Point{Lat: lat, Lon: lon}, true
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
