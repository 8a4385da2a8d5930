package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "safeher/pkg/domain-errors"
)

func TestValidateCoordinates(t *testing.T) {
	valid := []Point{{0, 0}, {90, 180}, {-90, -180}, {12.9716, 77.5946}}
	for _, p := range valid {
		assert.NoError(t, ValidateCoordinates(p.Lat, p.Lon))
	}

	invalid := []Point{
		{90.0001, 0},
		{-91, 0},
		{0, 180.5},
		{0, -181},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	}
	for _, p := range invalid {
		err := ValidateCoordinates(p.Lat, p.Lon)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidCoordinates))
	}
}

func TestBoxContains(t *testing.T) {
	box := Box{MinLat: 12, MinLon: 77, MaxLat: 13, MaxLon: 78}
	assert.True(t, box.Contains(Point{12.5, 77.5}))
	assert.True(t, box.Contains(Point{12, 78}))
	assert.False(t, box.Contains(Point{13.01, 77.5}))
	assert.False(t, box.Contains(Point{12.5, 76.99}))
}
