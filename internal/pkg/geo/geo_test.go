package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Office reference point used across the geo tests (Jakarta).
const (
	officeLat = -6.2088
	officeLon = 106.8456
)

func TestDistanceMetersZero(t *testing.T) {
	got := DistanceMeters(officeLat, officeLon, officeLat, officeLon)
	assert.Equal(t, 0.0, got)
}

func TestDistanceMetersSymmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"nearby points", -6.2088, 106.8456, -6.2100, 106.8470},
		{"across the equator", -6.2088, 106.8456, 1.3521, 103.8198},
		{"antimeridian", 10.0, 179.9, 10.0, -179.9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ab := DistanceMeters(c.lat1, c.lon1, c.lat2, c.lon2)
			ba := DistanceMeters(c.lat2, c.lon2, c.lat1, c.lon1)
			assert.InDelta(t, ab, ba, 1e-9)
		})
	}
}

func TestDistanceMetersKnownDistance(t *testing.T) {
	// Jakarta to Singapore is roughly 880-900 km.
	got := DistanceMeters(-6.2088, 106.8456, 1.3521, 103.8198)
	assert.Greater(t, got, 850_000.0)
	assert.Less(t, got, 950_000.0)
}

func TestDistanceMetersNaNPropagates(t *testing.T) {
	got := DistanceMeters(math.NaN(), officeLon, officeLat, officeLon)
	assert.True(t, math.IsNaN(got))
}

func TestWithinFence(t *testing.T) {
	fence := Fence{
		Latitude:        officeLat,
		Longitude:       officeLon,
		RadiusMeters:    100,
		ToleranceMeters: 10,
	}

	t.Run("at center with good accuracy", func(t *testing.T) {
		assert.True(t, WithinFence(officeLat, officeLon, 5, fence))
	})

	t.Run("500m away fails regardless of accuracy", func(t *testing.T) {
		// ~500m north of the office center.
		lat := officeLat + 500.0/111_320.0
		assert.False(t, WithinFence(lat, officeLon, 1, fence))
		assert.False(t, WithinFence(lat, officeLon, 100, fence))
	})

	t.Run("50m away with poor accuracy fails", func(t *testing.T) {
		lat := officeLat + 50.0/111_320.0
		assert.False(t, WithinFence(lat, officeLon, 15, fence))
	})

	t.Run("50m away with good accuracy passes", func(t *testing.T) {
		lat := officeLat + 50.0/111_320.0
		assert.True(t, WithinFence(lat, officeLon, 8, fence))
	})
}

func TestWithinFenceRadiusMonotonic(t *testing.T) {
	// Growing the radius never turns a valid location invalid.
	lat := officeLat + 80.0/111_320.0
	for radius := 90.0; radius <= 500; radius += 10 {
		fence := Fence{Latitude: officeLat, Longitude: officeLon, RadiusMeters: radius, ToleranceMeters: 10}
		if WithinFence(lat, officeLon, 5, fence) {
			bigger := fence
			bigger.RadiusMeters += 100
			assert.True(t, WithinFence(lat, officeLon, 5, bigger),
				"radius %.0f valid but radius %.0f invalid", radius, bigger.RadiusMeters)
		}
	}
}
