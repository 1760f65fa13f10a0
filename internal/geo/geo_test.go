package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceProperties(t *testing.T) {
	points := [][2]float64{
		{14.5995, 120.9842}, // Manila
		{10.3157, 123.8854}, // Cebu
		{7.1907, 125.4553},  // Davao
		{16.4023, 120.5960}, // Baguio
	}

	for _, p := range points {
		assert.Zero(t, Distance(p[0], p[1], p[0], p[1]))
	}

	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, Distance(a[0], a[1], b[0], b[1]), Distance(b[0], b[1], a[0], a[1]), 1e-9)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Manila to Cebu is roughly 570 km
	d := Distance(14.5995, 120.9842, 10.3157, 123.8854)
	assert.InDelta(t, 570, d, 15)
}

func TestDistanceIncreasesWithSeparation(t *testing.T) {
	near := Distance(14.5995, 120.9842, 14.6095, 120.9842)
	far := Distance(14.5995, 120.9842, 14.6995, 120.9842)
	assert.Less(t, near, far)
}

func TestBoundsAroundSoundness(t *testing.T) {
	centerLat, centerLng := 14.5995, 120.9842
	radiusKm := 10.0
	box := BoundsAround(centerLat, centerLng, radiusKm)

	// probe a grid around the centre: anything within the radius must be
	// inside the box (false positives are fine, false negatives are not)
	for dLat := -0.2; dLat <= 0.2; dLat += 0.01 {
		for dLng := -0.2; dLng <= 0.2; dLng += 0.01 {
			lat, lng := centerLat+dLat, centerLng+dLng
			if Distance(centerLat, centerLng, lat, lng) <= radiusKm {
				assert.True(t, box.Contains(lat, lng), "point (%f, %f) within radius but outside box", lat, lng)
			}
		}
	}
}

func TestBoundsAroundContainsCenter(t *testing.T) {
	box := BoundsAround(14.5995, 120.9842, 1)
	assert.True(t, box.Contains(14.5995, 120.9842))
	assert.Less(t, box.MinLat, box.MaxLat)
	assert.Less(t, box.MinLng, box.MaxLng)
}
