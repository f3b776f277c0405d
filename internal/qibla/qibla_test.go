package qibla

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceFromKaaba(t *testing.T) {
	assert.InDelta(t, 0, Distance(KaabaLatitude, KaabaLongitude), 0.001)
}

func TestDistanceMoscow(t *testing.T) {
	// great-circle Moscow to Makkah
	assert.InDelta(t, 3824, Distance(55.7558, 37.6173), 20)
}

func TestBearingRange(t *testing.T) {
	coords := [][2]float64{
		{55.7558, 37.6173},
		{-33.8688, 151.2093},
		{40.7128, -74.0060},
		{0, 0},
	}
	for _, c := range coords {
		b := Bearing(c[0], c[1])
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestBearingDueSouth(t *testing.T) {
	// directly north of the kaaba the qibla is due south
	assert.InDelta(t, 180, Bearing(KaabaLatitude+10, KaabaLongitude), 0.01)
}

func TestBearingMoscow(t *testing.T) {
	assert.InDelta(t, 176.4, Bearing(55.7558, 37.6173), 1.0)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "500 м", FormatDistance(0.5))
	assert.Equal(t, "42 км", FormatDistance(42.3))
	assert.Equal(t, "4 тыс. км", FormatDistance(3824))
	assert.Equal(t, "999 км", FormatDistance(999.2))
}
