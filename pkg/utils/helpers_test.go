package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(55.75, 37.62, 55.75, 37.62))

	// Moscow to Saint Petersburg is roughly 634 km
	d := Haversine(55.7558, 37.6173, 59.9343, 30.3351)
	assert.InDelta(t, 634, d, 5)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{1.2, 0, 0.9, 0.9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.value, tt.lo, tt.hi))
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.35, RoundTo(12.346, 2))
	assert.Equal(t, 15.0, RoundTo(14.96, 1))
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
}
