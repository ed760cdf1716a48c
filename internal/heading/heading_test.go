package heading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass.qibla.app/internal/bearing"
)

func TestFromMagnetometer(t *testing.T) {
	tests := []struct {
		name     string
		sample   MagnetometerSample
		expected float64
	}{
		{"field along +x", MagnetometerSample{X: 1, Y: 0}, 90},
		{"field along +y", MagnetometerSample{X: 0, Y: 1}, 180},
		{"field along -x", MagnetometerSample{X: -1, Y: 0}, 270},
		{"field along -y", MagnetometerSample{X: 0, Y: -1}, 0},
		{"diagonal ignores magnitude and z", MagnetometerSample{X: 20, Y: 20, Z: -40}, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := FromMagnetometer(tt.sample)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, h, 1e-9)
		})
	}
}

func TestFromMagnetometerRejectsDegenerateSamples(t *testing.T) {
	for _, s := range []MagnetometerSample{
		{},
		{X: 0, Y: 0, Z: 50},
		{X: math.NaN(), Y: 1},
		{X: 1, Y: math.Inf(1)},
	} {
		_, err := FromMagnetometer(s)
		assert.ErrorIs(t, err, ErrDegenerateSample)
	}
}

func TestTrueHeading(t *testing.T) {
	h, err := TrueHeading(350, 15)
	require.NoError(t, err)
	assert.InDelta(t, 5, h, 1e-9)

	h, err = TrueHeading(10, -12.5)
	require.NoError(t, err)
	assert.InDelta(t, 357.5, h, 1e-9)

	_, err = TrueHeading(10, math.NaN())
	assert.ErrorIs(t, err, bearing.ErrInvalidAngle)

	_, err = TrueHeading(math.Inf(1), 0)
	assert.ErrorIs(t, err, bearing.ErrInvalidAngle)
}
