package bearing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	d, err := DistanceKm(GeoCoordinate{Lat: 0, Lon: 0}, GeoCoordinate{Lat: 0, Lon: 90})
	require.NoError(t, err)
	assert.InDelta(t, 10007.54, d, 0.01)

	d, err = DistanceKm(GeoCoordinate{Lat: 51.5074, Lon: -0.1278}, Kaaba)
	require.NoError(t, err)
	assert.InDelta(t, 4793.78, d, 0.01)

	d, err = DistanceKm(Kaaba, Kaaba)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, err = DistanceKm(GeoCoordinate{Lat: 0, Lon: 190}, Kaaba)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestGreatCirclePath(t *testing.T) {
	t.Run("equator quarter turn", func(t *testing.T) {
		a := GeoCoordinate{Lat: 0, Lon: 0}
		b := GeoCoordinate{Lat: 0, Lon: 90}
		points, err := GreatCirclePath(a, b, 3)
		require.NoError(t, err)
		require.Len(t, points, 4)
		assert.Equal(t, a, points[0])
		assert.Equal(t, b, points[3])
		assert.InDelta(t, 0.0, points[1].Lat, 1e-9)
		assert.InDelta(t, 30.0, points[1].Lon, 1e-9)
		assert.InDelta(t, 60.0, points[2].Lon, 1e-9)
	})

	t.Run("first leg follows the initial bearing", func(t *testing.T) {
		london := GeoCoordinate{Lat: 51.5074, Lon: -0.1278}
		points, err := GreatCirclePath(london, Kaaba, 64)
		require.NoError(t, err)
		require.Len(t, points, 65)

		initial, err := InitialBearing(london, Kaaba)
		require.NoError(t, err)
		firstLeg, err := InitialBearing(points[0], points[1])
		require.NoError(t, err)
		assert.InDelta(t, initial, firstLeg, 0.01)
	})

	t.Run("coincident endpoints", func(t *testing.T) {
		points, err := GreatCirclePath(Kaaba, Kaaba, 10)
		require.NoError(t, err)
		assert.Equal(t, []GeoCoordinate{Kaaba, Kaaba}, points)
	})

	t.Run("antipodal endpoints", func(t *testing.T) {
		a := GeoCoordinate{Lat: 0, Lon: 0}
		b := GeoCoordinate{Lat: 0, Lon: 180}
		points, err := GreatCirclePath(a, b, 10)
		require.NoError(t, err)
		assert.Equal(t, []GeoCoordinate{a, b}, points)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := GreatCirclePath(Kaaba, Kaaba, 0)
		assert.Error(t, err)

		_, err = GreatCirclePath(GeoCoordinate{Lat: -91}, Kaaba, 4)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}
