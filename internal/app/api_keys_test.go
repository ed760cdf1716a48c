package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass.qibla.app/internal/appconf"
	"compass.qibla.app/internal/bearing"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"alpha", "beta"},
		},
	}

	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/qibla/direction.json?key=beta", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/qibla/direction.json?key=gamma", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/qibla/direction.json", nil)))
}

func TestNewTrackerUsesConfig(t *testing.T) {
	cfg := appconf.Default()
	cfg.ArrowOffset = bearing.ArrowRestsDown
	app := &Application{Config: cfg}

	tr, err := app.NewTracker()
	require.NoError(t, err)
	require.NoError(t, tr.UpdateLocation(bearing.GeoCoordinate{Lat: 51.5074, Lon: -0.1278}))

	reading, ok := tr.Current()
	require.True(t, ok)
	assert.InDelta(t, 118.99, reading.Bearing, 0.01)
	assert.InDelta(t, 298.99, reading.Rotation, 0.01)
}
