package appconf

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass.qibla.app/internal/bearing"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("Production"))
	assert.Equal(t, Production, EnvFlagToEnvironment("prod"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "production", Production.String())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, []string{"test"}, cfg.ApiKeys)
	assert.Empty(t, cfg.ExemptKeys)
	assert.Equal(t, bearing.Kaaba, cfg.Target)
	assert.Equal(t, bearing.ArrowRestsUp, cfg.ArrowOffset)
	assert.Equal(t, 0.0, cfg.Declination)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load([]string{
		"-port", "8080",
		"-env", "production",
		"-api-keys", "alpha, beta,,",
		"-exempt-keys", "org.qibla.ios",
		"-rate-limit", "5",
		"-arrow-offset", "180",
		"-declination", "-12.5",
		"-target-lat", "31.7761",
		"-target-lon", "35.2358",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
	assert.Equal(t, []string{"org.qibla.ios"}, cfg.ExemptKeys)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, bearing.ArrowRestsDown, cfg.ArrowOffset)
	assert.Equal(t, -12.5, cfg.Declination)
	assert.Equal(t, bearing.GeoCoordinate{Lat: 31.7761, Lon: 35.2358}, cfg.Target)
}

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Setenv("QIBLA_PORT", "9090")
	t.Setenv("QIBLA_API_KEYS", "from-env")
	t.Setenv("QIBLA_ARROW_OFFSET", "180")

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"from-env"}, cfg.ApiKeys)
	assert.Equal(t, bearing.ArrowRestsDown, cfg.ArrowOffset)

	cfg, err = Load([]string{"-port", "7070"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port, "flags override environment")
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("QIBLA_RATE_LIMIT", "lots")

	_, err := Load(nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QIBLA_RATE_LIMIT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default is valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = 0 }, "port"},
		{"no api keys", func(c *Config) { c.ApiKeys = nil }, "API key"},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, "rate limit"},
		{"target out of range", func(c *Config) { c.Target.Lat = 100 }, "target"},
		{"unsupported arrow offset", func(c *Config) { c.ArrowOffset = 90 }, "arrow offset"},
		{"declination out of range", func(c *Config) { c.Declination = 200 }, "declination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
