package app

import (
	"log/slog"

	"compass.qibla.app/internal/appconf"
	"compass.qibla.app/internal/metrics"
	"compass.qibla.app/internal/tracker"
)

// Application holds the dependencies for our HTTP handlers, helpers, and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// TrackerConfig returns the per-session compass settings derived from the application config.
func (app *Application) TrackerConfig() tracker.Config {
	return tracker.Config{
		Target:      app.Config.Target,
		ArrowOffset: app.Config.ArrowOffset,
		Declination: app.Config.Declination,
	}
}

// NewTracker creates a compass session tracker wired to the application logger and metrics.
func (app *Application) NewTracker() (*tracker.Tracker, error) {
	return tracker.New(app.TrackerConfig(), app.Logger, app.Metrics)
}
