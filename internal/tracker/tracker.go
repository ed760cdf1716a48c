// Package tracker keeps the latest observer location and device heading of a compass session
// and recomputes the arrow rotation whenever either one changes.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"compass.qibla.app/internal/bearing"
	"compass.qibla.app/internal/heading"
	"compass.qibla.app/internal/logging"
)

// Recorder receives one call per engine invocation.
type Recorder interface {
	ObserveComputation(operation string, err error)
}

// Config holds the static inputs of a session
type Config struct {
	Target      bearing.GeoCoordinate
	ArrowOffset float64
	// Declination in degrees, east positive, added to magnetic headings.
	Declination float64
}

// Reading is the engine output for the latest location and heading pair.
type Reading struct {
	Observer          bearing.GeoCoordinate `json:"observer"`
	Heading           float64               `json:"heading"`
	HasHeading        bool                  `json:"hasHeading"`
	Bearing           float64               `json:"bearing"`
	Direction         string                `json:"direction"`
	Rotation          float64               `json:"rotation"`
	RelativeDirection string                `json:"relativeDirection"`
	DistanceKm        float64               `json:"distanceKm"`
	ComputedAt        time.Time             `json:"computedAt"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	config   Config
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu          sync.RWMutex
	observer    *bearing.GeoCoordinate
	bearing     float64
	distanceKm  float64
	heading     float64
	hasHeading  bool
	current     *Reading
	subscribers map[chan Reading]struct{}
}

// New creates a Tracker. logger and recorder may be nil.
func New(config Config, logger *slog.Logger, recorder Recorder) (*Tracker, error) {
	if err := config.Target.Validate(); err != nil {
		return nil, fmt.Errorf("tracker target: %w", err)
	}
	if _, err := bearing.NormalizeAngle(config.ArrowOffset); err != nil {
		return nil, fmt.Errorf("tracker arrow offset: %w", err)
	}
	if _, err := heading.TrueHeading(0, config.Declination); err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		config:      config,
		logger:      logger.With(slog.String("component", "tracker")),
		recorder:    recorder,
		now:         time.Now,
		subscribers: make(map[chan Reading]struct{}),
	}, nil
}

// UpdateLocation stores a new observer fix. Invalid fixes are rejected and the
// previous state is kept.
func (t *Tracker) UpdateLocation(observer bearing.GeoCoordinate) error {
	b, err := bearing.InitialBearing(observer, t.config.Target)
	t.observe("initial_bearing", err)
	if err != nil {
		return err
	}
	distance, err := bearing.DistanceKm(observer, t.config.Target)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.observer = &observer
	t.bearing = b
	t.distanceKm = distance
	t.recomputeLocked()
	t.mu.Unlock()
	return nil
}

// UpdateHeading stores a device heading relative to true north. Raw values outside
// [0, 360) are accepted.
func (t *Tracker) UpdateHeading(deviceHeading float64) error {
	h, err := bearing.NormalizeAngle(deviceHeading)
	t.observe("normalize_angle", err)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.heading = h
	t.hasHeading = true
	t.recomputeLocked()
	t.mu.Unlock()
	return nil
}

// UpdateMagneticHeading corrects a device heading relative to magnetic north by the
// configured declination and stores it.
func (t *Tracker) UpdateMagneticHeading(magnetic float64) error {
	trueHeading, err := heading.TrueHeading(magnetic, t.config.Declination)
	if err != nil {
		t.observe("normalize_angle", err)
		return err
	}
	return t.UpdateHeading(trueHeading)
}

// UpdateMagnetometer converts a raw magnetometer sample to a true heading and stores it.
func (t *Tracker) UpdateMagnetometer(sample heading.MagnetometerSample) error {
	magnetic, err := heading.FromMagnetometer(sample)
	t.observe("magnetometer_heading", err)
	if err != nil {
		return err
	}
	return t.UpdateMagneticHeading(magnetic)
}

// Current returns the latest reading, or false while no location is known.
func (t *Tracker) Current() (Reading, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return Reading{}, false
	}
	return *t.current, true
}

// Subscribe registers a channel that receives every new reading. Readings are dropped
// for subscribers whose buffer is full. The returned function unsubscribes and closes
// the channel.
func (t *Tracker) Subscribe(buffer int) (<-chan Reading, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Reading, buffer)

	t.mu.Lock()
	t.subscribers[ch] = struct{}{}
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subscribers, ch)
			close(ch)
			t.mu.Unlock()
		})
	}
}

// Run consumes location and magnetic heading streams until ctx is done or both streams
// are closed. Invalid updates are logged and skipped.
func (t *Tracker) Run(ctx context.Context, locations <-chan bearing.GeoCoordinate, headings <-chan float64) error {
	for locations != nil || headings != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case loc, ok := <-locations:
			if !ok {
				locations = nil
				continue
			}
			if err := t.UpdateLocation(loc); err != nil {
				logging.LogError(t.logger, "rejected location update", err,
					slog.String("operation", "update_location"))
			}
		case h, ok := <-headings:
			if !ok {
				headings = nil
				continue
			}
			if err := t.UpdateMagneticHeading(h); err != nil {
				logging.LogError(t.logger, "rejected heading update", err,
					slog.String("operation", "update_heading"))
			}
		}
	}
	return nil
}

// recomputeLocked must be called with t.mu held for writing. Publishing under the
// lock keeps subscribers in the same order as Current.
func (t *Tracker) recomputeLocked() {
	if t.observer == nil {
		return
	}
	rotation, err := bearing.DisplayRotation(t.bearing, t.heading, t.config.ArrowOffset)
	t.observe("display_rotation", err)
	if err != nil {
		// Inputs were validated on the way in.
		logging.LogError(t.logger, "display rotation failed", err)
		return
	}
	reading := Reading{
		Observer:          *t.observer,
		Heading:           t.heading,
		HasHeading:        t.hasHeading,
		Bearing:           t.bearing,
		Direction:         bearing.CompassLabel(t.bearing),
		Rotation:          rotation,
		RelativeDirection: bearing.CompassLabel(rotation),
		DistanceKm:        t.distanceKm,
		ComputedAt:        t.now(),
	}
	t.current = &reading
	t.publishLocked(reading)
}

// publishLocked never blocks, so it is safe to call with t.mu held.
func (t *Tracker) publishLocked(reading Reading) {
	for ch := range t.subscribers {
		select {
		case ch <- reading:
		default:
			t.logger.Debug("dropped reading for slow subscriber")
		}
	}
}

func (t *Tracker) observe(operation string, err error) {
	if t.recorder != nil {
		t.recorder.ObserveComputation(operation, err)
	}
}
