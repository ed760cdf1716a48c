// Package heading turns raw orientation sensor samples into compass headings.
package heading

import (
	"errors"
	"fmt"
	"math"

	"compass.qibla.app/internal/bearing"
)

// MagnetometerAxisOffset rotates the sensor's x axis, which points to the right edge of a
// portrait device, onto the top of the screen.
const MagnetometerAxisOffset = 90.0

// ErrDegenerateSample is returned for magnetometer samples that carry no direction
var ErrDegenerateSample = errors.New("degenerate magnetometer sample")

// MagnetometerSample is a raw magnetic field reading in micro-tesla. Only X and Y are used.
type MagnetometerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromMagnetometer calculates the device heading relative to magnetic north from a raw sample.
func FromMagnetometer(sample MagnetometerSample) (float64, error) {
	if !isFinite(sample.X) || !isFinite(sample.Y) {
		return 0, fmt.Errorf("%w: non-finite component (x=%v, y=%v)", ErrDegenerateSample, sample.X, sample.Y)
	}
	if sample.X == 0 && sample.Y == 0 {
		return 0, fmt.Errorf("%w: zero horizontal field", ErrDegenerateSample)
	}
	angle := math.Atan2(sample.Y, sample.X) * 180 / math.Pi
	return bearing.NormalizeAngle(angle + MagnetometerAxisOffset)
}

// TrueHeading corrects a magnetic heading by the local declination (east positive).
func TrueHeading(magnetic, declination float64) (float64, error) {
	if !isFinite(declination) {
		return 0, fmt.Errorf("declination: %w: %v", bearing.ErrInvalidAngle, declination)
	}
	return bearing.NormalizeAngle(magnetic + declination)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
