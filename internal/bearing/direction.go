package bearing

import (
	"fmt"
	"math"
)

// Rest orientations of the rendered arrow asset. The display rotation adds
// the offset matching the asset so the arrow points at the target.
const (
	// ArrowRestsUp is used when the unrotated asset points to the top of the screen.
	ArrowRestsUp = 0.0
	// ArrowRestsDown is used when the unrotated asset points to the bottom of the screen.
	ArrowRestsDown = 180.0
)

// coincidentRadians is roughly 6 µm on the earth's surface.
const coincidentRadians = 1e-12

// InitialBearing calculates the great-circle initial bearing in degrees from observer to target,
// measured clockwise from true north. Coincident points return 0.
func InitialBearing(observer, target GeoCoordinate) (float64, error) {
	if err := observer.Validate(); err != nil {
		return 0, fmt.Errorf("observer: %w", err)
	}
	if err := target.Validate(); err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}

	// Any direction is correct; atan2 would otherwise return rounding noise. Comparing
	// positions rather than values catches the ±180 meridian and the poles.
	if centralAngle(observer, target) < coincidentRadians {
		return 0, nil
	}

	phi := toRadians(observer.Lat)
	phiK := toRadians(target.Lat)
	deltaLon := toRadians(target.Lon - observer.Lon)

	y := math.Sin(deltaLon)
	x := math.Cos(phi)*math.Tan(phiK) - math.Sin(phi)*math.Cos(deltaLon)

	return NormalizeAngle(toDegrees(math.Atan2(y, x)))
}

// NormalizeAngle maps any finite angle in degrees onto [0, 360).
func NormalizeAngle(angle float64) (float64, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	// math.Mod keeps the sign of the dividend, hence the second pass.
	return math.Mod(math.Mod(angle, 360)+360, 360), nil
}

// DisplayRotation returns how far the arrow asset must be rotated clockwise so it points at
// a target with the given bearing while the device faces deviceHeading.
// offset is the asset's rest orientation, ArrowRestsUp or ArrowRestsDown.
func DisplayRotation(targetBearing, deviceHeading, offset float64) (float64, error) {
	heading, err := NormalizeAngle(deviceHeading)
	if err != nil {
		return 0, fmt.Errorf("device heading: %w", err)
	}
	targetBearing, err = NormalizeAngle(targetBearing)
	if err != nil {
		return 0, fmt.Errorf("target bearing: %w", err)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return 0, fmt.Errorf("arrow offset: %w: %v", ErrInvalidAngle, offset)
	}
	return NormalizeAngle(targetBearing - heading + offset)
}
