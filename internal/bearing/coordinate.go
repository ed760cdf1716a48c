package bearing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is outside its valid range or not finite
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidAngle is returned when an angle is NaN or infinite
	ErrInvalidAngle = errors.New("invalid angle")
)

// Kaaba is the default fixed target
var Kaaba = GeoCoordinate{Lat: 21.422487, Lon: 39.826206}

// GeoCoordinate is a point on the earth in decimal degrees.
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the coordinate is finite and inside [-90, 90] x [-180, 180].
func (c GeoCoordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

func (c GeoCoordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
