package utils

import (
	"errors"
	"math"
)

// MaxPathPoints bounds the number of segments a path request may ask for
const MaxPathPoints = 512

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateAngle validates heading, declination and compass angles
func ValidateAngle(angle float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return errors.New("angle must be a finite number of degrees")
	}
	return nil
}

// ValidateDeclination validates magnetic declination values
func ValidateDeclination(declination float64) error {
	if err := ValidateAngle(declination); err != nil {
		return err
	}
	if declination < -180 || declination > 180 {
		return errors.New("declination must be between -180 and 180")
	}
	return nil
}

// ValidatePathPoints validates the number of segments of a path request
func ValidatePathPoints(points int) error {
	if points < 1 {
		return errors.New("points must be positive")
	}
	if points > MaxPathPoints {
		return errors.New("points too large (max 512)")
	}
	return nil
}

// ValidateLocationParams validates an observer location
func ValidateLocationParams(lat, lon float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	return fieldErrors
}
