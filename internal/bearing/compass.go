package bearing

import (
	"math"

	"golang.org/x/text/language"
)

// UnknownDirection is returned for angles that cannot be placed on the compass
const UnknownDirection = "UNKNOWN"

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var localizedCompassPoints = map[language.Tag][]string{
	language.English: compassPoints,
	language.Arabic: {
		"شمال", "شمال شرقي", "شرق", "جنوب شرقي",
		"جنوب", "جنوب غربي", "غرب", "شمال غربي",
	},
}

// SupportedLanguages lists the languages compass labels are available in, English first.
var SupportedLanguages = []language.Tag{language.English, language.Arabic}

// CompassIndex returns the 8-point sector of angle, 0 for N through 7 for NW.
// Sectors are centered on multiples of 45 degrees and exact midpoints round up,
// so 22.5 is NE and 337.5 is N. Non-finite angles return -1.
func CompassIndex(angle float64) int {
	normalized, err := NormalizeAngle(angle)
	if err != nil {
		return -1
	}
	return int(math.Floor(normalized/45.0+0.5)) % 8
}

// CompassLabel converts a bearing to an 8-point compass direction
func CompassLabel(angle float64) string {
	index := CompassIndex(angle)
	if index < 0 {
		return UnknownDirection
	}
	return compassPoints[index]
}

// LocalizedCompassLabel returns the compass direction in the given language,
// falling back to English for languages without labels.
func LocalizedCompassLabel(angle float64, tag language.Tag) string {
	index := CompassIndex(angle)
	if index < 0 {
		return UnknownDirection
	}
	base, _ := tag.Base()
	for supported, labels := range localizedCompassPoints {
		if supportedBase, _ := supported.Base(); supportedBase == base {
			return labels[index]
		}
	}
	return compassPoints[index]
}

// CompassDirection calculates the compass direction from observer to target
func CompassDirection(observer, target GeoCoordinate) (string, error) {
	b, err := InitialBearing(observer, target)
	if err != nil {
		return UnknownDirection, err
	}
	return CompassLabel(b), nil
}
