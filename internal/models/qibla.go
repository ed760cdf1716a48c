package models

import "compass.qibla.app/internal/bearing"

// DirectionEntry is the arrow state for one observer and heading
type DirectionEntry struct {
	TargetID           string                `json:"targetId"`
	Observer           bearing.GeoCoordinate `json:"observer"`
	Bearing            float64               `json:"bearing"`
	Heading            float64               `json:"heading"`
	Declination        float64               `json:"declination"`
	ArrowOffset        float64               `json:"arrowOffset"`
	Rotation           float64               `json:"rotation"`
	Direction          string                `json:"direction"`
	LocalizedDirection string                `json:"localizedDirection"`
	Language           string                `json:"language"`
	DistanceKm         float64               `json:"distanceKm"`
}

// PathEntry is the great-circle path from an observer to the target as an encoded polyline
type PathEntry struct {
	TargetID string `json:"targetId"`
	Length   int    `json:"length"`
	Count    int    `json:"count"`
	Points   string `json:"points"`
}

// CompassEntry is the 8-point label of an angle
type CompassEntry struct {
	Angle              float64 `json:"angle"`
	Normalized         float64 `json:"normalized"`
	Index              int     `json:"index"`
	Direction          string  `json:"direction"`
	LocalizedDirection string  `json:"localizedDirection"`
	Language           string  `json:"language"`
}
