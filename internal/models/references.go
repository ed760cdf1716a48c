package models

import "compass.qibla.app/internal/bearing"

// TargetReference describes the fixed point the compass points at
type TargetReference struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ReferencesModel References model for related data
type ReferencesModel struct {
	Targets []TargetReference `json:"targets"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Targets: []TargetReference{},
	}
}

// NewTargetReferences creates references holding the configured target
func NewTargetReferences(target bearing.GeoCoordinate) ReferencesModel {
	name := "Custom target"
	if target == bearing.Kaaba {
		name = "Kaaba, Mecca"
	}
	return ReferencesModel{
		Targets: []TargetReference{{
			ID:   TargetID,
			Name: name,
			Lat:  target.Lat,
			Lon:  target.Lon,
		}},
	}
}
