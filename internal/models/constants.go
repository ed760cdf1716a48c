package models

// Common constants used across the application
const (
	// TargetID identifies the single configured target in references
	TargetID = "qibla"
)
