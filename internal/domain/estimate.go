package domain

import "time"

// DayEstimate is the single kind of time shown for a project on a day.
// It is derived on demand and never persisted.
type DayEstimate struct {
	ProjectID string
	Date      time.Time
	Source    EstimateSource
	Hours     float64
}
