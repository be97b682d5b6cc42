package contract

import "time"

// PreviewRequest describes an unsaved phase (or any hour budget over a date
// range) whose distribution the caller wants to see before committing.
type PreviewRequest struct {
	ProjectID string // optional; enables budget projection
	Start     time.Time
	End       time.Time
	Hours     float64
	Today     *time.Time
}

type PreviewDay struct {
	Date          time.Time
	Hours         float64
	CapacityHours float64
}

// BudgetProjection shows what the project budget would look like with the
// previewed hours added to its existing phases.
type BudgetProjection struct {
	EstimatedHours     float64
	AllocatedHours     float64
	ProjectedAllocated float64
	IsOverBudget       bool
	OverageHours       float64
}

type PreviewResponse struct {
	Days        []PreviewDay
	TotalHours  float64
	WorkingDays int
	Budget      *BudgetProjection
	Warnings    []string
}
