package domain

// Allocation describes how a project's estimated hours are spread over time.
// Exactly one variant applies to a project at once, so phases and a
// recurring estimate can never coexist.
type Allocation interface {
	Kind() AllocationKind
	isAllocation()
}

// NoAllocation spreads the whole project budget over the project date range.
type NoAllocation struct{}

func (NoAllocation) Kind() AllocationKind { return AllocationNone }
func (NoAllocation) isAllocation()        {}

// PhaseAllocation splits the budget across ordered, non-overlapping phases.
type PhaseAllocation struct {
	Phases []Phase
}

func (PhaseAllocation) Kind() AllocationKind { return AllocationPhases }
func (PhaseAllocation) isAllocation()        {}

// RecurringAllocation books a fixed number of hours on every occurrence.
type RecurringAllocation struct {
	Estimate RecurringEstimate
}

func (RecurringAllocation) Kind() AllocationKind { return AllocationRecurring }
func (RecurringAllocation) isAllocation()        {}

// NewAllocation builds the allocation variant implied by the loaded rows.
// It fails when both phases and a recurring estimate are present.
func NewAllocation(phases []Phase, recurring *RecurringEstimate) (Allocation, error) {
	switch {
	case len(phases) > 0 && recurring != nil:
		return nil, newValidationError(CodeAllocationConflict,
			"project has both phases and a recurring estimate")
	case len(phases) > 0:
		return PhaseAllocation{Phases: SortPhases(phases)}, nil
	case recurring != nil:
		return RecurringAllocation{Estimate: *recurring}, nil
	default:
		return NoAllocation{}, nil
	}
}
