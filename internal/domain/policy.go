package domain

import "fmt"

// GapPolicy decides whether consecutive phases may leave unassigned days.
type GapPolicy string

const (
	GapAllow      GapPolicy = "allow"
	GapContiguous GapPolicy = "contiguous"
)

// BudgetEnforcement decides what happens when phase allocations do not
// match the project budget.
type BudgetEnforcement string

const (
	EnforceBlock BudgetEnforcement = "block"
	EnforceWarn  BudgetEnforcement = "warn"
	EnforceAllow BudgetEnforcement = "allow"
)

// MixedDayPolicy decides which source wins on a day that has both planned
// and completed events for the same project.
type MixedDayPolicy string

const (
	MixedDayCompleted MixedDayPolicy = "completed"
	MixedDayPlanned   MixedDayPolicy = "planned"
)

// Policy bundles the allocation rules that are configuration rather than
// invariant. Phase overlap is never configurable.
type Policy struct {
	Gap                   GapPolicy
	Budget                BudgetEnforcement
	RequireFullAllocation bool
	MixedDay              MixedDayPolicy
}

func DefaultPolicy() Policy {
	return Policy{
		Gap:      GapAllow,
		Budget:   EnforceBlock,
		MixedDay: MixedDayCompleted,
	}
}

func (p Policy) Validate() error {
	switch p.Gap {
	case GapAllow, GapContiguous:
	default:
		return fmt.Errorf("unknown gap policy %q", p.Gap)
	}
	switch p.Budget {
	case EnforceBlock, EnforceWarn, EnforceAllow:
	default:
		return fmt.Errorf("unknown budget enforcement %q", p.Budget)
	}
	switch p.MixedDay {
	case MixedDayCompleted, MixedDayPlanned:
	default:
		return fmt.Errorf("unknown mixed-day policy %q", p.MixedDay)
	}
	return nil
}
