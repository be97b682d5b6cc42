package domain

import "errors"

type ValidationCode string

const (
	CodeInvalidDateRange   ValidationCode = "INVALID_DATE_RANGE"
	CodeNegativeHours      ValidationCode = "NEGATIVE_HOURS"
	CodePhaseOverlap       ValidationCode = "PHASE_OVERLAP"
	CodePhaseGap           ValidationCode = "PHASE_GAP"
	CodeAllocationConflict ValidationCode = "ALLOCATION_CONFLICT"
	CodeOverBudget         ValidationCode = "OVER_BUDGET"
	CodeUnderBudget        ValidationCode = "UNDER_BUDGET"
	CodeInvalidSchedule    ValidationCode = "INVALID_SCHEDULE"
	CodeInvalidEvent       ValidationCode = "INVALID_EVENT"
	CodeInvalidRecurrence  ValidationCode = "INVALID_RECURRENCE"
	CodeRangeInPast        ValidationCode = "RANGE_IN_PAST"
	CodeRequired           ValidationCode = "REQUIRED"
)

// ValidationError is returned when a mutation would break a domain invariant.
// EntityID is empty when the violation is not tied to a single entity.
type ValidationError struct {
	Code     ValidationCode
	Message  string
	EntityID string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newValidationError(code ValidationCode, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError,
// and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasCode reports whether err is a ValidationError with the given code.
func HasCode(err error, code ValidationCode) bool {
	ve, ok := IsValidation(err)
	return ok && ve.Code == code
}
