package domain

import "time"

// ValueOr returns the first non-nil pointer's value, or the fallback.
// Update patches use it to merge optional fields onto stored values.
func ValueOr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// DateOr is ValueOr for optional dates where the zero time means unset.
func DateOr(fallback time.Time, vals ...time.Time) time.Time {
	for _, v := range vals {
		if !v.IsZero() {
			return v
		}
	}
	return fallback
}
