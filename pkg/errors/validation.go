package errors

import "math"

// ValidatePointCount rejects point counts that cannot form a session.
func ValidatePointCount(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidPointCount, "point count must be positive, got %d", n)
	}
	return nil
}

// ValidatePositive checks that a named numeric parameter is finite and > 0.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateFinite checks that a named numeric parameter is neither NaN nor
// infinite. Zero and negative values are accepted.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateIndex checks that idx addresses an element of a sequence of
// length n. what names the sequence in the message.
func ValidateIndex(what string, idx, n int) error {
	if idx < 0 || idx >= n {
		return New(ErrCodeInvalidLatticeIndex, "%s index %d out of range [0,%d)", what, idx, n)
	}
	return nil
}
