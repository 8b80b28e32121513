// Package errors provides structured error types for stipple.
//
// Every configuration problem the layout and animation core can detect is
// reported as an [*Error] carrying a machine-readable [Code], so that the CLI
// and the HTTP preview can tell a bad configuration apart from a failed
// render without matching on message text.
//
// # Error Codes
//
//   - INVALID_*: configuration rejected before any point is touched
//   - RANGE_MISMATCH: a composite layout's range total differs from N
//   - TRANSITION_ACTIVE: a transition was started while another one runs
//   - RENDER_FAILED, CAPTURE_FAILED: collaborator failures surfaced to callers
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRangeMismatch, "consumed %d of %d points", used, n)
//	if errors.Is(err, errors.ErrCodeRangeMismatch) {
//	    // reject the layout configuration
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeInvalidPointCount   Code = "INVALID_POINT_COUNT"
	ErrCodeInvalidEasing       Code = "INVALID_EASING"
	ErrCodeInvalidLatticeIndex Code = "INVALID_LATTICE_INDEX"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeRangeMismatch       Code = "RANGE_MISMATCH"
	ErrCodeUnknownLayout       Code = "UNKNOWN_LAYOUT"

	// Runtime errors
	ErrCodeTransitionActive Code = "TRANSITION_ACTIVE"
	ErrCodeRenderFailed     Code = "RENDER_FAILED"
	ErrCodeCaptureFailed    Code = "CAPTURE_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfig reports whether err is one of the configuration codes, i.e. an
// error raised before any point was mutated.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidPointCount, ErrCodeInvalidEasing,
		ErrCodeInvalidLatticeIndex, ErrCodeInvalidFormat, ErrCodeRangeMismatch,
		ErrCodeUnknownLayout:
		return true
	}
	return false
}
