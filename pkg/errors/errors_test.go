package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRangeMismatch, "consumed %d of %d points", 63000, 64000)

	if err.Code != ErrCodeRangeMismatch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRangeMismatch)
	}

	if err.Message != "consumed 63000 of 64000 points" {
		t.Errorf("Message = %v, want %v", err.Message, "consumed 63000 of 64000 points")
	}

	expected := "RANGE_MISMATCH: consumed 63000 of 64000 points"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeCaptureFailed, cause, "write frame")

	if err.Code != ErrCodeCaptureFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCaptureFailed)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got := err.Error(); got != "CAPTURE_FAILED: write frame: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidEasing, "x"), ErrCodeInvalidEasing, true},
		{"different code", New(ErrCodeInvalidEasing, "x"), ErrCodeRangeMismatch, false},
		{"wrapped by fmt", fmt.Errorf("layout: %w", New(ErrCodeRangeMismatch, "x")), ErrCodeRangeMismatch, true},
		{"plain error", errors.New("x"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("build: %w", New(ErrCodeUnknownLayout, "unknown layout %q", "hexagon"))
	if got := GetCode(err); got != ErrCodeUnknownLayout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnknownLayout)
	}
	if got := UserMessage(err); got != `unknown layout "hexagon"` {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("boom")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsConfig(t *testing.T) {
	if !IsConfig(New(ErrCodeRangeMismatch, "x")) {
		t.Error("range mismatch should be a configuration error")
	}
	if !IsConfig(New(ErrCodeInvalidPointCount, "x")) {
		t.Error("point count should be a configuration error")
	}
	if IsConfig(New(ErrCodeRenderFailed, "x")) {
		t.Error("render failure is not a configuration error")
	}
	if IsConfig(errors.New("x")) {
		t.Error("plain errors are not configuration errors")
	}
}
