package errors

import (
	"math"
	"testing"
)

func TestValidatePointCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"one", 1, false},
		{"default", 64000, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePointCount(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePointCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPointCount) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPointCount)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"positive", 2.8, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("divisor", tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("offset", -300); err != nil {
		t.Errorf("negative finite value rejected: %v", err)
	}
	if err := ValidateFinite("offset", math.NaN()); err == nil {
		t.Error("NaN accepted")
	}
}

func TestValidateIndex(t *testing.T) {
	if err := ValidateIndex("lattice", 152, 153); err != nil {
		t.Errorf("last index rejected: %v", err)
	}
	for _, idx := range []int{-1, 153} {
		err := ValidateIndex("lattice", idx, 153)
		if !Is(err, ErrCodeInvalidLatticeIndex) {
			t.Errorf("ValidateIndex(%d) = %v, want %v", idx, err, ErrCodeInvalidLatticeIndex)
		}
	}
}
