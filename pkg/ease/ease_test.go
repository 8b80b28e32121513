package ease

import (
	"math"
	"testing"

	"github.com/matzehuels/stipple/pkg/errors"
)

func TestRegisteredCurvesSatisfyContract(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			if err := Validate(f); err != nil {
				t.Errorf("Validate(%s) = %v", name, err)
			}
		})
	}
}

func TestCubicInOut(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{0.25, 0.0625},
		{0.75, 0.9375},
	}
	for _, tt := range tests {
		if got := CubicInOut(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CubicInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		f    Func
	}{
		{"nil", nil},
		{"offset start", func(t float64) float64 { return 0.1 + 0.9*t }},
		{"short end", func(t float64) float64 { return 0.9 * t }},
		{"overshoot", func(t float64) float64 { return t + math.Sin(math.Pi*t)/2 }},
		{"decreasing", func(t float64) float64 {
			if t > 0.4 && t < 0.6 {
				return 0.3
			}
			return t
		}},
		{"nan", func(t float64) float64 {
			if t == 0.5 {
				return math.NaN()
			}
			return t
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.f)
			if !errors.Is(err, errors.ErrCodeInvalidEasing) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidEasing)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	f, err := Lookup("")
	if err != nil {
		t.Fatalf("Lookup(\"\") = %v", err)
	}
	if f(0.25) != CubicInOut(0.25) {
		t.Error("empty name should resolve to the default curve")
	}

	if _, err := Lookup("bounce"); !errors.Is(err, errors.ErrCodeInvalidEasing) {
		t.Errorf("Lookup(bounce) = %v", err)
	}
}

func TestProgress(t *testing.T) {
	short := func(t float64) float64 { return t * 0.999999999999 }

	tests := []struct {
		name              string
		f                 Func
		elapsed, duration float64
		want              float64
	}{
		{"start", CubicInOut, 0, 8000, 0},
		{"halfway", CubicInOut, 4000, 8000, 0.5},
		{"end", CubicInOut, 8000, 8000, 1},
		{"past end clamps", CubicInOut, 12000, 8000, 1},
		{"negative elapsed", CubicInOut, -10, 8000, 0},
		{"rounding curve still completes", short, 8000, 8000, 1},
		{"zero duration", Linear, 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.f, tt.elapsed, tt.duration); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}
