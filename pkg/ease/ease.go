// Package ease provides easing curves for the tween driver.
//
// An easing curve maps normalized elapsed time in [0,1] to normalized
// progress in [0,1]. The driver requires curves that start at 0, end at 1,
// never leave the unit interval and never move backwards; [Validate] checks
// that contract so a bad curve is rejected before any animation starts.
package ease

import (
	"math"
	"sort"

	"github.com/matzehuels/stipple/pkg/errors"
)

// Func is an easing curve.
type Func func(t float64) float64

// Default is the curve used when none is configured.
const Default = "cubic"

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// QuadInOut accelerates quadratically until halfway, then decelerates.
func QuadInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t / 2
	}
	t--
	return (t*(2-t) + 1) / 2
}

// CubicIn starts slowly and accelerates.
func CubicIn(t float64) float64 { return t * t * t }

// CubicOut starts fast and decelerates.
func CubicOut(t float64) float64 {
	t--
	return t*t*t + 1
}

// CubicInOut is symmetric cubic easing, the default curve.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// SinInOut follows half a cosine period.
func SinInOut(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}

// ExpInOut is exponential easing pinned to exact endpoints.
func ExpInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

var curves = map[string]Func{
	"linear":    Linear,
	"quad":      QuadInOut,
	"cubic":     CubicInOut,
	"cubic-in":  CubicIn,
	"cubic-out": CubicOut,
	"sin":       SinInOut,
	"exp":       ExpInOut,
}

// Lookup returns the named curve.
func Lookup(name string) (Func, error) {
	if name == "" {
		name = Default
	}
	f, ok := curves[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEasing, "unknown easing %q (valid: %v)", name, Names())
	}
	return f, nil
}

// Names lists the registered curves in sorted order.
func Names() []string {
	names := make([]string, 0, len(curves))
	for n := range curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tolerance is the slack allowed when checking endpoint values and
// monotonicity of sampled curves.
const Tolerance = 1e-9

// samples is the number of intervals Validate checks.
const samples = 1024

// Validate reports whether f satisfies the easing contract: f(0)=0, f(1)=1,
// f(t) in [0,1] and non-decreasing over the unit interval. The check is done
// on a uniform sample grid.
func Validate(f Func) error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidEasing, "easing function is nil")
	}
	if v := f(0); math.Abs(v) > Tolerance {
		return errors.New(errors.ErrCodeInvalidEasing, "ease(0) = %v, want 0", v)
	}
	if v := f(1); math.Abs(v-1) > Tolerance {
		return errors.New(errors.ErrCodeInvalidEasing, "ease(1) = %v, want 1", v)
	}
	prev := 0.0
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		v := f(t)
		if math.IsNaN(v) || v < -Tolerance || v > 1+Tolerance {
			return errors.New(errors.ErrCodeInvalidEasing, "ease(%v) = %v leaves [0,1]", t, v)
		}
		if v < prev-Tolerance {
			return errors.New(errors.ErrCodeInvalidEasing, "ease is decreasing at t=%v (%v < %v)", t, v, prev)
		}
		prev = v
	}
	return nil
}

// Progress converts elapsed/duration into eased progress. Elapsed time at or
// past the duration always yields exactly 1, so a transition always
// terminates even if f(1) is a rounding error below 1.
func Progress(f Func, elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	p := elapsed / duration
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		p = 0
	}
	return math.Min(1, math.Max(0, f(p)))
}
