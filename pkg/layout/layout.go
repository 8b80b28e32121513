package layout

import (
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// Generator assigns a destination to every point of a set.
//
// Apply must either return an error without touching the set, or set the
// position of every index in [0, ps.Len()).
type Generator interface {
	Name() string
	Apply(ps *point.Set) error
}

// Canvas is the drawing area a layout targets. PointWidth is the spacing
// footprint of one point, i.e. its drawn width plus margin.
type Canvas struct {
	Width      float64
	Height     float64
	PointWidth float64
}

// Center returns the middle of the canvas.
func (c Canvas) Center() (float64, float64) {
	return c.Width / 2, c.Height / 2
}

// Validate checks that all dimensions are finite and non-negative.
func (c Canvas) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"canvas width", c.Width}, {"canvas height", c.Height}, {"point width", c.PointWidth}} {
		if err := errors.ValidateFinite(f.name, f.v); err != nil {
			return err
		}
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", f.name, f.v)
		}
	}
	return nil
}

// linear maps the domain [d0,d1] onto the range [r0,r1]. A collapsed domain
// maps everything to r0.
type linear struct {
	d0, d1 float64
	r0, r1 float64
}

func (s linear) at(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// indexScale maps point indices [0, n-1] onto [0, to].
func indexScale(n int, to float64) linear {
	return linear{d0: 0, d1: float64(n - 1), r0: 0, r1: to}
}

func checkCount(name string, ps *point.Set, want int) error {
	if ps.Len() != want {
		return errors.New(errors.ErrCodeInvalidPointCount,
			"%s layout was built for %d points, got a set of %d", name, want, ps.Len())
	}
	return nil
}
