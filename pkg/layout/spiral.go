package layout

import (
	"math"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// DefaultSpiralPeriods is the number of full turns of the spiral.
const DefaultSpiralPeriods = 20

// Spiral lays points on an Archimedean spiral centered on the canvas. Point 0
// sits at the center, point N−1 at MaxRadius after Periods full turns.
type Spiral struct {
	Canvas  Canvas
	Periods float64
}

// NewSpiral returns a spiral with the default number of turns.
func NewSpiral(c Canvas) *Spiral {
	return &Spiral{Canvas: c, Periods: DefaultSpiralPeriods}
}

func (s *Spiral) Name() string { return "spiral" }

func (s *Spiral) Validate() error {
	if err := s.Canvas.Validate(); err != nil {
		return err
	}
	return errors.ValidateFinite("spiral periods", s.Periods)
}

// MaxRadius is the radius of the outermost point, never below zero.
func (s *Spiral) MaxRadius() float64 {
	return max(0, min(s.Canvas.Width/2, s.Canvas.Height/2)-s.Canvas.PointWidth)
}

// Position returns the destination of point i in a set of n points.
func (s *Spiral) Position(i, n int) (float64, float64) {
	cx, cy := s.Canvas.Center()
	r := indexScale(n, s.MaxRadius()).at(float64(i))
	theta := indexScale(n, s.Periods*2*math.Pi).at(float64(i))
	return r*math.Cos(theta) + cx, r*math.Sin(theta) + cy
}

func (s *Spiral) Apply(ps *point.Set) error {
	if err := s.Validate(); err != nil {
		return err
	}
	n := ps.Len()
	pts := ps.Points()
	for i := range pts {
		pts[i].X, pts[i].Y = s.Position(i, n)
	}
	return nil
}
