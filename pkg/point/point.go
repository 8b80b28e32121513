// Package point holds the fixed-size set of colored points that every
// layout and the tween driver operate on.
//
// A [Set] is created once per session with exactly N points. Each point keeps
// its id and color for the lifetime of the set; only the current position
// ([Point.X], [Point.Y]) ever changes.
package point

import (
	"image/color"

	"github.com/matzehuels/stipple/pkg/errors"
)

// Point is a single colored point. ID and color are fixed at creation.
type Point struct {
	X, Y float64

	id    int
	color color.RGBA
}

// ID returns the point's index in its set.
func (p *Point) ID() int { return p.id }

// Color returns the color assigned when the set was created.
func (p *Point) Color() color.RGBA { return p.color }

// Transition is the per-point record of a single tween: where the point
// started (SX, SY) and where it is headed (TX, TY). Records are created fresh
// for every transition and dropped when it ends.
type Transition struct {
	SX, SY float64
	TX, TY float64
}

// At returns the blended position at progress t, where t=0 is the source and
// t=1 the target.
func (tr Transition) At(t float64) (x, y float64) {
	return tr.SX*(1-t) + tr.TX*t, tr.SY*(1-t) + tr.TY*t
}

// Colorer assigns a color to point id out of n.
type Colorer func(id, n int) color.RGBA

// Set is an ordered collection of exactly Len() points.
type Set struct {
	points []Point
}

// New creates n points colored by colorer. Positions start at the origin;
// callers scatter them with a layout before first use.
// A nil colorer paints every point opaque white.
func New(n int, colorer Colorer) (*Set, error) {
	if err := errors.ValidatePointCount(n); err != nil {
		return nil, err
	}
	if colorer == nil {
		colorer = func(int, int) color.RGBA { return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} }
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{id: i, color: colorer(i, n)}
	}
	return &Set{points: pts}, nil
}

// Len returns N.
func (s *Set) Len() int { return len(s.points) }

// At returns a pointer to point i. It panics if i is out of range, like a
// slice index would.
func (s *Set) At(i int) *Point { return &s.points[i] }

// Points exposes the backing slice for O(N) passes. The slice length must not
// be changed by callers; ids and colors are unexported and stay intact.
func (s *Set) Points() []Point { return s.points }

// Snapshot returns a fresh transition record per point with the source
// fields set to the current positions.
func (s *Set) Snapshot() []Transition {
	recs := make([]Transition, len(s.points))
	for i := range s.points {
		recs[i].SX = s.points[i].X
		recs[i].SY = s.points[i].Y
	}
	return recs
}

// Restore moves every point back to the source position of its record.
// recs must have been produced by Snapshot on this set.
func (s *Set) Restore(recs []Transition) {
	for i := range s.points {
		s.points[i].X = recs[i].SX
		s.points[i].Y = recs[i].SY
	}
}

// Bounds returns the axis-aligned bounding box of the current positions.
func (s *Set) Bounds() (minX, minY, maxX, maxY float64) {
	for i, p := range s.points {
		if i == 0 {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			continue
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
