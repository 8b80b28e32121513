package layout

import (
	"math"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// GoldenAngle is π(3−√5), the divergence angle between consecutive seeds.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// DefaultPhyllotaxisDivisor controls seed spacing: r = PointWidth / Divisor.
const DefaultPhyllotaxisDivisor = 2.8

// Phyllotaxis arranges points like sunflower seeds. Point i is placed at
// seed number (i + IndexOffset) mod N.
type Phyllotaxis struct {
	PointWidth  float64
	XOffset     float64
	YOffset     float64
	IndexOffset int
	Divisor     float64
}

// NewPhyllotaxis centers a phyllotaxis on the canvas with the default divisor.
func NewPhyllotaxis(c Canvas) *Phyllotaxis {
	cx, cy := c.Center()
	return &Phyllotaxis{
		PointWidth: c.PointWidth,
		XOffset:    cx,
		YOffset:    cy,
		Divisor:    DefaultPhyllotaxisDivisor,
	}
}

func (p *Phyllotaxis) Name() string { return "phyllotaxis" }

// Validate rejects non-finite offsets and a non-positive divisor.
func (p *Phyllotaxis) Validate() error {
	if err := errors.ValidatePositive("phyllotaxis divisor", p.Divisor); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"point width": p.PointWidth,
		"x offset":    p.XOffset,
		"y offset":    p.YOffset,
	} {
		if err := errors.ValidateFinite(name, v); err != nil {
			return err
		}
	}
	return nil
}

// Radius returns the seed spacing r.
func (p *Phyllotaxis) Radius() float64 { return p.PointWidth / p.Divisor }

// Position returns the destination of point i in a set of n points.
func (p *Phyllotaxis) Position(i, n int) (float64, float64) {
	idx := (i + p.IndexOffset) % n
	if idx < 0 {
		idx += n
	}
	r := p.Radius()
	fi := float64(idx)
	dist := r * math.Sqrt(fi)
	return p.XOffset + dist*math.Cos(fi*GoldenAngle) - r,
		p.YOffset + dist*math.Sin(fi*GoldenAngle) - r
}

func (p *Phyllotaxis) Apply(ps *point.Set) error {
	if err := p.Validate(); err != nil {
		return err
	}
	n := ps.Len()
	pts := ps.Points()
	for i := range pts {
		pts[i].X, pts[i].Y = p.Position(i, n)
	}
	return nil
}
