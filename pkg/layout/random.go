package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/stipple/pkg/point"
)

// DefaultSeed seeds the initial scatter.
const DefaultSeed = uint64(42)

// Random scatters points uniformly over the canvas. Each Apply draws fresh
// positions from the same seeded stream, so consecutive calls differ while a
// whole run stays reproducible.
//
// A canvas narrower than one point yields a negative span and positions fall
// on the negative side of the axis; Apply never fails for that reason.
type Random struct {
	Canvas Canvas
	rng    *rand.Rand
}

// NewRandom returns a scatter generator seeded with seed.
func NewRandom(c Canvas, seed uint64) *Random {
	return &Random{
		Canvas: c,
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Apply(ps *point.Set) error {
	if err := r.Canvas.Validate(); err != nil {
		return err
	}
	spanX := r.Canvas.Width - r.Canvas.PointWidth
	spanY := r.Canvas.Height - r.Canvas.PointWidth
	pts := ps.Points()
	for i := range pts {
		pts[i].X = r.rng.Float64() * spanX
		pts[i].Y = r.rng.Float64() * spanY
	}
	return nil
}
