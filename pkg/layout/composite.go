package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// Composite defaults.
const (
	DefaultBlockSize    = 1000
	DefaultMotifPeriods = 64

	flowerBoundingBlocks = 3
	metaBoundingBlocks   = 5
	treeRingBlocks       = 2
	treeLineBlocks       = 2
	defaultRingBlocks    = 1
	defaultLineBlocks    = 1
)

// Line connects two lattice anchors.
type Line struct {
	From, To int
}

// CompositeConfig describes a motif made of rings around lattice anchors,
// straight lines between anchors and an outer bounding circle. Zero values
// take the defaults of the constructor used.
type CompositeConfig struct {
	Canvas  Canvas
	Lattice *Lattice

	// Symbols selects the lattice anchors that get a ring. An index may
	// repeat; each occurrence consumes its own ranges.
	Symbols []int
	Lines   []Line

	// RingRadius is the radius of the symbol rings.
	RingRadius float64

	RingBlocks     int
	LineBlocks     int
	BoundingBlocks int

	// BlockSize is the number of points in one block.
	BlockSize int

	// Periods is the number of full turns the arc angle makes over the
	// whole index space [0, N).
	Periods float64
}

type elementKind int

const (
	ringElement elementKind = iota
	lineElement
)

type element struct {
	Range
	kind   elementKind
	cx, cy float64 // ring center
	radius float64 // ring radius of the first block
	dx, dy float64 // line displacement from (cx, cy)
	thick  bool    // later blocks step inwards
}

// Composite is a validated motif layout for a fixed point count. Build one
// with [NewFlower], [NewTree] or [NewMeta].
type Composite struct {
	name       string
	n          int
	blockSize  int
	periods    float64
	pointWidth float64
	elements   []element
	ranges     []Range
}

// NewFlower builds the flower of life: one ring per symbol and a bounding
// circle of three blocks. Rings default to the lattice radius, so adjacent
// rings pass through each other's centers.
func NewFlower(cfg CompositeConfig, n int) (*Composite, error) {
	if cfg.Lattice != nil && cfg.RingRadius == 0 {
		cfg.RingRadius = cfg.Lattice.Radius
	}
	if cfg.BoundingBlocks == 0 {
		cfg.BoundingBlocks = flowerBoundingBlocks
	}
	return newComposite("flower", cfg, n)
}

// NewTree builds the tree of life: a thick ring of two blocks per symbol and
// two blocks per connecting line. Rings default to a thirtieth of the canvas
// height.
func NewTree(cfg CompositeConfig, n int) (*Composite, error) {
	if cfg.RingRadius == 0 {
		cfg.RingRadius = cfg.Canvas.Height / 30
	}
	if cfg.RingBlocks == 0 {
		cfg.RingBlocks = treeRingBlocks
	}
	if cfg.LineBlocks == 0 {
		cfg.LineBlocks = treeLineBlocks
	}
	return newComposite("tree", cfg, n)
}

// NewMeta builds Metatron's cube: one ring per symbol, a bounding circle of
// five blocks and one block per line.
func NewMeta(cfg CompositeConfig, n int) (*Composite, error) {
	if cfg.Lattice != nil && cfg.RingRadius == 0 {
		cfg.RingRadius = cfg.Lattice.Radius
	}
	if cfg.BoundingBlocks == 0 {
		cfg.BoundingBlocks = metaBoundingBlocks
	}
	return newComposite("meta", cfg, n)
}

func newComposite(name string, cfg CompositeConfig, n int) (*Composite, error) {
	if err := cfg.Canvas.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if cfg.Lattice == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: lattice is required", name)
	}
	if err := errors.ValidateFinite("ring radius", cfg.RingRadius); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if cfg.RingRadius < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: ring radius must not be negative, got %v", name, cfg.RingRadius)
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	if cfg.Periods == 0 {
		cfg.Periods = DefaultMotifPeriods
	}
	if err := errors.ValidateFinite("motif periods", cfg.Periods); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if cfg.RingBlocks == 0 {
		cfg.RingBlocks = defaultRingBlocks
	}
	if cfg.LineBlocks == 0 {
		cfg.LineBlocks = defaultLineBlocks
	}
	if cfg.BoundingBlocks < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: bounding blocks must not be negative, got %d", name, cfg.BoundingBlocks)
	}

	if err := cfg.Lattice.Check(cfg.Symbols...); err != nil {
		return nil, fmt.Errorf("%s symbols: %w", name, err)
	}
	for _, ln := range cfg.Lines {
		if err := cfg.Lattice.Check(ln.From, ln.To); err != nil {
			return nil, fmt.Errorf("%s lines: %w", name, err)
		}
	}

	if want := Required(cfg.BlockSize, len(cfg.Symbols), cfg.RingBlocks, len(cfg.Lines), cfg.LineBlocks, cfg.BoundingBlocks); want != n {
		return nil, errors.New(errors.ErrCodeRangeMismatch,
			"%s consumes %d points (%d symbols×%d + %d lines×%d + %d bounding blocks of %d) but the set has %d",
			name, want, len(cfg.Symbols), cfg.RingBlocks, len(cfg.Lines), cfg.LineBlocks, cfg.BoundingBlocks, cfg.BlockSize, n)
	}

	alloc, err := NewAllocator(n, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var elems []element
	for _, sym := range cfg.Symbols {
		r, err := alloc.Take(fmt.Sprintf("ring %d", sym), cfg.RingBlocks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		a := cfg.Lattice.At(sym)
		elems = append(elems, element{Range: r, kind: ringElement, cx: a.X, cy: a.Y, radius: cfg.RingRadius, thick: true})
	}

	if cfg.BoundingBlocks > 0 {
		r, err := alloc.Take("bound", cfg.BoundingBlocks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		cx, cy := cfg.Canvas.Center()
		radius := max(0, cfg.Canvas.Height/2-cfg.Canvas.PointWidth/2)
		elems = append(elems, element{Range: r, kind: ringElement, cx: cx, cy: cy, radius: radius})
	}

	for _, ln := range cfg.Lines {
		r, err := alloc.Take(fmt.Sprintf("line %d-%d", ln.From, ln.To), cfg.LineBlocks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		a, b := cfg.Lattice.At(ln.From), cfg.Lattice.At(ln.To)
		elems = append(elems, element{Range: r, kind: lineElement, cx: a.X, cy: a.Y, dx: b.X - a.X, dy: b.Y - a.Y})
	}

	ranges, err := alloc.Finish()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Composite{
		name:       name,
		n:          n,
		blockSize:  cfg.BlockSize,
		periods:    cfg.Periods,
		pointWidth: cfg.Canvas.PointWidth,
		elements:   elems,
		ranges:     ranges,
	}, nil
}

func (c *Composite) Name() string { return c.name }

// Len returns the point count the composite was validated for.
func (c *Composite) Len() int { return c.n }

// Ranges returns the range allocation in index order.
func (c *Composite) Ranges() []Range {
	out := make([]Range, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// Apply places every point. It fails without modifying ps when the set size
// differs from the size the composite was built for.
func (c *Composite) Apply(ps *point.Set) error {
	if err := checkCount(c.name, ps, c.n); err != nil {
		return err
	}
	theta := indexScale(c.n, c.periods*2*math.Pi)
	pts := ps.Points()
	for _, e := range c.elements {
		switch e.kind {
		case ringElement:
			c.placeRing(pts, e, theta)
		case lineElement:
			placeLine(pts, e)
		}
	}
	return nil
}

// placeRing puts the points of e on a circle around (cx, cy). Each further
// block of a multi-block symbol ring sits half a point width further in,
// which thickens the stroke.
func (c *Composite) placeRing(pts []point.Point, e element, theta linear) {
	for i := e.Start; i < e.End; i++ {
		r := e.radius
		if e.thick {
			r = max(0, r-float64((i-e.Start)/c.blockSize)*c.pointWidth/2)
		}
		a := theta.at(float64(i))
		pts[i].X = r*math.Cos(a) + e.cx
		pts[i].Y = r*math.Sin(a) + e.cy
	}
}

// placeLine spreads the points of e evenly along the segment from its start
// anchor towards its end anchor. The local index j runs over [0, len) and is
// mapped from that domain onto the displacement vector.
func placeLine(pts []point.Point, e element) {
	domain := float64(e.Len())
	sx := linear{d0: 0, d1: domain, r0: 0, r1: e.dx}
	sy := linear{d0: 0, d1: domain, r0: 0, r1: e.dy}
	for i := e.Start; i < e.End; i++ {
		j := float64(i - e.Start)
		pts[i].X = e.cx + sx.at(j)
		pts[i].Y = e.cy + sy.at(j)
	}
}
