package config

import (
	"fmt"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/point"
	"github.com/matzehuels/stipple/pkg/sequence"
)

// Named gives a generator the name of its layout entry, so a sequence can
// hold several variants of one kind.
type Named struct {
	layout.Generator
	name string
}

func (n *Named) Name() string { return n.name }

// Unwrap returns the underlying generator.
func (n *Named) Unwrap() layout.Generator { return n.Generator }

// BuildLattice builds the anchor lattice shared by the composite layouts.
func (c *Config) BuildLattice() (*layout.Lattice, error) {
	radius := c.Lattice.Radius
	if radius == 0 {
		radius = layout.DefaultLatticeRadius(float64(c.Height), c.PointWidth)
	}
	return layout.NewLattice(radius, c.Lattice.Cols, c.Lattice.Rows, float64(c.Width), float64(c.Height))
}

// ScatterCanvas is the canvas of the initial random scatter. It spaces
// points by their drawn width only.
func (c *Config) ScatterCanvas() layout.Canvas {
	cv := c.Canvas()
	cv.PointWidth = c.PointWidth
	return cv
}

// Generator builds the generator for one layout entry. Composite entries are
// checked against the configured point count.
func (c *Config) Generator(name string, lat *layout.Lattice) (layout.Generator, error) {
	lc, ok := c.Layout(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q", name)
	}
	g, err := c.build(lc, lat)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	if g.Name() == name {
		return g, nil
	}
	return &Named{Generator: g, name: name}, nil
}

// Generators builds the configured sequence in order. Entries naming the
// same layout share one generator.
func (c *Config) Generators() ([]layout.Generator, error) {
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	lat, err := c.BuildLattice()
	if err != nil {
		return nil, err
	}
	built := make(map[string]layout.Generator)
	gens := make([]layout.Generator, 0, len(c.Sequence))
	for _, name := range c.Sequence {
		g, ok := built[name]
		if !ok {
			if g, err = c.Generator(name, lat); err != nil {
				return nil, err
			}
			built[name] = g
		}
		gens = append(gens, g)
	}
	return gens, nil
}

// Sequencer builds the configured layout cycle.
func (c *Config) Sequencer() (*sequence.Sequencer, error) {
	gens, err := c.Generators()
	if err != nil {
		return nil, err
	}
	return sequence.New(gens...)
}

// NewPoints creates the point set, colored by the configured palette.
func (c *Config) NewPoints() (*point.Set, error) {
	return point.New(c.Points, c.Colorer())
}

func (c *Config) build(lc LayoutConfig, lat *layout.Lattice) (layout.Generator, error) {
	cv := c.Canvas()
	switch lc.Kind {
	case KindPhyllotaxis:
		p := layout.NewPhyllotaxis(cv)
		if lc.Divisor != 0 {
			p.Divisor = lc.Divisor
		}
		p.IndexOffset = lc.IndexOffset
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil
	case KindSpiral:
		s := layout.NewSpiral(cv)
		if lc.Periods != 0 {
			s.Periods = lc.Periods
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	case KindRandom:
		return layout.NewRandom(cv, *c.Seed), nil
	case KindFlower, KindTree, KindMeta:
		cc, err := c.composite(lc, lat)
		if err != nil {
			return nil, err
		}
		switch lc.Kind {
		case KindFlower:
			return layout.NewFlower(cc, c.Points)
		case KindTree:
			return layout.NewTree(cc, c.Points)
		default:
			return layout.NewMeta(cc, c.Points)
		}
	}
	return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown layout kind %q (valid: %v)", lc.Kind, Kinds())
}

func (c *Config) composite(lc LayoutConfig, lat *layout.Lattice) (layout.CompositeConfig, error) {
	symbols := lc.SymbolIndices
	if len(symbols) == 0 {
		name := lc.Symbols
		if name == "" {
			name = lc.Kind
		}
		var err error
		if symbols, err = layout.Symbols(name); err != nil {
			return layout.CompositeConfig{}, err
		}
	}

	linesName := lc.Lines
	if linesName == "" {
		linesName = "none"
		if lc.Kind != KindFlower {
			linesName = lc.Kind
		}
	}
	lines, err := layout.Lines(linesName)
	if err != nil {
		return layout.CompositeConfig{}, err
	}

	return layout.CompositeConfig{
		Canvas:         c.Canvas(),
		Lattice:        lat,
		Symbols:        symbols,
		Lines:          lines,
		RingRadius:     lc.RingRadius,
		RingBlocks:     lc.RingBlocks,
		LineBlocks:     lc.LineBlocks,
		BoundingBlocks: lc.BoundingBlocks,
		BlockSize:      c.BlockSize,
		Periods:        lc.Periods,
	}, nil
}
