package layout

import (
	"math"

	"github.com/matzehuels/stipple/pkg/errors"
)

// Default lattice dimensions. The middle anchor (column 5, row 9) has index
// 76 and sits at the canvas center.
const (
	DefaultLatticeCols = 9
	DefaultLatticeRows = 17
)

// Anchor is a lattice coordinate.
type Anchor struct {
	X, Y float64
}

// Lattice is a precomputed hex tiling of anchor points. Anchors are stored
// row by row: index = (row-1)*cols + (col-1).
type Lattice struct {
	Radius  float64
	Cols    int
	Rows    int
	anchors []Anchor
}

// DefaultLatticeRadius is the base radius used for a canvas of the given
// height and drawn point width.
func DefaultLatticeRadius(height, pointWidth float64) float64 {
	return height/10 - 0.4*pointWidth
}

// NewLattice builds a cols×rows lattice with horizontal spacing
// √(r²−(r/2)²) and vertical spacing r/2, centered on a width×height canvas.
// Anchors whose column and row parities match form a hexagonal grid in which
// neighbors are exactly radius apart.
func NewLattice(radius float64, cols, rows int, width, height float64) (*Lattice, error) {
	if err := errors.ValidateFinite("lattice radius", radius); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "lattice radius must not be negative, got %v", radius)
	}
	if cols <= 0 || rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "lattice must have positive dimensions, got %dx%d", cols, rows)
	}

	gx := math.Sqrt(radius*radius - (radius/2)*(radius/2))
	gy := radius / 2
	offX := width/2 - float64(cols+1)/2*gx
	offY := height/2 - float64(rows+1)/2*gy

	anchors := make([]Anchor, 0, cols*rows)
	for k := 1; k <= rows; k++ {
		for j := 1; j <= cols; j++ {
			anchors = append(anchors, Anchor{
				X: offX + float64(j)*gx,
				Y: offY + float64(k)*gy,
			})
		}
	}
	return &Lattice{Radius: radius, Cols: cols, Rows: rows, anchors: anchors}, nil
}

// Len returns the number of anchors.
func (l *Lattice) Len() int { return len(l.anchors) }

// At returns anchor i. Indices are validated when a composite is built; At
// panics on an out-of-range index.
func (l *Lattice) At(i int) Anchor { return l.anchors[i] }

// Check validates every index against the lattice size.
func (l *Lattice) Check(indices ...int) error {
	for _, idx := range indices {
		if err := errors.ValidateIndex("lattice", idx, len(l.anchors)); err != nil {
			return err
		}
	}
	return nil
}
