package layout

import (
	"fmt"

	"github.com/matzehuels/stipple/pkg/errors"
)

// Range is a named, contiguous block of point indices [Start, End).
type Range struct {
	Name  string
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) String() string {
	return fmt.Sprintf("%s[%d,%d)", r.Name, r.Start, r.End)
}

// Allocator hands out consecutive ranges of a fixed-size point array in
// multiples of a block size. Ranges never overlap; Finish verifies that the
// ranges handed out cover the whole array.
type Allocator struct {
	n      int
	block  int
	next   int
	ranges []Range
}

// NewAllocator creates an allocator over n points with the given block size.
func NewAllocator(n, blockSize int) (*Allocator, error) {
	if err := errors.ValidatePointCount(n); err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "block size must be positive, got %d", blockSize)
	}
	return &Allocator{n: n, block: blockSize}, nil
}

// Take reserves the next blocks*blockSize indices under name. It fails when
// the request would run past the end of the array; the allocator is left
// unchanged in that case.
func (a *Allocator) Take(name string, blocks int) (Range, error) {
	if blocks <= 0 {
		return Range{}, errors.New(errors.ErrCodeInvalidConfig, "%s: block count must be positive, got %d", name, blocks)
	}
	size := blocks * a.block
	if a.next+size > a.n {
		return Range{}, errors.New(errors.ErrCodeRangeMismatch,
			"%s needs %d points at offset %d but only %d points exist", name, size, a.next, a.n)
	}
	r := Range{Name: name, Start: a.next, End: a.next + size}
	a.next = r.End
	a.ranges = append(a.ranges, r)
	return r, nil
}

// Used returns the number of indices handed out so far.
func (a *Allocator) Used() int { return a.next }

// Finish returns all ranges in allocation order, or RANGE_MISMATCH if they do
// not add up to exactly n points.
func (a *Allocator) Finish() ([]Range, error) {
	if a.next != a.n {
		return nil, errors.New(errors.ErrCodeRangeMismatch,
			"ranges cover %d of %d points (%d blocks of %d, %d points unassigned)",
			a.next, a.n, a.next/a.block, a.block, a.n-a.next)
	}
	out := make([]Range, len(a.ranges))
	copy(out, a.ranges)
	return out, nil
}

// Required returns the point count a composite of the given shape consumes.
func Required(blockSize, symbols, ringBlocks, lines, lineBlocks, boundingBlocks int) int {
	return blockSize * (symbols*ringBlocks + lines*lineBlocks + boundingBlocks)
}
