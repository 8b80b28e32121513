package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/stipple/pkg/errors"
)

func TestCompositeDefaultsBalance(t *testing.T) {
	lat := testLattice(t)

	tests := []struct {
		name   string
		build  func(CompositeConfig, int) (*Composite, error)
		cfg    CompositeConfig
		ranges int
	}{
		{"flower", NewFlower, CompositeConfig{Symbols: FlowerOfLife}, 61 + 1},
		{"tree", NewTree, CompositeConfig{Symbols: TreeOfLife, Lines: TreeOfLifePaths}, 10 + 22},
		{"meta", NewMeta, CompositeConfig{Symbols: MetatronsCube, Lines: MetatronsCubeLines}, 14 + 1 + 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Canvas = testCanvas
			cfg.Lattice = lat

			c, err := tt.build(cfg, defaultN)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			ranges := c.Ranges()
			if len(ranges) != tt.ranges {
				t.Errorf("got %d ranges, want %d", len(ranges), tt.ranges)
			}
			next := 0
			for _, r := range ranges {
				if r.Start != next {
					t.Fatalf("range %s starts at %d, want %d", r, r.Start, next)
				}
				if r.Len()%DefaultBlockSize != 0 {
					t.Errorf("range %s is not a whole number of blocks", r)
				}
				next = r.End
			}
			if next != defaultN {
				t.Errorf("ranges end at %d, want %d", next, defaultN)
			}

			for _, n := range []int{defaultN - DefaultBlockSize, defaultN + DefaultBlockSize, defaultN + 1, 1} {
				if _, err := tt.build(cfg, n); !errors.Is(err, errors.ErrCodeRangeMismatch) {
					t.Errorf("build(N=%d) = %v, want %s", n, err, errors.ErrCodeRangeMismatch)
				}
			}
		})
	}
}

func TestFlowerVariantNeedsExplicitBounding(t *testing.T) {
	lat := testLattice(t)
	seven, err := Symbols("flower-7")
	if err != nil {
		t.Fatal(err)
	}

	cfg := CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: seven}
	if _, err := NewFlower(cfg, defaultN); !errors.Is(err, errors.ErrCodeRangeMismatch) {
		t.Fatalf("flower-7 with default bounding = %v, want %s", err, errors.ErrCodeRangeMismatch)
	}

	cfg.BoundingBlocks = 64 - 7
	if _, err := NewFlower(cfg, defaultN); err != nil {
		t.Errorf("flower-7 with 57 bounding blocks: %v", err)
	}
}

func TestCompositeRejectsBadLatticeIndex(t *testing.T) {
	lat := testLattice(t)
	symbols := append([]int(nil), FlowerOfLife...)
	symbols[3] = lat.Len()

	_, err := NewFlower(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: symbols}, defaultN)
	if !errors.Is(err, errors.ErrCodeInvalidLatticeIndex) {
		t.Errorf("NewFlower() = %v, want %s", err, errors.ErrCodeInvalidLatticeIndex)
	}

	lines := append([]Line(nil), TreeOfLifePaths...)
	lines[0].To = -1
	_, err = NewTree(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: TreeOfLife, Lines: lines}, defaultN)
	if !errors.Is(err, errors.ErrCodeInvalidLatticeIndex) {
		t.Errorf("NewTree() = %v, want %s", err, errors.ErrCodeInvalidLatticeIndex)
	}
}

func TestCompositeRequiresLattice(t *testing.T) {
	_, err := NewMeta(CompositeConfig{Canvas: testCanvas, Symbols: MetatronsCube}, defaultN)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewMeta() = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestCompositeApplyWrongSize(t *testing.T) {
	lat := testLattice(t)
	c, err := NewFlower(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: FlowerOfLife}, defaultN)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSet(t, 100)
	ps.At(0).X = 11
	if err := c.Apply(ps); !errors.Is(err, errors.ErrCodeInvalidPointCount) {
		t.Fatalf("Apply() = %v, want %s", err, errors.ErrCodeInvalidPointCount)
	}
	if ps.At(0).X != 11 {
		t.Error("failed Apply mutated the set")
	}
}

func TestFlowerRingsAndBoundingCircle(t *testing.T) {
	lat := testLattice(t)
	c, err := NewFlower(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: FlowerOfLife}, defaultN)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSet(t, defaultN)
	if err := c.Apply(ps); err != nil {
		t.Fatal(err)
	}

	// First ring surrounds the center anchor at the lattice radius.
	center := lat.At(76)
	for i := 0; i < DefaultBlockSize; i++ {
		p := ps.At(i)
		if d := math.Hypot(p.X-center.X, p.Y-center.Y); math.Abs(d-lat.Radius) > 1e-9 {
			t.Fatalf("point %d is %v from anchor 76, want %v", i, d, lat.Radius)
		}
	}

	// The last three blocks form the bounding circle.
	want := 600.0/2 - testCanvas.PointWidth/2
	for i := defaultN - 3*DefaultBlockSize; i < defaultN; i++ {
		p := ps.At(i)
		if d := math.Hypot(p.X-300, p.Y-300); math.Abs(d-want) > 1e-9 {
			t.Fatalf("point %d is %v from center, want %v", i, d, want)
		}
	}
}

func TestTreeThickRingsAndLines(t *testing.T) {
	lat := testLattice(t)
	c, err := NewTree(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: TreeOfLife, Lines: TreeOfLifePaths}, defaultN)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSet(t, defaultN)
	if err := c.Apply(ps); err != nil {
		t.Fatal(err)
	}

	ringR := 600.0 / 30
	a := lat.At(TreeOfLife[0])
	inner := ps.At(DefaultBlockSize + 10)
	outer := ps.At(10)
	if d := math.Hypot(outer.X-a.X, outer.Y-a.Y); math.Abs(d-ringR) > 1e-9 {
		t.Errorf("first block radius = %v, want %v", d, ringR)
	}
	if d := math.Hypot(inner.X-a.X, inner.Y-a.Y); math.Abs(d-(ringR-testCanvas.PointWidth/2)) > 1e-9 {
		t.Errorf("second block radius = %v, want %v", d, ringR-testCanvas.PointWidth/2)
	}

	// Lines start after the node rings; each spans 2000 points.
	start := len(TreeOfLife) * 2 * DefaultBlockSize
	ln := TreeOfLifePaths[0]
	from, to := lat.At(ln.From), lat.At(ln.To)
	for _, j := range []int{0, 500, 1000, 1999} {
		p := ps.At(start + j)
		f := float64(j) / 2000
		wx := from.X + (to.X-from.X)*f
		wy := from.Y + (to.Y-from.Y)*f
		if math.Abs(p.X-wx) > 1e-9 || math.Abs(p.Y-wy) > 1e-9 {
			t.Errorf("line point %d = (%v,%v), want (%v,%v)", j, p.X, p.Y, wx, wy)
		}
	}
}

func TestMetaLinesSpanWholeSegment(t *testing.T) {
	lat := testLattice(t)
	c, err := NewMeta(CompositeConfig{Canvas: testCanvas, Lattice: lat, Symbols: MetatronsCube, Lines: MetatronsCubeLines}, defaultN)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSet(t, defaultN)
	if err := c.Apply(ps); err != nil {
		t.Fatal(err)
	}

	// Lines follow the node rings and the five bounding blocks; each line has
	// one block, mapped over its own length.
	start := (len(MetatronsCube) + 5) * DefaultBlockSize
	ln := MetatronsCubeLines[len(MetatronsCubeLines)-1]
	base := start + (len(MetatronsCubeLines)-1)*DefaultBlockSize
	from, to := lat.At(ln.From), lat.At(ln.To)
	for _, j := range []int{0, 500, 999} {
		p := ps.At(base + j)
		f := float64(j) / DefaultBlockSize
		wx := from.X + (to.X-from.X)*f
		wy := from.Y + (to.Y-from.Y)*f
		if math.Abs(p.X-wx) > 1e-9 || math.Abs(p.Y-wy) > 1e-9 {
			t.Errorf("line point %d = (%v,%v), want (%v,%v)", j, p.X, p.Y, wx, wy)
		}
	}
}

func TestZeroRadiusRings(t *testing.T) {
	lat, err := NewLattice(0, 3, 3, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewFlower(CompositeConfig{
		Canvas:         Canvas{Width: 100, Height: 100},
		Lattice:        lat,
		Symbols:        []int{4},
		BlockSize:      10,
		BoundingBlocks: 1,
	}, 20)
	if err != nil {
		t.Fatal(err)
	}
	ps := newSet(t, 20)
	if err := c.Apply(ps); err != nil {
		t.Fatal(err)
	}
	assertFinite(t, ps)
	for i := 0; i < 10; i++ {
		if ps.At(i).X != 50 || ps.At(i).Y != 50 {
			t.Fatalf("zero-radius ring point %d = (%v,%v), want anchor", i, ps.At(i).X, ps.At(i).Y)
		}
	}
}
