package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/stipple/pkg/errors"
)

func TestLatticeGeometry(t *testing.T) {
	lat := testLattice(t)

	if lat.Len() != DefaultLatticeCols*DefaultLatticeRows {
		t.Fatalf("Len() = %d, want %d", lat.Len(), DefaultLatticeCols*DefaultLatticeRows)
	}

	c := lat.At(76)
	if math.Abs(c.X-300) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Errorf("anchor 76 = (%v,%v), want canvas center", c.X, c.Y)
	}

	// The first flower ring are hex neighbors of the center, one radius away.
	for _, idx := range FlowerOfLife[1:7] {
		a := lat.At(idx)
		if d := math.Hypot(a.X-c.X, a.Y-c.Y); math.Abs(d-lat.Radius) > 1e-9 {
			t.Errorf("anchor %d is %v from center, want %v", idx, d, lat.Radius)
		}
	}

	// Metatron's inner hexagon at two radii, outer at four.
	for _, idx := range metaInner {
		a := lat.At(idx)
		if d := math.Hypot(a.X-c.X, a.Y-c.Y); math.Abs(d-2*lat.Radius) > 1e-9 {
			t.Errorf("inner anchor %d is %v from center, want %v", idx, d, 2*lat.Radius)
		}
	}
	for _, idx := range metaOuter {
		a := lat.At(idx)
		if d := math.Hypot(a.X-c.X, a.Y-c.Y); math.Abs(d-4*lat.Radius) > 1e-9 {
			t.Errorf("outer anchor %d is %v from center, want %v", idx, d, 4*lat.Radius)
		}
	}
}

func TestNewLatticeRejects(t *testing.T) {
	tests := []struct {
		name       string
		radius     float64
		cols, rows int
	}{
		{"negative radius", -1, 9, 17},
		{"nan radius", math.NaN(), 9, 17},
		{"no columns", 10, 0, 17},
		{"no rows", 10, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLattice(tt.radius, tt.cols, tt.rows, 600, 600); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("NewLattice() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"flower", 61},
		{"flower-1", 1},
		{"flower-7", 7},
		{"flower-19", 19},
		{"flower-37", 37},
		{"tree", 10},
		{"meta", 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Symbols(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if len(s) != tt.want {
				t.Errorf("len = %d, want %d", len(s), tt.want)
			}
		})
	}

	if _, err := Symbols("hexagon"); !errors.Is(err, errors.ErrCodeUnknownLayout) {
		t.Errorf("Symbols(hexagon) = %v", err)
	}

	meta, _ := Lines("meta")
	if len(meta) != 45 {
		t.Errorf("meta lines = %d, want 45", len(meta))
	}
	seen := map[[2]int]bool{}
	for _, l := range meta {
		key := [2]int{min(l.From, l.To), max(l.From, l.To)}
		if seen[key] {
			t.Errorf("duplicate meta line %v", l)
		}
		seen[key] = true
	}

	tree, _ := Lines("tree")
	if len(tree) != 22 {
		t.Errorf("tree paths = %d, want 22", len(tree))
	}

	// Presets are copies.
	s, _ := Symbols("flower")
	s[0] = -1
	if FlowerOfLife[0] != 76 {
		t.Error("Symbols returned the shared preset slice")
	}
}
