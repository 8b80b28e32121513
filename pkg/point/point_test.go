package point

import (
	"image/color"
	"testing"

	"github.com/matzehuels/stipple/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"single point", 1, false},
		{"default size", 64000, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.n, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidPointCount) {
					t.Errorf("code = %v", errors.GetCode(err))
				}
				return
			}
			if s.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.n)
			}
		})
	}
}

func TestIDsAndColors(t *testing.T) {
	colorer := func(id, n int) color.RGBA {
		return color.RGBA{R: uint8(id), G: uint8(n), A: 0xff}
	}
	s, err := New(10, colorer)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		if p.ID() != i {
			t.Errorf("At(%d).ID() = %d", i, p.ID())
		}
		want := color.RGBA{R: uint8(i), G: 10, A: 0xff}
		if p.Color() != want {
			t.Errorf("At(%d).Color() = %v, want %v", i, p.Color(), want)
		}
	}

	// Moving a point leaves id and color alone.
	s.At(3).X, s.At(3).Y = 42, 43
	if s.At(3).ID() != 3 || s.At(3).Color().R != 3 {
		t.Error("position update changed identity")
	}
}

func TestSnapshotRestore(t *testing.T) {
	s, _ := New(4, nil)
	for i := range s.Points() {
		s.At(i).X = float64(i)
		s.At(i).Y = float64(-i)
	}

	recs := s.Snapshot()
	for i := range s.Points() {
		s.At(i).X, s.At(i).Y = 100, 100
	}
	s.Restore(recs)

	for i, p := range s.Points() {
		if p.X != float64(i) || p.Y != float64(-i) {
			t.Errorf("point %d = (%v,%v) after Restore", i, p.X, p.Y)
		}
	}
}

func TestTransitionAt(t *testing.T) {
	tr := Transition{SX: 0, SY: 10, TX: 100, TY: 30}

	tests := []struct {
		t      float64
		wx, wy float64
	}{
		{0, 0, 10},
		{1, 100, 30},
		{0.5, 50, 20},
		{0.25, 25, 15},
	}
	for _, tt := range tests {
		x, y := tr.At(tt.t)
		if x != tt.wx || y != tt.wy {
			t.Errorf("At(%v) = (%v,%v), want (%v,%v)", tt.t, x, y, tt.wx, tt.wy)
		}
	}
}

func TestBounds(t *testing.T) {
	s, _ := New(3, nil)
	s.At(0).X, s.At(0).Y = 5, -2
	s.At(1).X, s.At(1).Y = -1, 7
	s.At(2).X, s.At(2).Y = 3, 3

	minX, minY, maxX, maxY := s.Bounds()
	if minX != -1 || minY != -2 || maxX != 5 || maxY != 7 {
		t.Errorf("Bounds() = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
