package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func onePoint(t *testing.T, x, y float64) *point.Set {
	t.Helper()
	ps, err := point.New(1, func(int, int) color.RGBA { return red })
	if err != nil {
		t.Fatal(err)
	}
	ps.At(0).X, ps.At(0).Y = x, y
	return ps
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		pw   float64
	}{
		{"zero width", 0, 10, 2},
		{"negative height", 10, -1, 2},
		{"zero point width", 10, 10, 0},
		{"nan point width", 10, 10, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.pw); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("New() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestRenderSquares(t *testing.T) {
	for _, aa := range []bool{true, false} {
		name := "snapped"
		if aa {
			name = "antialiased"
		}
		t.Run(name, func(t *testing.T) {
			c, err := New(32, 32, 2, WithAntialias(aa))
			if err != nil {
				t.Fatal(err)
			}
			if err := c.Render(onePoint(t, 10, 10)); err != nil {
				t.Fatal(err)
			}
			img := c.Image()
			for _, p := range [][2]int{{10, 10}, {11, 10}, {10, 11}, {11, 11}} {
				if got := img.RGBAAt(p[0], p[1]); got != red {
					t.Errorf("pixel %v = %v, want %v", p, got, red)
				}
			}
			for _, p := range [][2]int{{9, 10}, {12, 10}, {10, 12}, {12, 12}} {
				if got := img.RGBAAt(p[0], p[1]); got != DefaultBackground {
					t.Errorf("pixel %v = %v, want background", p, got)
				}
			}
		})
	}
}

func TestRenderClearsPreviousFrame(t *testing.T) {
	c, _ := New(32, 32, 2)
	ps := onePoint(t, 4, 4)
	_ = c.Render(ps)
	ps.At(0).X = 20
	_ = c.Render(ps)

	if got := c.Image().RGBAAt(4, 4); got != DefaultBackground {
		t.Errorf("old position still drawn: %v", got)
	}
	if got := c.Image().RGBAAt(20, 4); got != red {
		t.Errorf("new position = %v, want red", got)
	}
}

func TestRenderSubPixelCoverage(t *testing.T) {
	c, _ := New(32, 32, 2)
	_ = c.Render(onePoint(t, 10.5, 10))

	img := c.Image()
	if got := img.RGBAAt(11, 10); got != red {
		t.Errorf("fully covered pixel = %v, want red", got)
	}
	half := img.RGBAAt(10, 10)
	if half.R < 0x70 || half.R > 0x90 {
		t.Errorf("half covered pixel red = %#x, want about 0x80", half.R)
	}
}

func TestRenderClipsAndSkips(t *testing.T) {
	c, _ := New(16, 16, 2, WithBackground(color.RGBA{B: 0xff, A: 0xff}))
	for _, pos := range [][2]float64{
		{-1, -1},
		{15.5, 15.5},
		{100, 100},
		{-100, 3},
		{math.NaN(), 3},
		{3, math.Inf(1)},
	} {
		if err := c.Render(onePoint(t, pos[0], pos[1])); err != nil {
			t.Errorf("Render(%v) = %v", pos, err)
		}
	}
	if got := c.Image().RGBAAt(8, 8); got != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("background = %v", got)
	}
}
