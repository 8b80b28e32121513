package term

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		b                image.Rectangle
		maxCols, maxRows int
		cols, rows       int
	}{
		{"square limited by rows", image.Rect(0, 0, 600, 600), 200, 40, 80, 40},
		{"square limited by cols", image.Rect(0, 0, 600, 600), 60, 100, 60, 30},
		{"wide", image.Rect(0, 0, 800, 200), 80, 50, 80, 10},
		{"empty", image.Rectangle{}, 80, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := Fit(tt.b, tt.maxCols, tt.maxRows)
			if cols != tt.cols || rows != tt.rows {
				t.Errorf("Fit() = %dx%d, want %dx%d", cols, rows, tt.cols, tt.rows)
			}
		})
	}
}

func TestRenderShape(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	r := NewRenderer()
	out := r.Render(img, 10, 5)

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, halfBlock); n != 10 {
			t.Errorf("line %d has %d cells, want 10", i, n)
		}
	}
	if len(r.styles) != 1 {
		t.Errorf("uniform frame cached %d styles, want 1", len(r.styles))
	}
	if r.Render(img, 0, 5) != "" {
		t.Error("zero-width render is not empty")
	}
}

func TestHex(t *testing.T) {
	if got := hex(color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff}); got != "#440154" {
		t.Errorf("hex() = %s", got)
	}
}
