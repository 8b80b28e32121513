// Package term turns raster frames into terminal text.
//
// Each terminal cell shows two vertically stacked pixels: the upper half
// block "▀" takes the top pixel as foreground color and the bottom pixel as
// background color. Frames are downsampled with golang.org/x/image/draw and
// styled with lipgloss.
package term

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const halfBlock = "▀"

// Fit returns the largest cell grid no bigger than maxCols×maxRows that keeps
// the aspect ratio of b. Cells are one pixel wide and two pixels tall.
func Fit(b image.Rectangle, maxCols, maxRows int) (cols, rows int) {
	if b.Dx() <= 0 || b.Dy() <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = cols * b.Dy() / b.Dx() / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * b.Dx() / b.Dy()
	}
	return max(1, cols), max(1, rows)
}

// Renderer converts frames to half-block text. It caches one lipgloss style
// per color pair, so repeated frames with a small palette stay cheap.
type Renderer struct {
	buf    *image.RGBA
	styles map[[2]color.RGBA]string
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[[2]color.RGBA]string)}
}

// Render downsamples img to cols×rows cells and returns the rows joined by
// newlines.
func (r *Renderer) Render(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	want := image.Rect(0, 0, cols, rows*2)
	if r.buf == nil || r.buf.Bounds() != want {
		r.buf = image.NewRGBA(want)
	}
	draw.ApproxBiLinear.Scale(r.buf, want, img, img.Bounds(), draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := r.buf.RGBAAt(x, 2*y)
			bottom := r.buf.RGBAAt(x, 2*y+1)
			sb.WriteString(r.cell(top, bottom))
		}
	}
	return sb.String()
}

func (r *Renderer) cell(top, bottom color.RGBA) string {
	key := [2]color.RGBA{top, bottom}
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom))).
		Render(halfBlock)
	if len(r.styles) < 1<<16 {
		r.styles[key] = s
	}
	return s
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
