package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// DefaultBackground is the clear color, opaque black.
var DefaultBackground = color.RGBA{A: 0xff}

// Option configures a [Canvas].
type Option func(*Canvas)

// WithBackground sets the color the canvas is cleared to before each frame.
func WithBackground(c color.RGBA) Option {
	return func(cv *Canvas) { cv.background = c }
}

// WithAntialias toggles sub-pixel rendering (default on).
func WithAntialias(on bool) Option {
	return func(cv *Canvas) { cv.antialias = on }
}

// Canvas is a raster surface for point sets. It is not safe for concurrent
// use; the tween driver calls Render from one goroutine at a time.
type Canvas struct {
	img        *image.RGBA
	pointWidth float64
	background color.RGBA
	antialias  bool

	// Per-point scratch space for anti-aliased squares.
	cell   int
	mask   *image.Alpha
	raster *vector.Rasterizer
	fill   *image.Uniform
	bg     *image.Uniform
}

// New creates a width×height canvas that draws points as squares of side
// pointWidth.
func New(width, height int, pointWidth float64, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "canvas must have positive size, got %dx%d", width, height)
	}
	if err := errors.ValidatePositive("point width", pointWidth); err != nil {
		return nil, err
	}
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		pointWidth: pointWidth,
		background: DefaultBackground,
		antialias:  true,
		fill:       image.NewUniform(color.RGBA{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bg = image.NewUniform(c.background)

	// A square starting at a fractional offset covers at most ceil(pw)+1
	// pixels per side.
	c.cell = int(math.Ceil(pointWidth)) + 1
	c.mask = image.NewAlpha(image.Rect(0, 0, c.cell, c.cell))
	c.raster = vector.NewRasterizer(c.cell, c.cell)
	c.raster.DrawOp = draw.Src
	c.Clear()
	return c, nil
}

// Image returns the backing image. It is overwritten by the next Render.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

// Render clears the canvas and draws every point of ps. Points outside the
// canvas are clipped. Non-finite positions are skipped.
func (c *Canvas) Render(ps *point.Set) error {
	if ps == nil {
		return errors.New(errors.ErrCodeRenderFailed, "nil point set")
	}
	c.Clear()
	pts := ps.Points()
	for i := range pts {
		p := &pts[i]
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		c.fill.C = p.Color()
		if c.antialias {
			c.drawSmooth(p.X, p.Y)
		} else {
			c.drawSnapped(p.X, p.Y)
		}
	}
	return nil
}

func (c *Canvas) drawSnapped(x, y float64) {
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	w := max(1, int(math.Round(c.pointWidth)))
	r := image.Rect(x0, y0, x0+w, y0+w).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, c.fill, image.Point{}, draw.Over)
}

// drawSmooth rasterizes the square into the cell-sized coverage mask, then
// composites the point color through the mask at the cell's pixel offset.
func (c *Canvas) drawSmooth(x, y float64) {
	fx, fy := math.Floor(x), math.Floor(y)
	ox, oy := int(fx), int(fy)
	dst := image.Rect(ox, oy, ox+c.cell, oy+c.cell)
	clipped := dst.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}

	lx, ly := float32(x-fx), float32(y-fy)
	pw := float32(c.pointWidth)
	c.raster.Reset(c.cell, c.cell)
	c.raster.DrawOp = draw.Src
	c.raster.MoveTo(lx, ly)
	c.raster.LineTo(lx+pw, ly)
	c.raster.LineTo(lx+pw, ly+pw)
	c.raster.LineTo(lx, ly+pw)
	c.raster.ClosePath()
	c.raster.Draw(c.mask, c.mask.Bounds(), image.Opaque, image.Point{})

	mp := clipped.Min.Sub(dst.Min)
	draw.DrawMask(c.img, clipped, c.fill, image.Point{}, c.mask, mp, draw.Over)
}
