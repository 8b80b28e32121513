// Package render draws point sets onto a raster surface.
//
// # Overview
//
// A [Canvas] owns one [image.RGBA]. Every call to [Canvas.Render] clears the
// surface to the background color and draws each point as a filled square
// of side PointWidth at the point's position. Render has the signature of
// the tween driver's renderer, so a canvas plugs in directly:
//
//	c, err := render.New(600, 600, 2)
//	d, err := tween.New(points, seq, c, clock)
//
// Sub-pixel positions are anti-aliased with [golang.org/x/image/vector];
// [WithAntialias](false) snaps squares to whole pixels instead, which is
// several times faster and good enough for previews.
//
// Related packages:
//   - [capture]: record frames to animated PNG or PNG sequences
//   - [term]: convert a frame to terminal half-block cells
//
// [capture]: github.com/matzehuels/stipple/pkg/render/capture
// [term]: github.com/matzehuels/stipple/pkg/render/term
package render
