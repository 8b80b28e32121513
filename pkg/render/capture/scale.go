package capture

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// snapshot returns an RGBA copy of img, resized by scale.
func snapshot(img image.Image, scale float64) *image.RGBA {
	b := img.Bounds()
	if scale == 1 {
		out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out
	}
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
