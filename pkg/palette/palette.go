// Package palette assigns colors to points by id.
//
// A [Ramp] maps a position in [0,1] to a color. [Colorer] spreads a ramp over
// the ids of a point set; point colors never change after the set is
// created, so a transition shows where each point goes.
package palette

import (
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/point"
)

// Default is the ramp used when none is configured.
const Default = "viridis"

// Ramp returns the color at position t in [0,1].
type Ramp func(t float64) color.RGBA

var (
	viridisStops = mustStops(
		"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
		"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725",
	)
	plasmaStops = mustStops(
		"#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778",
		"#e16462", "#f2844b", "#fca636", "#fcce25", "#f0f921",
	)
	greysStops = mustStops("#ffffff", "#000000")
)

// Viridis is the perceptually uniform blue-green-yellow ramp.
func Viridis(t float64) color.RGBA { return sample(viridisStops, t) }

// Plasma is the blue-magenta-yellow ramp.
func Plasma(t float64) color.RGBA { return sample(plasmaStops, t) }

// Greys runs from white to black.
func Greys(t float64) color.RGBA { return sample(greysStops, t) }

// Rainbow sweeps the hue circle once.
func Rainbow(t float64) color.RGBA {
	return rgba(colorful.Hsv(360*clamp(t), 0.8, 0.95))
}

var ramps = map[string]Ramp{
	"viridis": Viridis,
	"plasma":  Plasma,
	"rainbow": Rainbow,
	"greys":   Greys,
}

// Lookup returns the named ramp.
func Lookup(name string) (Ramp, error) {
	if name == "" {
		name = Default
	}
	r, ok := ramps[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown palette %q (valid: %v)", name, Names())
	}
	return r, nil
}

// Names lists the registered ramps in sorted order.
func Names() []string {
	names := make([]string, 0, len(ramps))
	for n := range ramps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Colorer spreads r over ids 0..n-1. With reversed set, id n-1 gets the
// start of the ramp and id 0 its end.
func Colorer(r Ramp, reversed bool) point.Colorer {
	return func(id, n int) color.RGBA {
		t := 0.0
		if n > 1 {
			t = float64(id) / float64(n-1)
		}
		if reversed {
			t = 1 - t
		}
		return r(t)
	}
}

// sample blends between the two stops around t in Lab space.
func sample(stops []colorful.Color, t float64) color.RGBA {
	t = clamp(t) * float64(len(stops)-1)
	i := int(math.Floor(t))
	if i >= len(stops)-1 {
		return rgba(stops[len(stops)-1])
	}
	if f := t - float64(i); f > 0 {
		return rgba(stops[i].BlendLab(stops[i+1], f))
	}
	return rgba(stops[i])
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return math.Max(0, math.Min(1, t))
}

func mustStops(hex ...string) []colorful.Color {
	out := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
