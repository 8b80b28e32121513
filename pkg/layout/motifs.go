package layout

import (
	"sort"

	"github.com/matzehuels/stipple/pkg/errors"
)

// FlowerOfLife lists 61 anchors of the default lattice in rings around the
// center anchor 76: the center, then rings of 6, 12, 18 and 24 anchors.
// Prefixes of 1, 7, 19 and 37 anchors are complete smaller flowers.
var FlowerOfLife = []int{
	76,
	68, 58, 66, 84, 94, 86,
	78, 60, 50, 40, 48, 56, 74, 92, 102, 112, 104, 96,
	70, 52, 42, 32, 22, 30, 38, 46, 64, 82, 100, 110, 120, 130, 122, 114, 106, 88,
	80, 62, 44, 34, 24, 14, 4, 12, 20, 28, 36, 54, 72, 90, 108, 118, 128, 138, 148, 140, 132, 124, 116, 98,
}

// Tree-of-life sephirot on the default lattice.
const (
	kether    = 4
	chokmah   = 24
	binah     = 20
	chesed    = 60
	geburah   = 56
	tiphareth = 76
	netzach   = 96
	hod       = 92
	yesod     = 112
	malkuth   = 148
)

// TreeOfLife is the ten sephirot anchors.
var TreeOfLife = []int{tiphareth, chesed, geburah, hod, netzach, yesod, kether, chokmah, binah, malkuth}

// TreeOfLifePaths are the 22 paths between the sephirot.
var TreeOfLifePaths = []Line{
	{kether, chokmah}, {kether, binah}, {kether, tiphareth},
	{chokmah, binah}, {chokmah, tiphareth}, {chokmah, chesed},
	{binah, tiphareth}, {binah, geburah},
	{chesed, geburah}, {chesed, tiphareth}, {chesed, netzach},
	{geburah, tiphareth}, {geburah, hod},
	{tiphareth, netzach}, {tiphareth, yesod}, {tiphareth, hod},
	{netzach, hod}, {netzach, yesod}, {netzach, malkuth},
	{hod, yesod}, {hod, malkuth},
	{yesod, malkuth},
}

// Metatron's cube anchors: the center, an inner hexagon two lattice radii
// out and an outer hexagon four radii out, each listed clockwise from the top.
var (
	metaInner = []int{40, 60, 96, 112, 92, 56}
	metaOuter = []int{4, 44, 116, 148, 108, 36}
)

// MetatronsCube lists the 13 circles of the cube. The center is listed twice
// so its ring is drawn with twice the points.
var MetatronsCube = []int{76, 76, 60, 44, 56, 36, 92, 108, 96, 116, 112, 148, 40, 4}

// MetatronsCubeLines are the 45 segments of the cube: both hexagons, both
// hexagrams, the spokes between them, the diagonals from each outer anchor to
// its neighboring inner anchors, and the three long diagonals.
var MetatronsCubeLines = metaLines()

func metaLines() []Line {
	var lines []Line
	ring := func(ids []int, step int) {
		for i := range ids {
			lines = append(lines, Line{ids[i], ids[(i+step)%len(ids)]})
		}
	}
	ring(metaOuter, 1)
	ring(metaOuter, 2)
	ring(metaInner, 1)
	ring(metaInner, 2)
	for i := range metaOuter {
		lines = append(lines, Line{metaOuter[i], metaInner[i]})
	}
	for i := range metaOuter {
		lines = append(lines,
			Line{metaOuter[i], metaInner[(i+1)%6]},
			Line{metaOuter[i], metaInner[(i+5)%6]},
		)
	}
	for i := 0; i < 3; i++ {
		lines = append(lines, Line{metaOuter[i], metaOuter[i+3]})
	}
	return lines
}

var symbolPresets = map[string][]int{
	"flower":    FlowerOfLife,
	"flower-1":  FlowerOfLife[:1],
	"flower-7":  FlowerOfLife[:7],
	"flower-19": FlowerOfLife[:19],
	"flower-37": FlowerOfLife[:37],
	"tree":      TreeOfLife,
	"meta":      MetatronsCube,
}

var linePresets = map[string][]Line{
	"none": nil,
	"tree": TreeOfLifePaths,
	"meta": MetatronsCubeLines,
}

// Symbols returns a copy of the named symbol preset.
func Symbols(name string) ([]int, error) {
	s, ok := symbolPresets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown symbol preset %q (valid: %v)", name, presetNames(symbolPresets))
	}
	return append([]int(nil), s...), nil
}

// Lines returns a copy of the named line preset.
func Lines(name string) ([]Line, error) {
	l, ok := linePresets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown line preset %q (valid: %v)", name, presetNames(linePresets))
	}
	return append([]Line(nil), l...), nil
}

func presetNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
