// Package layout computes target positions for every point of a [point.Set].
//
// Each [Generator] overwrites the X and Y of all N points with the
// destination of one geometric arrangement. Generators are pure: the same
// configuration applied to a set of the same size always produces the same
// coordinates (the [Random] scatter being the one deliberate exception).
//
// # Generators
//
//   - [Phyllotaxis]: sunflower seed arrangement around an offset
//   - [Spiral]: Archimedean spiral from the canvas center outwards
//   - [Random]: uniform scatter, used for the initial state
//   - [NewFlower], [NewTree], [NewMeta]: composite motifs built on a
//     [Lattice] of anchors (rings around anchors, straight connecting lines
//     and an outer bounding circle)
//
// # Range Accounting
//
// Composite motifs split the point array into contiguous [Range]s, one per
// ring, line or bounding circle. The ranges are handed out by an [Allocator]
// when the composite is constructed, and construction fails with
// RANGE_MISMATCH unless the ranges cover [0,N) exactly. A composite that
// constructs successfully therefore assigns a position to every point.
//
//	lat, _ := layout.NewLattice(layout.DefaultLatticeRadius(600, 2), 9, 17, 600, 600)
//	flower, err := layout.NewFlower(layout.CompositeConfig{
//	    Canvas:  layout.Canvas{Width: 600, Height: 600, PointWidth: 4},
//	    Lattice: lat,
//	    Symbols: layout.FlowerOfLife,
//	}, 64000)
//	if err != nil {
//	    // symbols and block size do not add up to 64000 points
//	}
//	flower.Apply(points)
package layout
