// Package pkg provides the core libraries for Stipple point animations.
//
// # Overview
//
// Stipple moves a fixed set of colored points between geometric layouts.
// Every layout writes a destination for every point; a transition blends each
// point from where it is to where the next layout wants it, in eased time.
// The pkg directory is organized into four main areas:
//
//  1. Model - points, layouts and the sequence they are visited in
//  2. Motion - easing curves and the transition driver
//  3. Output - rasterizing, frame capture and terminal conversion
//  4. Orchestration - configuration, sessions, headless renders and caching
//
// # Architecture
//
// The typical data flow through Stipple:
//
//	config file / flags
//	         ↓
//	    [config] package (validate, build generators)
//	         ↓
//	    [pipeline] package (session: points + sequence + canvas)
//	         ↓
//	    [tween] package (driver: snapshot → layout → blend per tick)
//	         ↓
//	    [render] package (canvas) → [render/capture] or [render/term]
//	         ↓
//	    APNG / PNG frames / terminal / HTTP
//
// # Quick Start
//
// Render one pass over the default sequence to an animated PNG:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Config: config.Default(),
//	    Output: "stipple.png",
//	    Scale:  0.5,
//	})
//
// Drive the animation yourself:
//
//	sess, _ := runner.NewSession(ctx, cfg)
//	clock := tween.NewManual()
//	d, _ := sess.NewDriver(sess.Canvas, clock)
//	_ = d.Start(ctx)
//	for range 160 {
//	    clock.Advance(cfg.FrameInterval())
//	}
//
// # Main Packages
//
// ## Model
//
// [point] - The point set: positions, colors and transition records.
//
// [layout] - Generators that assign a destination to every point:
// phyllotaxis, spiral, random, and the composite sacred-geometry figures
// (flower of life, tree of life, Metatron's cube) built from rings and lines
// over a hexagonal lattice. The range allocator splits the point set into
// contiguous blocks, one per figure element.
//
// [sequence] - Cyclic cursor over the layouts of an animation.
//
// [palette] - Named color ramps that color points by index.
//
// ## Motion
//
// [ease] - Easing curves with the contract f(0)=0, f(1)=1.
//
// [tween] - The transition driver: an explicit Idle/Transitioning state
// machine stepped by a wall-clock [tween.Ticker] or a [tween.Manual] clock.
//
// ## Output
//
// [render] - Canvas that draws a point set as filled squares.
//
// [render/capture] - Frame sinks: animated PNG, numbered PNG files, and the
// latest frame for HTTP clients.
//
// [render/term] - Half-block conversion for terminal previews.
//
// ## Orchestration
//
// [config] - TOML/YAML configuration with validation and defaults.
//
// [pipeline] - Sessions and headless renders used by every CLI surface.
//
// [cache] - Render cache keyed by configuration.
//
// [observability] - Hooks for driver, pipeline and capture events, with a
// Prometheus implementation.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information stamped at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [point]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/point
// [layout]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/layout
// [sequence]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/sequence
// [palette]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/palette
// [ease]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/ease
// [tween]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/tween
// [tween.Ticker]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/tween#Ticker
// [tween.Manual]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/tween#Manual
// [render]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/render
// [render/capture]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/render/capture
// [render/term]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/render/term
// [config]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stipple/pkg/buildinfo
package pkg
