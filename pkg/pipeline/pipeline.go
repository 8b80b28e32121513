// Package pipeline assembles and runs stipple animations.
//
// This package is shared by every CLI surface. It turns a validated
// [config.Config] into a [Session] (a colored point set settled into its
// initial phyllotaxis, the layout sequencer and a drawing canvas) and runs
// headless renders that step a manual clock at the capture frame rate.
//
// # Architecture
//
// A session is assembled in three stages:
//
//  1. Points: N points colored by the palette and scattered at random
//  2. Settle: the scatter is laid out as a phyllotaxis and drawn once
//  3. Drive: a [tween.Driver] animates through the configured sequence
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Config:      cfg,
//	    Transitions: 5,
//	    Output:      "stipple.png",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Frames, "frames")
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale keeps captured frames at canvas size.
	DefaultScale = 1.0

	// FormatAPNG and FormatPNG label the capture sinks in hooks and results.
	FormatAPNG = "apng"
	FormatPNG  = "png"

	// DefaultCacheTTL is how long a cached render is reused.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// renderCacheVersion invalidates cached renders when frame output changes.
	renderCacheVersion = 1
)

// validOutputExts are the file extensions accepted for the animated output.
var validOutputExts = map[string]bool{
	".png":  true,
	".apng": true,
}

// =============================================================================
// Options - Headless Render Configuration
// =============================================================================

// Options configures a headless render.
type Options struct {
	// Config holds the session settings. Nil means config.Default().
	Config *config.Config

	// Transitions is the number of completed transitions to render. Zero
	// renders one full pass over the sequence.
	Transitions int

	// Output is the animated PNG path. FramesDir receives one PNG per frame.
	// At least one must be set.
	Output    string
	FramesDir string

	// Scale resizes captured frames.
	Scale float64

	// Logger defaults to a discarding logger.
	Logger *log.Logger

	// OnTransition, if set, is called after each completed transition.
	OnTransition func(done, total int)

	validated bool
}

// Result describes a finished render.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Frames is the number of captured frames.
	Frames int

	// Transitions is the number of completed transitions.
	Transitions int

	// Artifacts lists the written outputs.
	Artifacts []string

	// Cached reports that the output was copied from the render cache.
	Cached bool

	Stats Stats
}

// Stats contains render timings.
type Stats struct {
	Points      int
	SetupTime   time.Duration
	AnimateTime time.Duration
	EncodeTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateOutput checks that path names a PNG file.
func ValidateOutput(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !validOutputExts[ext] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid output %q (must end in .png or .apng)", path)
	}
	return nil
}

// ValidateScale checks a frame scale factor.
func ValidateScale(s float64) error {
	if err := errors.ValidatePositive("scale", s); err != nil {
		return err
	}
	if s > 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be at most 4, got %v", s)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if err := o.Config.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.Output == "" && o.FramesDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "an output file or a frames directory is required")
	}
	if o.Output != "" {
		if err := ValidateOutput(o.Output); err != nil {
			return err
		}
	}
	if o.Transitions < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "transitions must not be negative, got %d", o.Transitions)
	}
	if o.Transitions == 0 {
		o.Transitions = len(o.Config.Sequence)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FramesPerTransition is the number of frames one transition takes at the
// configured frame rate.
func (o *Options) FramesPerTransition() int {
	interval := o.Config.FrameInterval()
	return int((o.Config.Duration + interval - 1) / interval)
}
