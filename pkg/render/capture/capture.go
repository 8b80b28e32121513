// Package capture records rendered frames.
//
// A [Sink] receives one image per redraw. Sinks copy what they keep, so the
// caller may reuse its surface for the next frame. Two sinks are provided:
//
//   - [APNG] buffers frames and writes one animated PNG on Close
//   - [PNGDir] writes every frame as a numbered PNG file as it arrives
//
// [Recorder] wraps a [render.Canvas] and forwards each drawn frame to a sink,
// so it can stand in for the canvas as the tween driver's renderer.
package capture

import (
	"context"
	"image"
	"time"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/point"
	"github.com/matzehuels/stipple/pkg/render"
)

// FrameRate is the capture rate in frames per second.
const FrameRate = 20

// Sink consumes frames.
type Sink interface {
	Capture(img image.Image) error
	Close() error
}

// Option configures a sink.
type Option func(*options)

type options struct {
	scale float64
}

// WithScale resizes frames by factor s before they are stored. Values <= 0
// and 1 keep the original size.
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

func buildOptions(opts []Option) options {
	o := options{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 1
	}
	return o
}

// Multi fans every frame out to all sinks. Capture and Close visit every
// sink and return the first error.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) Capture(img image.Image) error {
	var first error
	for _, s := range m {
		if err := s.Capture(img); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Recorder draws each frame on a canvas and hands the result to a sink.
type Recorder struct {
	Canvas *render.Canvas
	Sink   Sink
	// Format labels the sink in capture hooks.
	Format string

	frames int
}

// Render draws ps and captures the canvas. A capture failure is reported
// with CAPTURE_FAILED, which stops the driver like any render failure.
func (r *Recorder) Render(ps *point.Set) error {
	if err := r.Canvas.Render(ps); err != nil {
		return err
	}
	start := time.Now()
	err := r.Sink.Capture(r.Canvas.Image())
	observability.Capture().OnFrameCaptured(context.Background(), r.Format, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCaptureFailed, err, "capture frame %d", r.frames)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int { return r.frames }

// Close flushes the sink.
func (r *Recorder) Close() error {
	err := r.Sink.Close()
	observability.Capture().OnCaptureClose(context.Background(), r.Format, r.frames, err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCaptureFailed, err, "close %s capture", r.Format)
	}
	return nil
}
