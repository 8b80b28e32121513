package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/setanarut/apng"
)

// frameDelay is the APNG frame delay in hundredths of a second.
const frameDelay = 100 / FrameRate

// APNG buffers frames in memory and encodes them as one animated PNG when
// closed. Memory grows with every frame; scale frames down for long runs.
type APNG struct {
	path   string
	opts   options
	frames []image.Image
	closed bool
}

// NewAPNG returns a sink that writes an animated PNG to path on Close.
func NewAPNG(path string, opts ...Option) *APNG {
	return &APNG{path: path, opts: buildOptions(opts)}
}

func (a *APNG) Capture(img image.Image) error {
	if a.closed {
		return fmt.Errorf("apng %s: capture after close", a.path)
	}
	a.frames = append(a.frames, snapshot(img, a.opts.scale))
	return nil
}

// Len returns the number of buffered frames.
func (a *APNG) Len() int { return len(a.frames) }

// Close encodes the buffered frames. Closing an empty sink writes nothing.
// The file at path is replaced only when encoding succeeds.
func (a *APNG) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if len(a.frames) == 0 {
		return nil
	}
	frames := a.frames
	a.frames = nil

	delays := make([]uint16, len(frames))
	for i := range delays {
		delays[i] = frameDelay
	}
	if err := a.write(&apng.APNG{Images: frames, Delays: delays}); err != nil {
		return fmt.Errorf("apng %s: %w", a.path, err)
	}
	return nil
}

// write encodes anim into a temporary file next to path and renames it into
// place.
func (a *APNG) write(anim *apng.APNG) error {
	f, err := os.CreateTemp(filepath.Dir(a.path), ".stipple-*.png")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := apng.EncodeAll(f, anim); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
