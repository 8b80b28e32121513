package capture

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGDir writes each frame to dir as frame-000000.png, frame-000001.png, ...
type PNGDir struct {
	dir  string
	opts options
	next int
	enc  png.Encoder
}

// NewPNGDir creates dir if needed and returns a sink writing into it.
func NewPNGDir(dir string, opts ...Option) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &PNGDir{
		dir:  dir,
		opts: buildOptions(opts),
		enc:  png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

func (p *PNGDir) Capture(img image.Image) error {
	path := filepath.Join(p.dir, fmt.Sprintf("frame-%06d.png", p.next))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := p.enc.Encode(w, snapshot(img, p.opts.scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	p.next++
	return nil
}

// Len returns the number of frames written.
func (p *PNGDir) Len() int { return p.next }

func (p *PNGDir) Close() error { return nil }
