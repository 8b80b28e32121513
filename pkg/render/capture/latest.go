package capture

import (
	"bytes"
	"image"
	"image/png"
	"sync"
)

// Latest keeps only the most recent frame, PNG-encoded. It is safe for one
// writer and any number of concurrent readers, which makes it the frame
// source of the HTTP preview.
type Latest struct {
	opts options
	enc  png.Encoder

	mu     sync.RWMutex
	png    []byte
	frames int
}

// NewLatest returns an empty sink.
func NewLatest(opts ...Option) *Latest {
	return &Latest{
		opts: buildOptions(opts),
		enc:  png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

func (l *Latest) Capture(img image.Image) error {
	var buf bytes.Buffer
	if err := l.enc.Encode(&buf, snapshot(img, l.opts.scale)); err != nil {
		return err
	}
	l.mu.Lock()
	l.png = buf.Bytes()
	l.frames++
	l.mu.Unlock()
	return nil
}

// PNG returns the last captured frame, or nil before the first capture. The
// returned slice must not be modified.
func (l *Latest) PNG() []byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.png
}

// Len returns the number of frames captured.
func (l *Latest) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frames
}

func (l *Latest) Close() error { return nil }
