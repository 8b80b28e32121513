package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordDriverEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ctx := context.Background()

	m.OnStateChange(ctx, "idle", "transitioning")
	m.OnTransitionStart(ctx, "spiral", 100)
	m.OnFrame(ctx, "spiral", 0.25, time.Millisecond, nil)
	m.OnFrame(ctx, "spiral", 0.75, time.Millisecond, nil)
	m.OnFrame(ctx, "spiral", 1, time.Millisecond, errors.New("surface lost"))
	m.OnTransitionComplete(ctx, "spiral", 8*time.Second)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ok frames", testutil.ToFloat64(m.frames.WithLabelValues("spiral", "ok")), 2},
		{"failed frames", testutil.ToFloat64(m.frames.WithLabelValues("spiral", "error")), 1},
		{"transitions", testutil.ToFloat64(m.transitions.WithLabelValues("spiral")), 1},
		{"progress", testutil.ToFloat64(m.progress), 1},
		{"state transitioning", testutil.ToFloat64(m.state.WithLabelValues("transitioning")), 1},
		{"state idle", testutil.ToFloat64(m.state.WithLabelValues("idle")), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMetricsRecordCapture(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnFrameCaptured(ctx, "png", time.Millisecond, nil)
	m.OnFrameCaptured(ctx, "png", time.Millisecond, errors.New("disk full"))
	m.OnCaptureClose(ctx, "png", 1, nil)

	if got := testutil.ToFloat64(m.capturedFrames.WithLabelValues("png")); got != 1 {
		t.Errorf("captured = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.captureFailures.WithLabelValues("png")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
}

func TestNewMetricsRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	defer func() {
		if recover() == nil {
			t.Error("second NewMetrics on the same registry should panic")
		}
	}()
	NewMetrics(reg)
}
