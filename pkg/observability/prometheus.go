package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports driver, pipeline and capture events as Prometheus series.
// It implements [DriverHooks], [PipelineHooks] and [CaptureHooks].
type Metrics struct {
	transitions     *prometheus.CounterVec
	transitionTime  *prometheus.HistogramVec
	frames          *prometheus.CounterVec
	renderTime      *prometheus.HistogramVec
	progress        prometheus.Gauge
	state           *prometheus.GaugeVec
	layoutTime      *prometheus.HistogramVec
	capturedFrames  *prometheus.CounterVec
	captureTime     *prometheus.HistogramVec
	captureFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. It panics
// if any collector is already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stipple_transitions_total",
				Help: "Completed layout transitions.",
			},
			[]string{"layout"},
		),
		transitionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stipple_transition_duration_seconds",
				Help:    "Clock time from transition start to completion.",
				Buckets: []float64{1, 2, 4, 8, 16, 32},
			},
			[]string{"layout"},
		),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stipple_frames_total",
				Help: "Rendered frames by result.",
			},
			[]string{"layout", "result"},
		),
		renderTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stipple_render_duration_seconds",
				Help:    "Time spent drawing one frame.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"layout"},
		),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stipple_transition_progress",
			Help: "Eased progress of the active transition.",
		}),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stipple_driver_state",
				Help: "1 for the driver's current state, 0 otherwise.",
			},
			[]string{"state"},
		),
		layoutTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stipple_layout_duration_seconds",
				Help:    "Time to compute one layout outside of a transition.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"layout", "result"},
		),
		capturedFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stipple_captured_frames_total",
				Help: "Frames written to capture sinks.",
			},
			[]string{"format"},
		),
		captureTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stipple_capture_duration_seconds",
				Help:    "Time to sample and store one frame.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"format"},
		),
		captureFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stipple_capture_failures_total",
				Help: "Capture sink errors.",
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(
		m.transitions, m.transitionTime,
		m.frames, m.renderTime, m.progress, m.state,
		m.layoutTime,
		m.capturedFrames, m.captureTime, m.captureFailures,
	)
	return m
}

func (m *Metrics) OnTransitionStart(_ context.Context, _ string, _ int) {
	m.progress.Set(0)
}

func (m *Metrics) OnTransitionComplete(_ context.Context, layout string, elapsed time.Duration) {
	m.transitions.WithLabelValues(layout).Inc()
	m.transitionTime.WithLabelValues(layout).Observe(elapsed.Seconds())
}

func (m *Metrics) OnFrame(_ context.Context, layout string, progress float64, renderTime time.Duration, err error) {
	m.frames.WithLabelValues(layout, result(err)).Inc()
	m.renderTime.WithLabelValues(layout).Observe(renderTime.Seconds())
	m.progress.Set(progress)
}

func (m *Metrics) OnStateChange(_ context.Context, from, to string) {
	m.state.WithLabelValues(from).Set(0)
	m.state.WithLabelValues(to).Set(1)
}

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, layout string, duration time.Duration, err error) {
	m.layoutTime.WithLabelValues(layout, result(err)).Observe(duration.Seconds())
}

func (m *Metrics) OnFrameCaptured(_ context.Context, format string, duration time.Duration, err error) {
	if err != nil {
		m.captureFailures.WithLabelValues(format).Inc()
		return
	}
	m.capturedFrames.WithLabelValues(format).Inc()
	m.captureTime.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *Metrics) OnCaptureClose(_ context.Context, format string, _ int, err error) {
	if err != nil {
		m.captureFailures.WithLabelValues(format).Inc()
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
