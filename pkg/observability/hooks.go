// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies to the animation core. The tween driver, the pipeline and the
// frame capturers call the registered hooks; main registers a backend at
// startup, or leaves the no-op defaults in place.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [Metrics] is the bundled Prometheus backend and implements every hook
// interface.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := observability.NewMetrics(prometheus.DefaultRegisterer)
//	    observability.SetDriverHooks(m)
//	    observability.SetCaptureHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Driver().OnTransitionStart(ctx, "spiral", 64000)
//	// ... ticks ...
//	observability.Driver().OnTransitionComplete(ctx, "spiral", elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Driver Hooks
// =============================================================================

// DriverHooks receives events from the tween driver. Hooks are called while
// the driver holds its lock and must not call back into the driver.
type DriverHooks interface {
	// Transition events
	OnTransitionStart(ctx context.Context, layout string, points int)
	OnTransitionComplete(ctx context.Context, layout string, elapsed time.Duration)

	// OnFrame records one tick: the eased progress reached and how long the
	// renderer took. err is the render failure, if any.
	OnFrame(ctx context.Context, layout string, progress float64, renderTime time.Duration, err error)

	// OnStateChange records a state machine transition.
	OnStateChange(ctx context.Context, from, to string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from session assembly.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, layout string, points int)
	OnLayoutComplete(ctx context.Context, layout string, duration time.Duration, err error)
}

// =============================================================================
// Capture Hooks
// =============================================================================

// CaptureHooks receives events from frame capture.
type CaptureHooks interface {
	// OnFrameCaptured records one sampled frame.
	OnFrameCaptured(ctx context.Context, format string, duration time.Duration, err error)

	// OnCaptureClose records the final flush of a capture sink.
	OnCaptureClose(ctx context.Context, format string, frames int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDriverHooks is a no-op implementation of DriverHooks.
type NoopDriverHooks struct{}

func (NoopDriverHooks) OnTransitionStart(context.Context, string, int)                 {}
func (NoopDriverHooks) OnTransitionComplete(context.Context, string, time.Duration)    {}
func (NoopDriverHooks) OnFrame(context.Context, string, float64, time.Duration, error) {}
func (NoopDriverHooks) OnStateChange(context.Context, string, string)                  {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

// NoopCaptureHooks is a no-op implementation of CaptureHooks.
type NoopCaptureHooks struct{}

func (NoopCaptureHooks) OnFrameCaptured(context.Context, string, time.Duration, error) {}
func (NoopCaptureHooks) OnCaptureClose(context.Context, string, int, error)            {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	driverHooks   DriverHooks   = NoopDriverHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	captureHooks  CaptureHooks  = NoopCaptureHooks{}
	hooksMu       sync.RWMutex
)

// SetDriverHooks registers custom driver hooks.
// This should be called once at application startup before any driver is created.
func SetDriverHooks(h DriverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		driverHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCaptureHooks registers custom capture hooks.
// This should be called once at application startup before any capture sink is opened.
func SetCaptureHooks(h CaptureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		captureHooks = h
	}
}

// Driver returns the registered driver hooks.
func Driver() DriverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return driverHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Capture returns the registered capture hooks.
func Capture() CaptureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return captureHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	driverHooks = NoopDriverHooks{}
	pipelineHooks = NoopPipelineHooks{}
	captureHooks = NoopCaptureHooks{}
}
