// Package tween animates a point set from one layout to the next.
//
// A [Driver] owns the transition protocol. Beginning a transition snapshots
// every point's current position, lets the target generator overwrite the
// positions with destinations, records both ends in a fresh slice of
// [point.Transition] records, and starts a clock. Each tick blends source and
// destination linearly in eased time and hands the set to the [Renderer].
// When eased progress reaches 1 the clock is stopped, the records are
// dropped, the [sequence.Sequencer] advances and the next transition begins.
//
// The driver is an explicit state machine over [Idle] and [Transitioning];
// see the transition table in state.go. All state, including the point set
// during a tick, is guarded by one mutex, so the renderer always observes a
// fully written frame.
//
// # Usage
//
//	clock := tween.NewManual()
//	d, err := tween.New(points, seq, renderer, clock,
//	    tween.WithDuration(8*time.Second),
//	    tween.WithEasing(ease.CubicInOut),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := d.Start(ctx); err != nil {
//	    return err
//	}
//	for range frames {
//	    clock.Advance(50 * time.Millisecond)
//	}
package tween

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/ease"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/point"
	"github.com/matzehuels/stipple/pkg/sequence"
)

// Renderer draws the point set. It is called synchronously once per tick,
// after every position has been written, and must not retain ps.
type Renderer interface {
	Render(ps *point.Set) error
}

// RenderFunc adapts a function to [Renderer].
type RenderFunc func(ps *point.Set) error

func (f RenderFunc) Render(ps *point.Set) error { return f(ps) }

// Status is a point-in-time view of the driver.
type Status struct {
	State     string  `json:"state"`
	Layout    string  `json:"layout"`
	Index     int     `json:"index"`
	Progress  float64 `json:"progress"`
	Completed int     `json:"completed"`
	Error     string  `json:"error,omitempty"`
}

// Driver runs transitions between the layouts of a sequencer.
type Driver struct {
	ps       *point.Set
	seq      *sequence.Sequencer
	renderer Renderer
	sched    Scheduler

	duration time.Duration
	ease     ease.Func
	logger   *log.Logger
	hooks    observability.DriverHooks

	mu        sync.Mutex
	ctx       context.Context
	state     State
	recs      []point.Transition
	timer     Timer
	gen       uint64
	layout    string
	progress  float64
	completed int
	err       error
	failed    chan struct{}
}

// New creates an idle driver. Configuration errors (non-positive duration,
// an easing curve that breaks the easing contract, missing collaborators)
// are reported here, before any point is touched.
func New(ps *point.Set, seq *sequence.Sequencer, r Renderer, s Scheduler, opts ...Option) (*Driver, error) {
	if ps == nil || seq == nil || r == nil || s == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "driver needs a point set, a sequencer, a renderer and a scheduler")
	}
	d := &Driver{
		ps:       ps,
		seq:      seq,
		renderer: r,
		sched:    s,
		duration: DefaultDuration,
		ease:     ease.CubicInOut,
		logger:   log.Default(),
		hooks:    observability.Driver(),
		ctx:      context.Background(),
		failed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.duration <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "transition duration must be positive, got %s", d.duration)
	}
	if err := ease.Validate(d.ease); err != nil {
		return nil, err
	}
	return d, nil
}

// Start begins a transition towards the sequencer's current layout.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.beginExternal(ctx, d.seq.Current())
}

// Begin starts a transition towards g. It fails with TRANSITION_ACTIVE while
// another transition runs; call Stop first. If g fails, every point is
// restored to its position before the call.
func (d *Driver) Begin(ctx context.Context, g layout.Generator) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.beginExternal(ctx, g)
}

// Skip abandons the active transition, if any, leaving points where they
// are, advances the sequencer and begins a transition to the next layout.
func (d *Driver) Skip(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	return d.beginExternal(ctx, d.seq.Advance())
}

// Stop halts the clock. Points keep their last interpolated positions and the
// transition records are discarded. Stopping an idle driver does nothing.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Wait blocks until ctx is done or a tick fails. It returns the failure, or
// nil when ctx ended first.
func (d *Driver) Wait(ctx context.Context) error {
	d.mu.Lock()
	failed, err := d.failed, d.err
	d.mu.Unlock()
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return nil
	case <-failed:
		return d.Err()
	}
}

// State returns the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err returns the error that last stopped the driver, if any. It is cleared
// when a new transition is started from outside.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Completed returns the number of transitions that reached t = 1.
func (d *Driver) Completed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.completed
}

// Status returns a snapshot of the driver for display.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := Status{
		State:     d.state.String(),
		Layout:    d.layout,
		Index:     d.seq.Index(),
		Progress:  d.progress,
		Completed: d.completed,
	}
	if d.err != nil {
		st.Error = errors.UserMessage(d.err)
	}
	return st
}

func (d *Driver) beginExternal(ctx context.Context, g layout.Generator) error {
	if _, ok := next(d.state, evBegin); !ok {
		return errors.New(errors.ErrCodeTransitionActive,
			"cannot begin %s: transition to %s is still running", g.Name(), d.layout)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	d.ctx = ctx
	if d.err != nil {
		d.err = nil
		d.failed = make(chan struct{})
	}
	return d.beginLocked(g)
}

// beginLocked runs the transition protocol up to starting the clock. The
// caller holds d.mu and the driver is idle.
func (d *Driver) beginLocked(g layout.Generator) error {
	recs := d.ps.Snapshot()
	if err := g.Apply(d.ps); err != nil {
		d.ps.Restore(recs)
		return fmt.Errorf("begin %s: %w", g.Name(), err)
	}
	for i, p := range d.ps.Points() {
		recs[i].TX, recs[i].TY = p.X, p.Y
	}
	// Points stay at their sources until the first tick.
	d.ps.Restore(recs)

	if err := d.fire(evBegin); err != nil {
		return err
	}
	d.recs = recs
	d.gen++
	d.layout = g.Name()
	d.progress = 0

	d.logger.Debug("begin transition", "layout", d.layout, "points", d.ps.Len(), "duration", d.duration)
	d.hooks.OnTransitionStart(d.ctx, d.layout, d.ps.Len())

	gen := d.gen
	d.timer = d.sched.Schedule(func(elapsed time.Duration) { d.tick(gen, elapsed) })
	return nil
}

// tick handles one clock callback. Ticks from a clock that has since been
// stopped carry an old generation and are dropped.
func (d *Driver) tick(gen uint64, elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	if err := d.fire(evTick); err != nil {
		return
	}

	t := ease.Progress(d.ease, float64(elapsed), float64(d.duration))
	pts := d.ps.Points()
	for i := range pts {
		pts[i].X, pts[i].Y = d.recs[i].At(t)
	}
	d.progress = t

	start := time.Now()
	err := d.renderer.Render(d.ps)
	d.hooks.OnFrame(d.ctx, d.layout, t, time.Since(start), err)
	if err != nil {
		d.failLocked(errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s at t=%.3f", d.layout, t))
		return
	}
	if t < 1 {
		return
	}

	d.timer.Stop()
	d.timer = nil
	d.recs = nil
	if err := d.fire(evComplete); err != nil {
		d.failLocked(err)
		return
	}
	d.completed++
	d.logger.Debug("transition complete", "layout", d.layout, "elapsed", elapsed)
	d.hooks.OnTransitionComplete(d.ctx, d.layout, elapsed)

	if err := d.beginLocked(d.seq.Advance()); err != nil {
		d.failLocked(err)
	}
}

func (d *Driver) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.recs = nil
	if err := d.fire(evStop); err != nil {
		d.logger.Warn("stop", "err", err)
	}
}

// failLocked stops the clock, records err and wakes Wait. Points keep the
// positions of the last completed write.
func (d *Driver) failLocked(err error) {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.recs = nil
	if d.state == Transitioning {
		_ = d.fire(evFail)
	}
	if d.err == nil {
		close(d.failed)
	}
	d.err = err
	d.logger.Error("animation stopped", "layout", d.layout, "err", err)
}

func (d *Driver) fire(ev Event) error {
	to, ok := next(d.state, ev)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "no transition from %s on %s", d.state, ev)
	}
	if to != d.state {
		d.hooks.OnStateChange(d.ctx, d.state.String(), to.String())
	}
	d.state = to
	return nil
}
