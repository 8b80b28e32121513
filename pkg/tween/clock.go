package tween

import (
	"sync"
	"time"
)

// Scheduler starts periodic clocks. fn receives the time elapsed since the
// clock was scheduled. Calls to one clock's fn never overlap.
type Scheduler interface {
	Schedule(fn func(elapsed time.Duration)) Timer
}

// Timer stops a scheduled clock. After Stop returns, fn is not invoked again
// unless a call was already in progress. Stop is idempotent.
type Timer interface {
	Stop()
}

// DefaultFrameInterval is the tick period of a [Ticker] with no interval set,
// 20 frames per second.
const DefaultFrameInterval = 50 * time.Millisecond

// Ticker is a wall-clock scheduler. Each scheduled clock runs its callbacks
// on its own goroutine.
type Ticker struct {
	Interval time.Duration
}

// Schedule starts a goroutine that calls fn every Interval.
func (t Ticker) Schedule(fn func(elapsed time.Duration)) Timer {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	tt := &tickerTimer{done: make(chan struct{})}
	start := time.Now()
	go func() {
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-tt.done:
				return
			case now := <-tk.C:
				// Stop may race with a pending tick.
				select {
				case <-tt.done:
					return
				default:
				}
				fn(now.Sub(start))
			}
		}
	}()
	return tt
}

type tickerTimer struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTimer) Stop() { t.once.Do(func() { close(t.done) }) }

// Manual is a frame clock advanced explicitly by the caller. It drives
// headless rendering, the terminal preview and tests.
//
// Advance invokes callbacks synchronously on the caller's goroutine. A clock
// scheduled from inside a callback starts at the current time and receives
// its first tick on the next Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	clocks []*manualClock
}

type manualClock struct {
	m       *Manual
	start   time.Duration
	fn      func(time.Duration)
	stopped bool
}

// NewManual returns a manual clock at time zero.
func NewManual() *Manual { return &Manual{} }

func (m *Manual) Schedule(fn func(elapsed time.Duration)) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &manualClock{m: m, start: m.now, fn: fn}
	m.clocks = append(m.clocks, c)
	return c
}

// Advance moves time forward by d and ticks every clock that is running.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	live := make([]*manualClock, len(m.clocks))
	copy(live, m.clocks)
	m.mu.Unlock()

	for _, c := range live {
		m.mu.Lock()
		stopped := c.stopped
		m.mu.Unlock()
		if !stopped {
			c.fn(now - c.start)
		}
	}
}

// Now returns the total time advanced so far.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Active returns the number of clocks that have not been stopped.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clocks)
}

func (c *manualClock) Stop() {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	for i, other := range c.m.clocks {
		if other == c {
			c.m.clocks = append(c.m.clocks[:i], c.m.clocks[i+1:]...)
			break
		}
	}
}
