package tween

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/ease"
	"github.com/matzehuels/stipple/pkg/observability"
)

// DefaultDuration is the length of one transition.
const DefaultDuration = 8 * time.Second

// Option configures a [Driver].
type Option func(*Driver)

// WithLogger sets the driver's logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDuration sets the transition length. It must be positive.
func WithDuration(dur time.Duration) Option {
	return func(d *Driver) { d.duration = dur }
}

// WithEasing sets the easing curve. The curve is checked with
// [ease.Validate] when the driver is created.
func WithEasing(f ease.Func) Option {
	return func(d *Driver) { d.ease = f }
}

// WithHooks overrides the globally registered driver hooks.
func WithHooks(h observability.DriverHooks) Option {
	return func(d *Driver) {
		if h != nil {
			d.hooks = h
		}
	}
}
