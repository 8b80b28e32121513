package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/point"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/sequence"
	"github.com/matzehuels/stipple/pkg/tween"
)

// Session is an assembled animation: points, sequence and canvas.
type Session struct {
	// ID is a unique run identifier.
	ID string

	Config    *config.Config
	Points    *point.Set
	Sequencer *sequence.Sequencer
	Canvas    *render.Canvas

	logger *log.Logger
}

// NewDriver creates a driver over the session's points and sequence with
// the configured duration and easing. Later options win.
func (s *Session) NewDriver(r tween.Renderer, sched tween.Scheduler, opts ...tween.Option) (*tween.Driver, error) {
	base := []tween.Option{
		tween.WithDuration(s.Config.Duration),
		tween.WithEasing(s.Config.Ease()),
		tween.WithLogger(s.logger),
	}
	return tween.New(s.Points, s.Sequencer, r, sched, append(base, opts...)...)
}

// apply lays out the session's points with g, reporting to pipeline hooks.
func (s *Session) apply(ctx context.Context, g layout.Generator) error {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Name(), s.Points.Len())
	start := time.Now()
	err := g.Apply(s.Points)
	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, g.Name(), elapsed, err)
	if err != nil {
		return fmt.Errorf("layout %s: %w", g.Name(), err)
	}
	s.logger.Debug("applied layout", "layout", g.Name(), "duration", elapsed)
	return nil
}
