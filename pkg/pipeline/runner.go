package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stipple/pkg/cache"
	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/render/capture"
	"github.com/matzehuels/stipple/pkg/tween"
)

// Runner assembles sessions and runs headless renders.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. If c is nil, a NullCache is used (caching
// disabled). If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// NewSession validates cfg, builds the sequence and settles a fresh point
// set into its initial phyllotaxis, drawn once on the session canvas.
// Configuration errors are returned before any point is created.
func (r *Runner) NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	seq, err := cfg.Sequencer()
	if err != nil {
		return nil, err
	}
	canvas, err := render.New(cfg.Width, cfg.Height, cfg.PointWidth, render.WithBackground(cfg.BackgroundColor()))
	if err != nil {
		return nil, err
	}
	ps, err := cfg.NewPoints()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		Points:    ps,
		Sequencer: seq,
		Canvas:    canvas,
	}
	s.logger = r.Logger.With("run", s.ID)

	if err := s.apply(ctx, layout.NewRandom(cfg.ScatterCanvas(), *cfg.Seed)); err != nil {
		return nil, err
	}
	if err := s.apply(ctx, layout.NewPhyllotaxis(cfg.Canvas())); err != nil {
		return nil, err
	}
	if err := canvas.Render(ps); err != nil {
		return nil, fmt.Errorf("initial frame: %w", err)
	}

	s.logger.Info("session ready",
		"points", ps.Len(),
		"canvas", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"sequence", seq.Names())
	return s, nil
}

// Render runs a headless animation over a manual clock, capturing every
// frame until opts.Transitions transitions have completed.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	key, cacheable := r.renderKey(opts)
	if cacheable {
		if res, ok := r.cachedRender(ctx, key, opts); ok {
			return res, nil
		}
	}

	setupStart := time.Now()
	sess, err := r.NewSession(ctx, opts.Config)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: sess.ID}
	result.Stats.Points = sess.Points.Len()

	sink, formats, err := r.sinks(opts)
	if err != nil {
		return nil, err
	}
	rec := &capture.Recorder{Canvas: sess.Canvas, Sink: sink, Format: formats}
	clock := tween.NewManual()
	d, err := sess.NewDriver(rec, clock, tween.WithLogger(opts.Logger.With("run", sess.ID)))
	if err != nil {
		return nil, err
	}
	result.Stats.SetupTime = time.Since(setupStart)

	animateStart := time.Now()
	if err := d.Start(ctx); err != nil {
		return nil, err
	}
	interval := sess.Config.FrameInterval()
	limit := opts.Transitions * (opts.FramesPerTransition() + 1)
	done := 0
	for ticks := 0; d.Completed() < opts.Transitions; ticks++ {
		if err := ctx.Err(); err != nil {
			d.Stop()
			return nil, err
		}
		if ticks >= limit {
			d.Stop()
			return nil, errors.New(errors.ErrCodeInternal, "no progress after %d frames", ticks)
		}
		clock.Advance(interval)
		if err := d.Err(); err != nil {
			return nil, err
		}
		if n := d.Completed(); n > done {
			done = n
			sess.logger.Debug("transition rendered", "done", done, "of", opts.Transitions, "frames", rec.Frames())
			if opts.OnTransition != nil {
				opts.OnTransition(min(done, opts.Transitions), opts.Transitions)
			}
		}
	}
	d.Stop()
	result.Stats.AnimateTime = time.Since(animateStart)

	encodeStart := time.Now()
	if err := rec.Close(); err != nil {
		return nil, err
	}
	result.Stats.EncodeTime = time.Since(encodeStart)
	if cacheable {
		r.storeRender(ctx, key, opts.Output)
	}

	result.Frames = rec.Frames()
	result.Transitions = d.Completed()
	if opts.Output != "" {
		result.Artifacts = append(result.Artifacts, opts.Output)
	}
	if opts.FramesDir != "" {
		result.Artifacts = append(result.Artifacts, opts.FramesDir)
	}

	r.Logger.Info("rendered animation",
		"run", sess.ID,
		"frames", result.Frames,
		"transitions", result.Transitions,
		"duration", result.Stats.AnimateTime+result.Stats.EncodeTime)
	return result, nil
}

func (r *Runner) sinks(opts Options) (capture.Sink, string, error) {
	var (
		sinks   []capture.Sink
		formats string
	)
	if opts.Output != "" {
		sinks = append(sinks, capture.NewAPNG(opts.Output, capture.WithScale(opts.Scale)))
		formats = FormatAPNG
	}
	if opts.FramesDir != "" {
		dir, err := capture.NewPNGDir(opts.FramesDir, capture.WithScale(opts.Scale))
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeCaptureFailed, err, "frames directory")
		}
		sinks = append(sinks, dir)
		if formats != "" {
			formats += "+"
		}
		formats += FormatPNG
	}
	if len(sinks) == 1 {
		return sinks[0], formats, nil
	}
	return capture.Multi(sinks...), formats, nil
}

// =============================================================================
// Render Cache
// =============================================================================

// renderKey returns the cache key of a render. Only single-file renders are
// cached; a frames directory is always written fresh.
func (r *Runner) renderKey(opts Options) (string, bool) {
	if opts.Output == "" || opts.FramesDir != "" {
		return "", false
	}
	key, err := cache.Key("render", renderCacheVersion, opts.Config, opts.Transitions, opts.Scale)
	if err != nil {
		r.Logger.Warn("render not cacheable", "err", err)
		return "", false
	}
	return key, true
}

// cachedRender writes a cached animation to opts.Output. Cache failures are
// logged and treated as misses.
func (r *Runner) cachedRender(ctx context.Context, key string, opts Options) (*Result, bool) {
	start := time.Now()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		r.Logger.Warn("write cached render", "path", opts.Output, "err", err)
		return nil, false
	}

	res := &Result{
		RunID:       uuid.NewString(),
		Frames:      opts.Transitions * opts.FramesPerTransition(),
		Transitions: opts.Transitions,
		Artifacts:   []string{opts.Output},
		Cached:      true,
	}
	res.Stats.Points = opts.Config.Points
	res.Stats.EncodeTime = time.Since(start)
	r.Logger.Info("served render from cache", "run", res.RunID, "path", opts.Output)
	return res, true
}

func (r *Runner) storeRender(ctx context.Context, key, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.Logger.Warn("cache store skipped", "path", path, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
