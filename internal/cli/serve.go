package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/render/capture"
	"github.com/matzehuels/stipple/pkg/tween"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, which animates on the wall clock
// and publishes the latest frame over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags sessionFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Animate in real time and serve frames over HTTP",
		Long: `Animate in real time and serve frames over HTTP.

Endpoints:
  GET  /           page showing the animation
  GET  /frame.png  latest frame
  GET  /status     driver state as JSON
  GET  /metrics    Prometheus metrics
  POST /pause      stop the clock, points stay where they are
  POST /resume     start a transition to the current layout
  POST /skip       move on to the next layout immediately`,
		Example: `  stipple serve
  stipple serve --addr :9000 -n 20000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.sessionConfig(&flags)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	flags.register(cmd)

	return cmd
}

// runServe builds the session, starts the driver on a wall-clock ticker and
// serves until ctx is canceled or the driver fails.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config, addr string) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	observability.SetDriverHooks(metrics)
	observability.SetPipelineHooks(metrics)
	observability.SetCaptureHooks(metrics)
	defer observability.Reset()

	sess, err := c.newRunner(true).NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	latest := capture.NewLatest()
	rec := &capture.Recorder{Canvas: sess.Canvas, Sink: latest, Format: "http"}
	driver, err := sess.NewDriver(rec, tween.Ticker{Interval: cfg.FrameInterval()})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(ctx, driver, latest, reg, logger).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := tween.Run(gctx, driver); err != nil {
			return fmt.Errorf("animation: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("serving", "addr", "http://"+addr, "points", cfg.Points)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	printInfo("Served %d frames", latest.Len())
	return nil
}

// =============================================================================
// HTTP Handlers
// =============================================================================

// server exposes one driver and its latest frame.
type server struct {
	// ctx outlives requests; transitions started over HTTP run under it.
	ctx    context.Context
	driver *tween.Driver
	frames *capture.Latest
	reg    *prometheus.Registry
	logger *log.Logger
}

func newServer(ctx context.Context, d *tween.Driver, frames *capture.Latest, reg *prometheus.Registry, logger *log.Logger) *server {
	return &server{ctx: ctx, driver: d, frames: frames, reg: reg, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.index)
	r.Get("/frame.png", s.frame)
	r.Get("/status", s.status)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	r.Post("/pause", s.pause)
	r.Post("/resume", s.resume)
	r.Post("/skip", s.skip)
	return r
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *server) frame(w http.ResponseWriter, r *http.Request) {
	data := s.frames.PNG()
	if data == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Status(), s.logger)
}

func (s *server) pause(w http.ResponseWriter, r *http.Request) {
	s.driver.Stop()
	s.logger.Info("paused")
	writeJSON(w, http.StatusOK, s.driver.Status(), s.logger)
}

func (s *server) resume(w http.ResponseWriter, r *http.Request) {
	if err := s.driver.Start(s.ctx); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("resumed")
	writeJSON(w, http.StatusOK, s.driver.Status(), s.logger)
}

func (s *server) skip(w http.ResponseWriter, r *http.Request) {
	if err := s.driver.Skip(s.ctx); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("skipped", "layout", s.driver.Status().Layout)
	writeJSON(w, http.StatusOK, s.driver.Status(), s.logger)
}

// fail maps driver errors to HTTP status codes.
func (s *server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeTransitionActive):
		code = http.StatusConflict
	case errors.IsConfig(err):
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, code, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	}, s.logger)
}

func writeJSON(w http.ResponseWriter, code int, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", "err", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>stipple</title>
<style>
  body { background: #000; margin: 0; display: flex; flex-direction: column; align-items: center; }
  img { margin-top: 2em; image-rendering: pixelated; }
  pre { color: #888; font: 12px monospace; }
</style>
</head>
<body>
<img id="frame" src="/frame.png" alt="" />
<pre id="status"></pre>
<script>
  const img = document.getElementById("frame");
  const status = document.getElementById("status");
  setInterval(() => { img.src = "/frame.png?t=" + Date.now(); }, 50);
  setInterval(async () => {
    const s = await (await fetch("/status")).json();
    status.textContent = s.state + "  " + s.layout + "  " + (s.progress * 100).toFixed(0) + "%";
  }, 500);
</script>
</body>
</html>
`
