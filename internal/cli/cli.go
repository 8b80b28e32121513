package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/pkg/buildinfo"
	"github.com/matzehuels/stipple/pkg/cache"
	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "stipple"

	// defaultAPNGScale shrinks buffered APNG frames, which are held in
	// memory until the file is written.
	defaultAPNGScale = 0.5
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stipple animates tens of thousands of points between layouts",
		Long:         `Stipple moves a fixed set of colored points between geometric layouts (phyllotaxis, spiral, flower of life, tree of life, Metatron's cube) with eased transitions, and renders the animation to a terminal, a browser or an animated PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Renders are cached
// under cacheDir unless noCache is set.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// loadConfig reads the --config file, or returns an empty config when none
// is given. The result is not yet validated so flags can still override it.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Read(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// sessionFlags are the config overrides shared by every animating command.
type sessionFlags struct {
	points   int
	easing   string
	palette  string
	duration time.Duration
	seed     uint64

	cmd *cobra.Command
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().IntVarP(&f.points, "points", "n", 0, "number of points (default 64000)")
	cmd.Flags().StringVar(&f.easing, "easing", "", "easing curve: cubic (default), linear, quad, cubic-in, cubic-out, sin, exp")
	cmd.Flags().StringVar(&f.palette, "palette", "", "palette: viridis (default), plasma, greys, rainbow")
	cmd.Flags().DurationVar(&f.duration, "duration", 0, "transition duration (default 8s)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the initial scatter (default 42)")
}

// apply overrides cfg with the flags that were set and validates it.
func (f *sessionFlags) apply(cfg *config.Config) (*config.Config, error) {
	if f.points != 0 {
		cfg.Points = f.points
	}
	if f.easing != "" {
		cfg.Easing = f.easing
	}
	if f.palette != "" {
		cfg.Palette = f.palette
	}
	if f.duration != 0 {
		cfg.Duration = f.duration
	}
	if f.cmd != nil && f.cmd.Flags().Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sessionConfig loads the config file and applies flag overrides.
func (c *CLI) sessionConfig(f *sessionFlags) (*config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return f.apply(cfg)
}
