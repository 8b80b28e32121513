package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // animated PNG path
	framesDir   string  // directory for numbered PNG frames
	transitions int     // completed transitions to capture
	scale       float64 // frame scale factor
	noCache     bool    // always render, never reuse a cached file
}

// renderCommand creates the render command for headless animation capture.
//
// Default settings:
//   - transitions: one pass over the configured sequence
//   - scale: 0.5 (APNG frames are buffered in memory)
func (c *CLI) renderCommand() *cobra.Command {
	var flags sessionFlags
	opts := renderOpts{scale: defaultAPNGScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the animation to an animated PNG or PNG frames",
		Long: `Render the animation headlessly at 20 frames per second.

The points start in a phyllotaxis and move through the configured layout
sequence. Every frame is captured into an animated PNG (-o), a directory of
numbered PNG files (--frames), or both.`,
		Example: `  stipple render -o stipple.png
  stipple render --frames ./frames --scale 1 --transitions 2
  stipple render -c stipple.toml -o flower.png --easing sin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" && opts.framesDir == "" {
				return fmt.Errorf("nothing to write: set --output and/or --frames")
			}
			if opts.output != "" {
				if err := pipeline.ValidateOutput(opts.output); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), &flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "animated PNG output file")
	cmd.Flags().StringVar(&opts.framesDir, "frames", "", "write every frame as a PNG into this directory")
	cmd.Flags().IntVarP(&opts.transitions, "transitions", "t", 0, "number of transitions to render (default: one pass over the sequence)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "frame scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	flags.register(cmd)

	return cmd
}

// runRender executes the headless render and prints the written outputs.
func (c *CLI) runRender(ctx context.Context, flags *sessionFlags, opts renderOpts) error {
	cfg, err := c.sessionConfig(flags)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Config:      cfg,
		Transitions: opts.transitions,
		Output:      opts.output,
		FramesDir:   opts.framesDir,
		Scale:       opts.scale,
		Logger:      loggerFromContext(ctx),
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d points", cfg.Points))
	spinner.Progress(0, popts.Transitions)
	popts.OnTransition = func(done, total int) {
		spinner.Progress(done, total)
		if done >= total {
			spinner.SetMessage("Encoding frames")
		}
	}
	spinner.Start()

	result, err := c.newRunner(opts.noCache).Render(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d frames", result.Frames))

	if result.Cached {
		printSuccess("Reused cached render of %d transitions", result.Transitions)
	} else {
		printSuccess("Rendered %d transitions", result.Transitions)
	}
	printStats(result)
	for _, path := range result.Artifacts {
		printFile(path)
	}
	return nil
}
