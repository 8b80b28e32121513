package cli

import (
	"context"
	stderrors "errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/tween"
)

// previewCommand creates the preview command, which plays the animation in
// the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play the animation in the terminal",
		Long: `Play the animation in the terminal at 20 frames per second.

Each character cell shows two pixels, so the canvas is scaled down to fit the
window. Keys: space pauses and resumes, n skips to the next layout, q quits.`,
		Example: `  stipple preview
  stipple preview -n 20000 --palette rainbow --duration 4s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.sessionConfig(&flags)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), cfg)
		},
	}

	flags.register(cmd)

	return cmd
}

// runPreview builds the session and runs the terminal program until the user
// quits or ctx is canceled.
func (c *CLI) runPreview(ctx context.Context, cfg *config.Config) error {
	sess, err := c.newRunner(true).NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	clock := tween.NewManual()
	driver, err := sess.NewDriver(sess.Canvas, clock)
	if err != nil {
		return err
	}

	model := NewPreviewModel(ctx, driver, clock, sess.Canvas, cfg.FrameInterval())
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if m, ok := final.(PreviewModel); ok {
		if err := m.Err(); err != nil {
			return err
		}
		printInfo("Played %d frames", m.Frames())
	}
	return nil
}
