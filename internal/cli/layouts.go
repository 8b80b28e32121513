package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/layout"
)

// layoutsCommand validates the configured sequence and prints the range
// accounting of every composite layout.
func (c *CLI) layoutsCommand() *cobra.Command {
	var (
		flags   sessionFlags
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Validate the layout sequence and show composite ranges",
		Long: `Validate the layout sequence and show composite ranges.

Composite layouts (flower, tree, meta) split the point set into contiguous
blocks: one range per symbol ring, one per line and one for the bounding
circle. The ranges must add up to exactly the number of points; a mismatch is
reported as RANGE_MISMATCH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.sessionConfig(&flags)
			if err != nil {
				return err
			}
			gens, err := cfg.Generators()
			if err != nil {
				return err
			}
			writeLayouts(cmd.OutOrStdout(), cfg, gens, summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "print one row per layout instead of every range")
	flags.register(cmd)

	return cmd
}

// compositeOf returns the composite behind g, if any.
func compositeOf(g layout.Generator) (*layout.Composite, bool) {
	if n, ok := g.(*config.Named); ok {
		g = n.Unwrap()
	}
	comp, ok := g.(*layout.Composite)
	return comp, ok
}

// writeLayouts renders one table per distinct layout in the sequence.
func writeLayouts(w io.Writer, cfg *config.Config, gens []layout.Generator, summary bool) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	border := lipgloss.NewStyle().Foreground(colorDim)

	fmt.Fprintln(w, StyleTitle.Render("Sequence")+" "+StyleDim.Render(fmt.Sprintf("%d points, blocks of %d", cfg.Points, cfg.BlockSize)))

	if summary {
		var rows [][]string
		for i, g := range gens {
			kind, ranges := "whole set", "1"
			if comp, ok := compositeOf(g); ok {
				kind = comp.Name()
				ranges = strconv.Itoa(len(comp.Ranges()))
			}
			rows = append(rows, []string{strconv.Itoa(i), g.Name(), kind, ranges})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(border).
			Headers("#", "Layout", "Kind", "Ranges").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		fmt.Fprintln(w, t.Render())
		return
	}

	seen := make(map[layout.Generator]bool)
	for _, g := range gens {
		if seen[g] {
			continue
		}
		seen[g] = true

		comp, ok := compositeOf(g)
		if !ok {
			fmt.Fprintln(w, StyleHighlight.Render(g.Name())+" "+StyleDim.Render(fmt.Sprintf("[0,%d) whole set", cfg.Points)))
			continue
		}

		ranges := comp.Ranges()
		rows := make([][]string, 0, len(ranges))
		for _, r := range ranges {
			rows = append(rows, []string{
				r.Name,
				strconv.Itoa(r.Start),
				strconv.Itoa(r.End),
				strconv.Itoa(r.Len()),
			})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(border).
			Headers("Range", "Start", "End", "Points").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col > 0 {
					return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
				}
				return lipgloss.NewStyle()
			})

		fmt.Fprintln(w, StyleHighlight.Render(g.Name())+" "+StyleDim.Render(fmt.Sprintf("%d ranges", len(ranges))))
		fmt.Fprintln(w, t.Render())
	}
}
