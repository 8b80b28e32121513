package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/render/term"
	"github.com/matzehuels/stipple/pkg/tween"
)

// statusLines is the number of terminal rows below the frame.
const statusLines = 2

var (
	previewKeyStyle    = lipgloss.NewStyle().Foreground(colorGray)
	previewPausedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	previewErrStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PreviewModel - Terminal animation
// =============================================================================

type tickMsg time.Time

// PreviewModel plays the animation in the terminal. Every tick advances a
// manual clock by one frame interval, which makes the driver draw on the
// canvas; the canvas is then downsampled to half-block text.
type PreviewModel struct {
	ctx      context.Context
	driver   *tween.Driver
	clock    *tween.Manual
	canvas   *render.Canvas
	term     *term.Renderer
	interval time.Duration

	cols, rows int
	frame      string
	paused     bool
	frames     int
	err        error
}

// NewPreviewModel creates a model for a driver that renders to canvas and is
// scheduled on clock. The driver must not be started yet.
func NewPreviewModel(ctx context.Context, d *tween.Driver, clock *tween.Manual, canvas *render.Canvas, interval time.Duration) PreviewModel {
	cols, rows := term.Fit(canvas.Bounds(), 80, 24-statusLines)
	return PreviewModel{
		ctx:      ctx,
		driver:   d,
		clock:    clock,
		canvas:   canvas,
		term:     term.NewRenderer(),
		interval: interval,
		cols:     cols,
		rows:     rows,
	}
}

// Err returns the error that ended the preview, if any.
func (m PreviewModel) Err() error { return m.err }

// Frames returns the number of frames played.
func (m PreviewModel) Frames() int { return m.frames }

func (m PreviewModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m PreviewModel) Init() tea.Cmd {
	if err := m.driver.Start(m.ctx); err != nil {
		return func() tea.Msg { return err }
	}
	return m.tick()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.driver.Stop()
			return m, tea.Quit
		case " ", "space", "p":
			if m.paused {
				if err := m.driver.Start(m.ctx); err != nil {
					m.err = err
					return m, tea.Quit
				}
			} else {
				m.driver.Stop()
			}
			m.paused = !m.paused
		case "n":
			if err := m.driver.Skip(m.ctx); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.paused = false
		}

	case tea.WindowSizeMsg:
		m.cols, m.rows = term.Fit(m.canvas.Bounds(), msg.Width, msg.Height-statusLines)
		m.frame = m.term.Render(m.canvas.Image(), m.cols, m.rows)

	case tickMsg:
		if !m.paused {
			m.clock.Advance(m.interval)
			m.frames++
		}
		if err := m.driver.Err(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.frame = m.term.Render(m.canvas.Image(), m.cols, m.rows)
		return m, m.tick()

	case error:
		m.err = msg
		return m, tea.Quit
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")

	st := m.driver.Status()
	state := StyleHighlight.Render(st.Layout) + StyleDim.Render(fmt.Sprintf("  %3.0f%%  #%d", st.Progress*100, st.Completed))
	if m.paused {
		state += "  " + previewPausedStyle.Render("paused")
	}
	if m.err != nil {
		state += "  " + previewErrStyle.Render(errors.UserMessage(m.err))
	}
	b.WriteString(state)
	b.WriteString("\n")
	b.WriteString(previewKeyStyle.Render("space pause  n next  q quit"))
	return b.String()
}
