package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snaker/pkg/animate"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/pipeline"
	"github.com/matzehuels/snaker/pkg/render"
)

// Terminal cells are two columns wide so they come out roughly square.
const (
	cellColumns = 2
	statusRows  = 2
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		width    int
		height   int
		seed     uint64
		spectrum string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animate the grid filling up in the terminal",
		Long: `Animate the grid filling up in the terminal.

The grid is sized to the terminal unless --width and --height are given,
and is filled once on start. Snakes are drawn one block per tick.

Keys:
  r      draw a single snake
  w      draw snakes until the grid is full
  e      reset with a new seed and spectrum, sized to the terminal
  q      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := watchOptions{
				Width:    width,
				Height:   height,
				Seed:     seed,
				Spectrum: spectrum,
				Interval: interval,
			}
			if !cmd.Flags().Changed("spectrum") {
				opts.Spectrum = c.Config.Render.Spectrum
			}
			if !cmd.Flags().Changed("interval") {
				opts.Interval = c.Config.Animate.Interval
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = c.Config.Grid.Seed
			}
			return c.runWatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "grid width in cells (default: fit terminal)")
	cmd.Flags().IntVar(&height, "height", 0, "grid height in cells (default: fit terminal)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVar(&spectrum, "spectrum", "", "colour spectrum: random (default), dusk, violet, random3, random6")
	cmd.Flags().DurationVar(&interval, "interval", animate.DefaultInterval, "delay between blocks")
	registerValueCompletions(cmd)

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts watchOptions) error {
	m, err := newWatchModel(opts)
	if err != nil {
		return err
	}
	c.Logger.Debug("starting watch", "seed", m.seed, "spectrum", opts.Spectrum, "interval", m.interval)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("watch: %w", err)
	}
	if fm, ok := final.(*watchModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// =============================================================================
// Model
// =============================================================================

type watchOptions struct {
	Width    int // zero fits the terminal
	Height   int
	Seed     uint64 // zero picks one
	Spectrum string
	Interval time.Duration
}

type tickMsg time.Time

// watchModel animates one session. Paths are generated eagerly and their
// steps queued; each tick moves one queued step onto the board.
type watchModel struct {
	fit       bool
	interval  time.Duration
	spectrum  string // requested spectrum name
	reseed    *rand.Rand
	firstSeed uint64

	seed     uint64
	resolved string // spectrum actually in use
	session  *grid.Session
	painter  *render.Painter
	queue    *animate.Queue
	board    []string // rendered cells, row-major; "" is empty
	drawn    int

	started bool
	termW   int
	termH   int
	err     error
}

func newWatchModel(opts watchOptions) (*watchModel, error) {
	if opts.Spectrum == "" {
		opts.Spectrum = palette.Random
	}
	if err := pipeline.ValidateSpectrum(opts.Spectrum); err != nil {
		return nil, err
	}
	if opts.Interval <= 0 {
		opts.Interval = animate.DefaultInterval
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	m := &watchModel{
		fit:       opts.Width == 0 || opts.Height == 0,
		interval:  opts.Interval,
		spectrum:  opts.Spectrum,
		reseed:    grid.NewRand(opts.Seed),
		firstSeed: opts.Seed,
		queue:     animate.NewQueue(),
	}
	if m.fit {
		return m, nil
	}
	if err := m.reset(opts.Width, opts.Height, m.nextSeed()); err != nil {
		return nil, err
	}
	m.started = true
	m.fillAll()
	return m, nil
}

// reset starts an empty width×height board drawn from seed.
func (m *watchModel) reset(width, height int, seed uint64) error {
	sp, err := pipeline.NewSpectrum(m.spectrum, seed)
	if err != nil {
		return err
	}
	session, err := grid.NewSession(width, height, grid.NewRand(seed))
	if err != nil {
		return err
	}

	m.session = session
	m.seed = seed
	m.resolved = sp.Name
	m.painter = render.NewPainter(palette.NewCycle(sp.Colors(palette.DefaultSteps)))
	m.queue.Clear()
	m.board = make([]string, width*height)
	m.drawn = 0
	return nil
}

// fillOne queues the next snake. It reports false once the grid is full.
func (m *watchModel) fillOne() bool {
	path, err := m.session.FillOne()
	if err != nil {
		if !errs.IsExhausted(err) {
			m.err = err
		}
		return false
	}
	m.queue.Push(m.painter.Paint(path)...)
	return true
}

func (m *watchModel) fillAll() {
	for m.fillOne() {
	}
}

// advance moves one queued step onto the board.
func (m *watchModel) advance() {
	step, ok := m.queue.Pop()
	if !ok {
		return
	}
	m.board[step.Cell.Y*m.session.Width()+step.Cell.X] = renderCell(step)
	m.drawn++
}

// terminalGrid returns the grid that fits a w×h terminal.
func terminalGrid(w, h int) (int, int) {
	return max(1, w/cellColumns), max(1, h-statusRows)
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		if !m.fit {
			return m, nil
		}
		w, h := terminalGrid(msg.Width, msg.Height)
		if m.session != nil && w == m.session.Width() && h == m.session.Height() {
			return m, nil
		}
		if err := m.reset(w, h, m.nextSeed()); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if !m.started {
			m.started = true
			m.fillAll()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.session != nil {
				m.fillOne()
			}
		case "w":
			if m.session != nil {
				m.fillAll()
			}
		case "e":
			if m.session == nil {
				return m, nil
			}
			w, h := m.session.Width(), m.session.Height()
			if m.fit && m.termW > 0 {
				w, h = terminalGrid(m.termW, m.termH)
			}
			if err := m.reset(w, h, m.nextSeed()); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		if m.err != nil {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		if m.session != nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// nextSeed returns the seed for the next board. The first board uses the
// seed the model was created with.
func (m *watchModel) nextSeed() uint64 {
	if s := m.firstSeed; s != 0 {
		m.firstSeed = 0
		return s
	}
	return m.reseed.Uint64() | 1
}

func (m *watchModel) View() string {
	if m.session == nil {
		return StyleDim.Render("sizing grid...")
	}

	var b strings.Builder
	width := m.session.Width()
	empty := StyleDim.Render("· ")
	for y := range m.session.Height() {
		for x := range width {
			if cell := m.board[y*width+x]; cell != "" {
				b.WriteString(cell)
			} else {
				b.WriteString(empty)
			}
		}
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("%d/%d cells · %d snakes · %s · seed %d",
		m.drawn, len(m.board), m.painter.Paths(), m.resolved, m.seed)
	if m.session.Exhausted() && m.queue.Len() == 0 {
		status = StyleSuccess.Render("full") + StyleDim.Render(" · "+status)
	} else {
		status = StyleDim.Render(status)
	}
	b.WriteString(status + "\n")
	b.WriteString(StyleDim.Render("r snake · w fill · e reset · q quit"))
	return b.String()
}

// =============================================================================
// Cell Rendering
// =============================================================================

// renderCell draws a step as two coloured columns: a glyph tracing the walk
// through the cell and a connector to the right-hand neighbour.
func renderCell(s render.SceneStep) string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(s.Color)).
		Foreground(lipgloss.Color(strokeRGB(s.Stroke)))
	return style.Render(cellGlyph(s.Edges))
}

// cellGlyph maps the closed sides of a cell to box-drawing characters for
// its open ones.
func cellGlyph(closed grid.EdgeMask) string {
	open := grid.AllEdges &^ closed
	var centre string
	switch open {
	case 0:
		centre = "■"
	case grid.EdgeLeft:
		centre = "╸"
	case grid.EdgeRight:
		centre = "╺"
	case grid.EdgeTop:
		centre = "╹"
	case grid.EdgeBottom:
		centre = "╻"
	case grid.EdgeLeft | grid.EdgeRight:
		centre = "━"
	case grid.EdgeTop | grid.EdgeBottom:
		centre = "┃"
	case grid.EdgeTop | grid.EdgeRight:
		centre = "┗"
	case grid.EdgeTop | grid.EdgeLeft:
		centre = "┛"
	case grid.EdgeBottom | grid.EdgeRight:
		centre = "┏"
	case grid.EdgeBottom | grid.EdgeLeft:
		centre = "┓"
	default:
		centre = "╋"
	}
	if open.Has(grid.EdgeRight) {
		return centre + "━"
	}
	return centre + " "
}

// strokeRGB drops the alpha byte of a "#rrggbbaa" colour.
func strokeRGB(hex string) string {
	if len(hex) == 9 {
		return hex[:7]
	}
	return hex
}
