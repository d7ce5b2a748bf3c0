package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"folio/book"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: folio <book directory or file>")
		os.Exit(2)
	}
	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "folio")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		book.SetLogger(logger)
	}

	cols, rows := terminalSize()
	s, err := openSession(os.Args[1], config, viewportBounds(cols, rows-1), time.Now)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		newModel(s, config, cols, rows),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func terminalSize() (int, int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols < 1 || rows < 2 {
		return 80, 24
	}
	return cols, rows
}

func viewportBounds(cols, rows int) book.Size {
	return book.Size{Width: float64(cols) * charWidth, Height: float64(rows) * charHeight}
}

// openSession loads the book at path and renders it into a shelf of the
// given bounds.
func openSession(path string, config *Config, bounds book.Size, clock func() time.Time) (*session, error) {
	sh, err := resolveShelf(path, bounds)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &session{path: path, shelf: sh, clock: clock}

	// Render reports missing and empty books. A missing shelf has to reach
	// it as a nil interface.
	var container book.Container
	var semantics func(int) (book.PageSemantics, bool)
	pages := 1
	if sh != nil {
		container = sh
		semantics = sh.pageSemantics
		pages = max(len(sh.faces), 1)
	}

	b, err := book.New(book.Options{
		PagesCount:       pages,
		LeafAspectRatio:  config.LeafRatio,
		CoverAspectRatio: config.CoverRatio,
		Direction:        config.Direction,
		FastDelta:        config.FastDelta,
		PageSemantics:    semantics,
		OnPageChanged: func(i int) {
			s.notice = fmt.Sprintf("Jump to page %d requested", i+1)
		},
		OnVisiblePagesChanged: func(current, _ []int) {
			s.visible = current
		},
		Clock: clock,
	})
	if err != nil {
		return nil, err
	}
	if err := b.Render(container, config.Debug); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s.book = b
	s.visible = []int{1}
	return s, nil
}

func newModel(s *session, config *Config, width, height int) model {
	return model{
		width:     width,
		height:    height,
		session:   s,
		config:    config,
		mode:      ModeReading,
		showDebug: config.Debug,
		// The debug overlay is refreshed from the frame loop.
		ticking: config.Debug,
	}
}

func (m model) Init() tea.Cmd {
	if m.ticking {
		return tick()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if m.session.book.Advance(time.Time(msg)) {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		m.errorMessage = ""
		m.successMessage = ""
		m.session.notice = ""

		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}
		if m.mode == ModeJumpInput {
			m.handleJumpInput(msg)
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.help = true
		case "l", "right", " ", "pgdown", "h", "left", "pgup", "backspace":
			return m, m.handleTurn(msg.String())
		case "g":
			m.mode = ModeJumpInput
			m.jumpText = ""
		case "y":
			if err := m.yankVisible(); err != nil {
				m.errorMessage = fmt.Sprintf("Error copying: %v", err)
			} else {
				m.successMessage = fmt.Sprintf("Copied page %s", pageList(m.session.visible))
			}
		case "p":
			filename, err := m.config.GetSavePath(exportBaseName(m.session) + ".png")
			if err == nil {
				err = m.exportSpreadPNG(filename)
			}
			m.report(err, fmt.Sprintf("Exported %s", filename))
		case "P":
			dir, err := m.config.GetSavePath(exportBaseName(m.session) + "-turn")
			var n int
			if err == nil {
				n, err = m.exportTurnFrames(context.Background(), dir, m.config.ExportFrames)
			}
			m.report(err, fmt.Sprintf("Exported %d frames to %s", n, dir))
		case "t":
			filename, err := m.config.GetSavePath(exportBaseName(m.session) + ".txt")
			if err == nil {
				err = m.exportVisualTXT(filename)
			}
			m.report(err, fmt.Sprintf("Exported %s", filename))
		case "d":
			if !m.config.Debug {
				m.errorMessage = "Debug overlay is off (set FOLIO_DEBUG=true)"
			} else {
				m.showDebug = !m.showDebug
			}
		}
	}
	return m, nil
}

// report shows err in the status line, or success when there is none.
func (m *model) report(err error, success string) {
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting: %v", err)
		return
	}
	m.successMessage = success
}

func exportBaseName(s *session) string {
	name := filepath.Base(filepath.Clean(s.path))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%s-p%s", name, pageList(s.visible))
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	debugStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// debugHeight is the rows taken by the debug overlay, border included.
const debugHeight = 5

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	s := m.session
	width := m.width
	if width < 1 {
		width = 1
	}

	lines, _ := composite(s.shelf, s.book.Direction(), width, m.viewHeight())
	parts := []string{strings.Join(lines, "\n")}
	if m.showDebug && s.shelf.debug != nil {
		parts = append(parts, debugStyle.Render(debugView(*s.shelf.debug)))
	}
	parts = append(parts, m.statusLine(width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) statusLine(width int) string {
	s := m.session
	var msg string
	switch {
	case m.mode == ModeJumpInput:
		msg = "Go to page: " + m.jumpText + "█"
	case m.errorMessage != "":
		msg = errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		msg = successStyle.Render(m.successMessage)
	case s.notice != "":
		msg = successStyle.Render(s.notice)
	default:
		msg = fmt.Sprintf("%s  page %s of %d  %s", s.path, pageList(s.visible), s.book.PagesCount(), s.book.State())
	}
	return statusStyle.Width(width).MaxHeight(1).Render(msg + "  ? help")
}

func debugView(d book.DebugState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "state %s  leaf %d  turn %s  start %.0f  delta %.0f  visible %v\n",
		d.State, d.Leaf, d.Turn, d.StartX, d.LastDelta, d.Visible)
	if len(d.Leaves) == 0 {
		b.WriteString("all leaves at rest\n")
	}
	for i, l := range d.Leaves {
		if i == 2 {
			break
		}
		if l.HasTarget {
			fmt.Fprintf(&b, "leaf %d  at %.3f  to %.3f  queued %d\n", l.Index, l.Position, l.Target, l.Queued)
		} else {
			fmt.Fprintf(&b, "leaf %d  at %.3f  queued %d\n", l.Index, l.Position, l.Queued)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) helpView() string {
	keys := [][2]string{
		{"l / → / space", "turn forward"},
		{"h / ← / backspace", "turn back"},
		{"drag", "turn a page with the mouse"},
		{"wheel", "scroll the page under the pointer"},
		{"g", "go to page"},
		{"y", "copy visible pages"},
		{"p", "export spread as PNG"},
		{"P", "export the next turn as PNG frames"},
		{"t", "export spread as text"},
		{"d", "toggle debug overlay"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString("folio\n\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%-20s %s\n", keyStyle.Render(k[0]), k[1])
	}
	return helpStyle.Render(strings.TrimRight(b.String(), "\n"))
}
