package viz

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"

	"github.com/san-kum/genplot/internal/chart"
)

// Display shows a rendered figure, returning once the user is done with it.
type Display interface {
	Show(fig *chart.Figure) error
}

// Display modes accepted by NewDisplay.
const (
	ModeTUI     = "tui"
	ModeCommand = "command"
	ModePrint   = "print"
	ModeNone    = "none"
)

// NewDisplay returns the display for mode. The tui mode falls back to
// printing when out is not a terminal.
func NewDisplay(mode, command string, out io.Writer, width, height int) (Display, error) {
	switch mode {
	case ModeTUI:
		if !isTerminal(out) {
			return &Printer{Out: out, Width: width, Height: height}, nil
		}
		return &Viewer{Out: out, Width: width, Height: height}, nil
	case ModeCommand:
		if strings.TrimSpace(command) == "" {
			return nil, errors.New("viz: command display needs a viewer command")
		}
		return &Command{Template: command, Out: out}, nil
	case ModePrint:
		return &Printer{Out: out, Width: width, Height: height}, nil
	case ModeNone:
		return &Quiet{Out: out}, nil
	}
	return nil, fmt.Errorf("viz: unknown display mode %q", mode)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Viewer runs a full screen preview until the user closes it.
type Viewer struct {
	Out           io.Writer
	Width, Height int
}

func (v *Viewer) Show(fig *chart.Figure) error {
	p := tea.NewProgram(newViewModel(fig, v.Width, v.Height), tea.WithAltScreen(), tea.WithOutput(v.Out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viz: viewer: %w", err)
	}
	return nil
}

// Printer writes the preview and returns immediately.
type Printer struct {
	Out           io.Writer
	Width, Height int
}

func (p *Printer) Show(fig *chart.Figure) error {
	_, err := fmt.Fprintf(p.Out, "%s\n%s\n%s\n",
		HeaderStyle.Render(fig.Chart.Title()),
		Preview(fig.Chart, p.Width, p.Height),
		Subtle.Render("saved "+fig.Path))
	return err
}

// Quiet only reports where the figure went.
type Quiet struct {
	Out io.Writer
}

func (q *Quiet) Show(fig *chart.Figure) error {
	_, err := fmt.Fprintln(q.Out, fig.Path)
	return err
}

// Command opens the figure in an external program and waits for it to
// exit. Template is split like a shell command line; "{path}" is replaced
// by the figure path, which is appended when the template has no
// placeholder.
type Command struct {
	Template string
	Out      io.Writer
}

func (c *Command) Args(path string) ([]string, error) {
	args, err := shellquote.Split(c.Template)
	if err != nil {
		return nil, fmt.Errorf("viz: viewer command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("viz: empty viewer command")
	}
	found := false
	for i, a := range args {
		if strings.Contains(a, "{path}") {
			args[i] = strings.ReplaceAll(a, "{path}", path)
			found = true
		}
	}
	if !found {
		args = append(args, path)
	}
	return args, nil
}

func (c *Command) Show(fig *chart.Figure) error {
	args, err := c.Args(fig.Path)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = c.Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viz: %s: %w", args[0], err)
	}
	return nil
}

type viewModel struct {
	fig      *chart.Figure
	width    int
	height   int
	showHelp bool
}

func newViewModel(fig *chart.Figure, width, height int) viewModel {
	return viewModel{fig: fig, width: width, height: height}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-6, minWidth)
		m.height = max(msg.Height-10, minHeight)
	}
	return m, nil
}

func (m viewModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Primary).
		Render(m.fig.Chart.Title())

	body := GlassPanel.BorderForeground(CurrentTheme.Muted).
		Render(Preview(m.fig.Chart, m.width, m.height))

	info := MetricLabel.Render("file ") + MetricValue.Render(m.fig.Path) +
		MetricLabel.Render("  theme ") + MetricValue.Render(CurrentTheme.Name)

	hint := KeyHint.Render("q close · t theme · ? help")
	if m.showHelp {
		hint = GlassPanel.Render(strings.Join([]string{
			"q / esc / enter  close the chart",
			"t                cycle color themes",
			"?                toggle this help",
		}, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, Separator(m.width), info, hint)
}
