// Package plots holds the loaded table and draws charts from it, one
// method per chart type. A [Registry] maps command line method names and
// arguments onto those methods.
package plots

import (
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/genplot/internal/chart"
	"github.com/san-kum/genplot/internal/config"
	"github.com/san-kum/genplot/internal/storage"
	"github.com/san-kum/genplot/internal/table"
	"github.com/san-kum/genplot/internal/viz"
)

// Renderer turns a chart into a figure on disk.
type Renderer interface {
	Render(method string, c chart.Chart) (*chart.Figure, error)
}

// Plots draws charts from one table loaded at construction.
type Plots struct {
	table       *table.Table
	renderer    Renderer
	display     viz.Display
	out         io.Writer
	log         *slog.Logger
	policy      table.Policy
	gridColumns int
	pairBins    int
}

type Option func(*Plots)

func WithRenderer(r Renderer) Option { return func(p *Plots) { p.renderer = r } }

func WithDisplay(d viz.Display) Option { return func(p *Plots) { p.display = d } }

// WithOutput sets where table dumps are written.
func WithOutput(w io.Writer) Option { return func(p *Plots) { p.out = w } }

func WithLogger(l *slog.Logger) Option { return func(p *Plots) { p.log = l } }

// WithPolicy sets how the normalised chart treats columns with a zero
// bound.
func WithPolicy(policy table.Policy) Option { return func(p *Plots) { p.policy = policy } }

// WithGridColumns sets the subplots per row of plot_as_function_of.
func WithGridColumns(n int) Option { return func(p *Plots) { p.gridColumns = n } }

func WithPairBins(n int) Option { return func(p *Plots) { p.pairBins = n } }

// New loads the CSV file at path.
func New(path string, opts ...Option) (*Plots, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	return NewFromTable(t, opts...), nil
}

// NewFromTable draws charts from an already loaded table. Without options
// figures go to the default output directory and are printed to stdout.
func NewFromTable(t *table.Table, opts ...Option) *Plots {
	p := &Plots{
		table:       t,
		out:         os.Stdout,
		log:         slog.Default(),
		policy:      table.ZeroBound,
		gridColumns: config.DefaultGridColumns,
		pairBins:    10,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.renderer == nil {
		p.renderer = chart.NewRenderer(storage.New(config.DefaultOutputDir),
			config.DefaultFormat, config.DefaultWidth, config.DefaultHeight)
	}
	if p.display == nil {
		p.display = &viz.Printer{Out: p.out, Width: config.DefaultTermWidth, Height: config.DefaultTermHeight}
	}
	return p
}

// Table returns the loaded table.
func (p *Plots) Table() *table.Table { return p.table }

func (p *Plots) print(t *table.Table) error {
	return t.Fprint(p.out)
}

// show renders c and blocks in the display step.
func (p *Plots) show(method string, c chart.Chart) error {
	fig, err := p.renderer.Render(method, c)
	if err != nil {
		return err
	}
	p.log.Debug("figure rendered", "method", method, "path", fig.Path)
	return p.display.Show(fig)
}
