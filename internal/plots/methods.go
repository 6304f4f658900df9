package plots

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/san-kum/genplot/internal/chart"
	"github.com/san-kum/genplot/internal/stats"
	"github.com/san-kum/genplot/internal/table"
)

// lowessSpan is the fraction of points each local residual fit uses.
const lowessSpan = 2.0 / 3

// PrintHeaders dumps the table, lists its column names and summarises
// the numeric ones.
func (p *Plots) PrintHeaders() error {
	if err := p.print(p.table); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Available headers to plot: ")
	for _, h := range p.table.Names() {
		fmt.Fprintf(p.out, "    %s\n", h)
	}

	numeric := p.table.NumericNames()
	if len(numeric) == 0 {
		return nil
	}
	fmt.Fprintln(p.out)
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tCOUNT\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range numeric {
		xs, err := p.table.Floats(name)
		if err != nil {
			return err
		}
		s := stats.Summarise(xs)
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\n", name, s.Count, s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}

// Hist draws a histogram of column x.
func (p *Plots) Hist(x string, bins int) error {
	if bins < 1 {
		return argErr("hist", "bins", "need at least one bin, got %d", bins)
	}
	xs, err := series(p.table, x)
	if err != nil {
		return err
	}
	if err := p.print(p.table); err != nil {
		return err
	}
	return p.show("hist", chart.Histogram{Data: xs, Bins: bins})
}

// Scatter plots y against x in table order.
func (p *Plots) Scatter(x, y string) error {
	cols, err := columns(p.table, x, y)
	if err != nil {
		return err
	}
	if err := p.print(p.table); err != nil {
		return err
	}
	return p.show("scatter", chart.Scatter{X: cols[0], Y: cols[1]})
}

// Plot draws y against x as a line, rows ordered by x.
func (p *Plots) Plot(x, y string) error {
	return p.sameCanvas("plot", x, y)
}

// PlotSameCanvas draws every y against x on one canvas, rows ordered by x.
func (p *Plots) PlotSameCanvas(x string, ys ...string) error {
	if len(ys) == 0 {
		return argErr("plot_same_canvas", "y", "need at least one column")
	}
	return p.sameCanvas("plot_same_canvas", x, ys...)
}

func (p *Plots) sameCanvas(method, x string, ys ...string) error {
	sorted, err := p.table.SortBy(x)
	if err != nil {
		return err
	}
	cols, err := columns(sorted, append([]string{x}, ys...)...)
	if err != nil {
		return err
	}
	if err := p.print(sorted); err != nil {
		return err
	}
	label := ys[0]
	if len(ys) > 1 {
		label = "value"
	}
	return p.show(method, chart.Lines{X: cols[0], Ys: cols[1:], YLabel: label})
}

// PlotAsFunctionOf draws every other column against x, each in its own
// subplot, rows ordered by x.
func (p *Plots) PlotAsFunctionOf(x string) error {
	sorted, err := p.table.SortBy(x)
	if err != nil {
		return err
	}
	cols, err := columns(sorted, append([]string{x}, others(sorted, x)...)...)
	if err != nil {
		return err
	}
	grid, err := chart.GridShape(len(cols)-1, p.gridColumns)
	if err != nil {
		return err
	}
	if err := p.print(sorted); err != nil {
		return err
	}
	return p.show("plot_as_function_of", chart.LineGrid{X: cols[0], Ys: cols[1:], Grid: grid})
}

// PlotNormalisedAsFunctionOf min-max normalises every column but x and
// draws them all against x on one canvas, rows ordered by x.
func (p *Plots) PlotNormalisedAsFunctionOf(x string) error {
	sorted, err := p.table.SortBy(x)
	if err != nil {
		return err
	}
	normed, err := table.Normalise(sorted, x, p.policy)
	if err != nil {
		return err
	}
	rest := others(normed, x)
	if len(rest) == 0 {
		return chart.ErrNoColumns
	}
	cols, err := columns(normed, append([]string{x}, rest...)...)
	if err != nil {
		return err
	}
	if err := p.print(normed); err != nil {
		return err
	}
	return p.show("plot_normalised_as_function_of",
		chart.Lines{X: cols[0], Ys: cols[1:], YLabel: "Normalised column"})
}

// Correlation draws the Pearson correlation matrix of the numeric columns.
// Rows with a missing value in any numeric column are left out.
func (p *Plots) Correlation() error {
	names := p.table.NumericNames()
	if len(names) == 0 {
		return chart.ErrNoColumns
	}
	cols, err := columns(p.table, names...)
	if err != nil {
		return err
	}
	data := make([][]float64, len(cols))
	for i, c := range cols {
		data[i] = c.Values
	}
	matrix, err := stats.CorrelationMatrix(completeRows(data))
	if err != nil {
		return err
	}
	return p.show("correlation", chart.Heatmap{Names: names, Matrix: matrix})
}

// Regression draws y against x with the least squares line and the
// Pearson coefficient, rows ordered by x.
func (p *Plots) Regression(x, y string) error {
	sorted, err := p.table.SortBy(x)
	if err != nil {
		return err
	}
	cols, err := columns(sorted, x, y)
	if err != nil {
		return err
	}
	xs, ys := completePairs(cols[0].Values, cols[1].Values)
	r, err := stats.Pearson(xs, ys)
	if err != nil {
		return fmt.Errorf("regression of %s on %s: %w", y, x, err)
	}
	fit, err := stats.LinearFit(xs, ys)
	if err != nil {
		return fmt.Errorf("regression of %s on %s: %w", y, x, err)
	}
	if err := p.print(sorted); err != nil {
		return err
	}
	p.log.Debug("least squares fit", "x", x, "y", y, "intercept", fit.Intercept, "slope", fit.Slope, "r", r)
	return p.show("regression", chart.Regression{
		X:         chart.Series{Name: x, Values: xs},
		Y:         chart.Series{Name: y, Values: ys},
		Intercept: fit.Intercept,
		Slope:     fit.Slope,
		R:         r,
	})
}

// Pairplot draws every numeric column against every other. A non-empty
// sortOn orders the printed rows.
func (p *Plots) Pairplot(sortOn string) error {
	t := p.table
	if sortOn != "" {
		var err error
		if t, err = t.SortBy(sortOn); err != nil {
			return err
		}
	}
	names := t.NumericNames()
	if len(names) == 0 {
		return chart.ErrNoColumns
	}
	cols, err := columns(t, names...)
	if err != nil {
		return err
	}
	if err := p.print(t); err != nil {
		return err
	}
	return p.show("pairplot", chart.Pairs{Data: cols, Bins: p.pairBins})
}

// Residuals plots the residuals of the linear fit of y on x against x,
// with a LOWESS smoother through them.
func (p *Plots) Residuals(x, y string) error {
	cols, err := columns(p.table, x, y)
	if err != nil {
		return err
	}
	xs, ys := completePairs(cols[0].Values, cols[1].Values)
	fit, err := stats.LinearFit(xs, ys)
	if err != nil {
		return fmt.Errorf("residuals of %s on %s: %w", y, x, err)
	}
	res := fit.Residuals(xs, ys)
	smooth, err := stats.Lowess(xs, res, lowessSpan)
	if err != nil {
		return fmt.Errorf("residuals of %s on %s: %w", y, x, err)
	}
	if err := p.print(p.table); err != nil {
		return err
	}
	return p.show("residuals", chart.Residuals{
		X:         chart.Series{Name: x, Values: xs},
		Y:         y,
		Residuals: res,
		Smooth:    smooth,
	})
}

// Pie draws the first row as a pie chart, one wedge per column.
func (p *Plots) Pie() error {
	if p.table.Len() == 0 {
		return errors.New("pie: table has no rows")
	}
	row, err := p.table.Row(0)
	if err != nil {
		return fmt.Errorf("pie: %w", err)
	}
	names := p.table.Names()
	total := 0.0
	for i, v := range row {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("pie: wedge %q has value %g", names[i], v)
		}
		total += v
	}
	if total == 0 {
		return errors.New("pie: first row sums to zero")
	}
	if err := p.print(p.table); err != nil {
		return err
	}
	return p.show("pie", chart.Pie{Labels: names, Values: row})
}

func series(t *table.Table, name string) (chart.Series, error) {
	xs, err := t.Floats(name)
	if err != nil {
		return chart.Series{}, err
	}
	return chart.Series{Name: name, Values: xs}, nil
}

func columns(t *table.Table, names ...string) ([]chart.Series, error) {
	out := make([]chart.Series, len(names))
	for i, n := range names {
		s, err := series(t, n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// others lists the columns of t other than x, in table order.
func others(t *table.Table, x string) []string {
	var out []string
	for _, n := range t.Names() {
		if n != x {
			out = append(out, n)
		}
	}
	return out
}

// completePairs drops the pairs where either value is missing.
func completePairs(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// completeRows keeps the rows with no missing value in any column.
func completeRows(cols [][]float64) [][]float64 {
	out := make([][]float64, len(cols))
	if len(cols) == 0 {
		return out
	}
	for i := range cols[0] {
		complete := true
		for _, c := range cols {
			if math.IsNaN(c[i]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for j, c := range cols {
			out[j] = append(out[j], c[i])
		}
	}
	return out
}
