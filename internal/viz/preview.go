package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/genplot/internal/chart"
)

const (
	minWidth  = 16
	minHeight = 4
)

// Preview draws c for a terminal of roughly w columns and h rows.
func Preview(c chart.Chart, w, h int) string {
	w, h = max(w, minWidth), max(h, minHeight)

	switch c := c.(type) {
	case chart.Histogram:
		return histPreview(c.Data, c.Bins, w, h)
	case chart.Scatter:
		return scatterPreview(c.X.Values, c.Y.Values, w, h, nil)
	case chart.Lines:
		return linesPreview(c, w, h)
	case chart.LineGrid:
		return gridPreview(c, w, h)
	case chart.Heatmap:
		return heatmapPreview(c)
	case chart.Regression:
		return regressionPreview(c, w, h)
	case chart.Pairs:
		return pairsPreview(c, w)
	case chart.Residuals:
		return residualsPreview(c, w, h)
	case chart.Pie:
		return piePreview(c, w)
	}
	return Subtle.Render(fmt.Sprintf("no preview for %s", c.Title()))
}

func histPreview(s chart.Series, bins, w, h int) string {
	xs := finiteValues(s.Values)
	if len(xs) == 0 || bins < 1 {
		return Subtle.Render(fmt.Sprintf("%s: no values", s.Name))
	}
	sort.Float64s(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram wants every value below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, xs, nil)

	peak := floats.Max(counts)
	labelWidth := 0
	labels := make([]string, bins)
	for i := range counts {
		labels[i] = fmt.Sprintf("%.4g", dividers[i])
		labelWidth = max(labelWidth, len(labels[i]))
	}
	barWidth := max(w-labelWidth-10, 4)

	rows := make([]string, 0, bins)
	for i, n := range counts {
		share := 0.0
		if peak > 0 {
			share = n / peak
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			MetricLabel.Render(fmt.Sprintf("%*s", labelWidth, labels[i])),
			ProgressBar(share, barWidth),
			MetricValue.Render(fmt.Sprintf("%.0f", n))))
	}
	return strings.Join(rows, "\n")
}

// scatterPreview plots the points on a Braille canvas; extra, when not
// nil, draws over the same bounds.
func scatterPreview(x, y []float64, w, h int, extra func(*Canvas, *Bounds)) string {
	b, ok := BoundsOf(x, y)
	if !ok {
		return Subtle.Render("no points")
	}
	if extra != nil {
		// a dry run lets overlays widen the bounds first
		extra(nil, &b)
	}

	c := NewCanvas(w-2, h)
	for i := range x {
		if i < len(y) {
			c.Point(b, x[i], y[i])
		}
	}
	if extra != nil {
		extra(c, &b)
	}

	body := themed(CurrentTheme.Secondary).Render(strings.TrimRight(c.String(), "\n"))
	axis := MetricLabel.Render(fmt.Sprintf("x: %.4g .. %.4g   y: %.4g .. %.4g", b.XMin, b.XMax, b.YMin, b.YMax))
	return body + "\n" + axis
}

func linesPreview(c chart.Lines, w, h int) string {
	data := make([][]float64, 0, len(c.Ys))
	names := make([]string, 0, len(c.Ys))
	for _, y := range c.Ys {
		if len(finiteValues(y.Values)) == 0 {
			continue
		}
		data = append(data, y.Values)
		names = append(names, y.Name)
	}
	if len(data) == 0 {
		return Subtle.Render("no values")
	}

	colors := []asciigraph.AnsiColor{
		asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow,
		asciigraph.Green, asciigraph.Red, asciigraph.Blue,
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(h),
		asciigraph.Width(w-10),
		asciigraph.SeriesColors(colors[:min(len(data), len(colors))]...),
		asciigraph.Caption(strings.Join(names, ", ")+" vs "+c.X.Name),
	)
}

func gridPreview(c chart.LineGrid, w, h int) string {
	g := c.Grid
	cellW := max(w/max(g.Cols, 1), minWidth)
	cellH := max(h/max(g.Rows, 1)-2, 2)

	rows := make([]string, 0, g.Rows)
	for row := 0; row < g.Rows; row++ {
		cells := make([]string, 0, g.Cols)
		for col := 0; col < g.Cols; col++ {
			i := row*g.Cols + col
			if i == g.Disabled || i >= len(c.Ys) {
				continue
			}
			y := c.Ys[i]
			var cell string
			if len(finiteValues(y.Values)) == 0 {
				cell = Subtle.Render(y.Name + ": no values")
			} else {
				cell = asciigraph.Plot(y.Values,
					asciigraph.Height(cellH),
					asciigraph.Width(cellW-12),
					asciigraph.Caption(y.Name))
			}
			cells = append(cells, lipgloss.NewStyle().Width(cellW).Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func heatmapPreview(c chart.Heatmap) string {
	if len(c.Names) == 0 {
		return Subtle.Render("no numeric columns")
	}
	nameWidth := 0
	for _, n := range c.Names {
		nameWidth = max(nameWidth, lipgloss.Width(n))
	}
	label := lipgloss.NewStyle().Width(nameWidth + 1)
	cell := lipgloss.NewStyle().Width(7).Align(lipgloss.Center).Foreground(lipgloss.Color("#000000"))

	lines := make([]string, 0, len(c.Names)+1)
	header := []string{label.Render("")}
	for _, n := range c.Names {
		header = append(header, MetricLabel.Width(7).Align(lipgloss.Center).Render(truncate(n, 6)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for i, n := range c.Names {
		row := []string{label.Render(n)}
		for _, v := range c.Matrix[i] {
			text := "nan"
			if !math.IsNaN(v) {
				text = fmt.Sprintf("%.2f", v)
			}
			row = append(row, cell.Background(divergingColor(v)).Render(text))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(lines, "\n")
}

func regressionPreview(c chart.Regression, w, h int) string {
	line := func(cv *Canvas, b *Bounds) {
		ys := []float64{c.Intercept + c.Slope*b.XMin, c.Intercept + c.Slope*b.XMax}
		if cv == nil {
			b.Include(ys[0])
			b.Include(ys[1])
			return
		}
		cv.Polyline(*b, []float64{b.XMin, b.XMax}, ys)
	}
	plot := scatterPreview(c.X.Values, c.Y.Values, w, h, line)
	return MetricValue.Render(c.Annotation()) + "\n" + plot
}

func residualsPreview(c chart.Residuals, w, h int) string {
	overlay := func(cv *Canvas, b *Bounds) {
		if cv == nil {
			b.Include(0)
			for _, v := range c.Smooth {
				b.Include(v)
			}
			return
		}
		cv.Polyline(*b, []float64{b.XMin, b.XMax}, []float64{0, 0})

		xs := append([]float64(nil), c.X.Values...)
		ys := append([]float64(nil), c.Smooth...)
		sort.Sort(byX{xs, ys})
		cv.Polyline(*b, xs, ys)
	}
	return scatterPreview(c.X.Values, c.Residuals, w, h, overlay)
}

func pairsPreview(c chart.Pairs, w int) string {
	if len(c.Data) == 0 {
		return Subtle.Render("no numeric columns")
	}
	nameWidth := 0
	for _, s := range c.Data {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}
	lines := make([]string, 0, len(c.Data))
	for _, s := range c.Data {
		lines = append(lines, fmt.Sprintf("%-*s %s", nameWidth, s.Name, SparklineChart(s.Values, max(w-nameWidth-1, 8))))
	}
	return strings.Join(lines, "\n")
}

func piePreview(c chart.Pie, w int) string {
	nameWidth := 0
	for _, l := range c.Labels {
		nameWidth = max(nameWidth, lipgloss.Width(l))
	}
	barWidth := max(w-nameWidth-10, 8)
	lines := make([]string, 0, len(c.Labels))
	for i, pct := range c.Percentages() {
		lines = append(lines, fmt.Sprintf("%-*s %s %5.1f%%", nameWidth, c.Labels[i], ProgressBar(pct/100, barWidth), pct))
	}
	return strings.Join(lines, "\n")
}

type byX struct{ x, y []float64 }

func (p byX) Len() int           { return min(len(p.x), len(p.y)) }
func (p byX) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p byX) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.y[i], p.y[j] = p.y[j], p.y[i]
}

func finiteValues(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if finite(v) {
			out = append(out, v)
		}
	}
	return out
}

func finiteBounds(vs []float64) (lo, hi float64, ok bool) {
	fs := finiteValues(vs)
	if len(fs) == 0 {
		return 0, 0, false
	}
	return floats.Min(fs), floats.Max(fs), true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
