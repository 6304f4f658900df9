// Package chart describes and renders the charts genplot draws.
//
// A chart is a plain value ([Histogram], [Scatter], [Lines], [LineGrid],
// [Heatmap], [Regression], [Pairs], [Residuals], [Pie]) holding the data
// already extracted from the table. A [Renderer] writes it to an image
// file and returns a [Figure]; the terminal preview in package viz reads
// the same value.
package chart

import "fmt"

// Chart is implemented by every chart value in this package.
type Chart interface {
	Title() string
	// Columns names the table columns the chart shows, in order.
	Columns() []string
}

// Series is one named column.
type Series struct {
	Name   string
	Values []float64
}

type Histogram struct {
	Data Series
	Bins int
}

func (c Histogram) Title() string     { return c.Data.Name }
func (c Histogram) Columns() []string { return []string{c.Data.Name} }

type Scatter struct {
	X, Y Series
}

func (c Scatter) Title() string     { return fmt.Sprintf("%s vs %s", c.Y.Name, c.X.Name) }
func (c Scatter) Columns() []string { return []string{c.X.Name, c.Y.Name} }

// Lines draws every Y against X on one canvas.
type Lines struct {
	X      Series
	Ys     []Series
	YLabel string
}

func (c Lines) Title() string {
	if len(c.Ys) == 1 {
		return fmt.Sprintf("%s vs %s", c.Ys[0].Name, c.X.Name)
	}
	return fmt.Sprintf("%d columns vs %s", len(c.Ys), c.X.Name)
}

func (c Lines) Columns() []string { return append([]string{c.X.Name}, names(c.Ys)...) }

// LineGrid draws each Y against X in its own cell of Grid.
type LineGrid struct {
	X    Series
	Ys   []Series
	Grid Grid
}

func (c LineGrid) Title() string     { return fmt.Sprintf("all columns vs %s", c.X.Name) }
func (c LineGrid) Columns() []string { return []string{c.X.Name} }

// Heatmap is a square matrix of values between -1 and 1, row and column i
// labelled Names[i].
type Heatmap struct {
	Names  []string
	Matrix [][]float64
}

func (c Heatmap) Title() string     { return "correlation" }
func (c Heatmap) Columns() []string { return nil }

// Regression is a scatter of X and Y with its least squares line and the
// Pearson coefficient R.
type Regression struct {
	X, Y      Series
	Intercept float64
	Slope     float64
	R         float64
}

func (c Regression) Title() string     { return fmt.Sprintf("%s on %s", c.Y.Name, c.X.Name) }
func (c Regression) Columns() []string { return []string{c.X.Name, c.Y.Name} }

// Annotation is the text overlaid on the regression chart.
func (c Regression) Annotation() string { return fmt.Sprintf("ρ = %.3f", c.R) }

// Pairs plots every column against every other, histograms on the diagonal.
type Pairs struct {
	Data []Series
	Bins int
}

func (c Pairs) Title() string     { return "pair plot" }
func (c Pairs) Columns() []string { return nil }

// Residuals plots the residuals of the linear fit of Y on X, with Smooth
// holding a LOWESS curve of the residuals at each X.
type Residuals struct {
	X         Series
	Y         string
	Residuals []float64
	Smooth    []float64
}

func (c Residuals) Title() string     { return fmt.Sprintf("residuals of %s on %s", c.Y, c.X.Name) }
func (c Residuals) Columns() []string { return []string{c.X.Name, c.Y} }

// Pie has one wedge per label.
type Pie struct {
	Labels []string
	Values []float64
}

func (c Pie) Title() string     { return "first row" }
func (c Pie) Columns() []string { return nil }

// Percentages returns each value's share of the total, in percent.
func (c Pie) Percentages() []float64 {
	total := 0.0
	for _, v := range c.Values {
		total += v
	}
	out := make([]float64, len(c.Values))
	if total == 0 {
		return out
	}
	for i, v := range c.Values {
		out[i] = 100 * v / total
	}
	return out
}

// Figure is a rendered chart.
type Figure struct {
	Method string
	Path   string
	Chart  Chart
}

func names(ss []Series) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}
