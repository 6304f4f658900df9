package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/genplot/internal/storage"
)

var (
	annotColor = color.RGBA{R: 0, G: 0, B: 128, A: 255}
	nanColor   = color.Gray{Y: 210}
	tilePad    = 3 * vg.Millimeter
)

// Renderer writes charts as image files into a store.
type Renderer struct {
	store  *storage.Store
	format string
	width  vg.Length
	height vg.Length
}

// NewRenderer renders format ("png" or "svg") figures of the given size in
// inches.
func NewRenderer(store *storage.Store, format string, width, height float64) *Renderer {
	return &Renderer{
		store:  store,
		format: format,
		width:  vg.Length(width) * vg.Inch,
		height: vg.Length(height) * vg.Inch,
	}
}

// Render writes c to a file named after method and the chart's columns.
func (r *Renderer) Render(method string, c Chart) (*Figure, error) {
	path, err := r.store.FigurePath(method, c.Columns(), r.format)
	if err != nil {
		return nil, err
	}

	switch c := c.(type) {
	case Pie:
		err = r.savePie(c, path)
	case LineGrid:
		err = r.saveLineGrid(c, path)
	case Pairs:
		err = r.savePairs(c, path)
	default:
		var p *plot.Plot
		if p, err = single(c); err == nil {
			err = p.Save(r.width, r.height, path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", method, err)
	}
	return &Figure{Method: method, Path: path, Chart: c}, nil
}

func single(c Chart) (*plot.Plot, error) {
	switch c := c.(type) {
	case Histogram:
		return histPlot(c.Data, c.Bins)
	case Scatter:
		return scatterPlot(c)
	case Lines:
		return linesPlot(c)
	case Heatmap:
		return heatmapPlot(c)
	case Regression:
		return regressionPlot(c)
	case Residuals:
		return residualsPlot(c)
	}
	return nil, fmt.Errorf("chart: unsupported chart %T", c)
}

func histPlot(s Series, bins int) (*plot.Plot, error) {
	vs := values(s.Values)
	if len(vs) == 0 {
		return nil, fmt.Errorf("chart: %q has no values", s.Name)
	}
	h, err := plotter.NewHist(vs, bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = s.Name
	p.Add(plotter.NewGrid(), h)
	return p, nil
}

func scatterPlot(c Scatter) (*plot.Plot, error) {
	s, err := plotter.NewScatter(points(c.X.Values, c.Y.Values))
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2.5)

	p := plot.New()
	p.Title.Text = c.Title()
	p.X.Label.Text = c.X.Name
	p.Y.Label.Text = c.Y.Name
	p.Add(plotter.NewGrid(), s)
	return p, nil
}

func linesPlot(c Lines) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title()
	p.X.Label.Text = c.X.Name
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	args := make([]interface{}, 0, 2*len(c.Ys))
	for _, y := range c.Ys {
		args = append(args, y.Name, points(c.X.Values, y.Values))
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return nil, err
	}
	return p, nil
}

// corrGrid puts row 0 of the matrix at the top of the heatmap.
type corrGrid [][]float64

func (g corrGrid) Dims() (c, r int)   { return len(g), len(g) }
func (g corrGrid) Z(c, r int) float64 { return g[len(g)-1-r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func heatmapPlot(c Heatmap) (*plot.Plot, error) {
	n := len(c.Names)
	if n == 0 {
		return nil, ErrNoColumns
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid(c.Matrix), cm.Palette(255))
	h.Min, h.Max = -1, 1
	h.NaN = nanColor

	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(n - 1 - r)})
			texts = append(texts, annotate(c.Matrix[r][col]))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	reversed := make([]string, n)
	for i, name := range c.Names {
		reversed[n-1-i] = name
	}

	p := plot.New()
	p.Title.Text = c.Title()
	p.Add(h, labels)
	p.NominalX(c.Names...)
	p.NominalY(reversed...)
	return p, nil
}

func annotate(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

func regressionPlot(c Regression) (*plot.Plot, error) {
	pts := points(c.X.Values, c.Y.Values)
	if len(pts) == 0 {
		return nil, fmt.Errorf("chart: no points for %s", c.Title())
	}
	p, err := scatterPlot(Scatter{X: c.X, Y: c.Y})
	if err != nil {
		return nil, err
	}

	xmin, xmax, ymin, ymax := plotter.XYRange(pts)
	ends := plotter.XYs{
		{X: xmin, Y: c.Intercept + c.Slope*xmin},
		{X: xmax, Y: c.Intercept + c.Slope*xmax},
	}
	line, err := plotter.NewLine(ends)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = plotutil.Color(1)

	for _, e := range ends {
		ymin = math.Min(ymin, e.Y)
		ymax = math.Max(ymax, e.Y)
	}
	at := plotter.XYs{{X: xmin + 0.1*(xmax-xmin), Y: ymin + 0.9*(ymax-ymin)}}
	label, err := plotter.NewLabels(plotter.XYLabels{XYs: at, Labels: []string{c.Annotation()}})
	if err != nil {
		return nil, err
	}
	label.TextStyle[0].Color = annotColor

	p.Title.Text = c.Title()
	p.Add(line, label)
	p.Legend.Add("least squares", line)
	p.Legend.Top = true
	return p, nil
}

func residualsPlot(c Residuals) (*plot.Plot, error) {
	p, err := scatterPlot(Scatter{X: c.X, Y: Series{Name: "residual", Values: c.Residuals}})
	if err != nil {
		return nil, err
	}

	smooth := points(c.X.Values, c.Smooth)
	sort.Slice(smooth, func(i, j int) bool { return smooth[i].X < smooth[j].X })
	curve, err := plotter.NewLine(smooth)
	if err != nil {
		return nil, err
	}
	curve.LineStyle.Width = vg.Points(2)
	curve.LineStyle.Color = plotutil.Color(1)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	zero.Color = color.Gray{Y: 96}

	p.Title.Text = c.Title()
	p.Add(zero, curve)
	p.Legend.Add("lowess", curve)
	p.Legend.Top = true
	return p, nil
}

func (r *Renderer) saveLineGrid(c LineGrid, path string) error {
	g := c.Grid
	if len(c.Ys) > g.Size() {
		return fmt.Errorf("chart: %d columns do not fit a %dx%d grid", len(c.Ys), g.Rows, g.Cols)
	}

	plots := make([][]*plot.Plot, g.Rows)
	for row := range plots {
		plots[row] = make([]*plot.Plot, g.Cols)
		for col := range plots[row] {
			plots[row][col] = plot.New()
		}
	}
	for i, y := range c.Ys {
		p, err := linesPlot(Lines{X: c.X, Ys: []Series{y}})
		if err != nil {
			return err
		}
		p.Title.Text = y.Name
		row, col := g.Cell(i)
		plots[row][col] = p
	}

	return r.saveTiles(plots, func(row, col int) bool {
		return row*g.Cols+col == g.Disabled
	}, path)
}

func (r *Renderer) savePairs(c Pairs, path string) error {
	n := len(c.Data)
	if n == 0 {
		return ErrNoColumns
	}

	plots := make([][]*plot.Plot, n)
	for i := range plots {
		plots[i] = make([]*plot.Plot, n)
		for j := range plots[i] {
			var p *plot.Plot
			var err error
			if i == j {
				p, err = histPlot(c.Data[i], c.Bins)
			} else {
				p, err = scatterPlot(Scatter{X: c.Data[j], Y: c.Data[i]})
			}
			if err != nil {
				return err
			}
			p.Title.Text = ""
			p.X.Label.Text = ""
			p.Y.Label.Text = ""
			if i == n-1 {
				p.X.Label.Text = c.Data[j].Name
			}
			if j == 0 {
				p.Y.Label.Text = c.Data[i].Name
			}
			plots[i][j] = p
		}
	}
	return r.saveTiles(plots, nil, path)
}

// saveTiles draws plots as an evenly spaced grid, leaving out the cells
// skip reports.
func (r *Renderer) saveTiles(plots [][]*plot.Plot, skip func(row, col int) bool, path string) error {
	c, err := draw.NewFormattedCanvas(r.width, r.height, r.format)
	if err != nil {
		return err
	}
	dc := draw.New(c)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      tilePad,
		PadY:      tilePad,
		PadTop:    tilePad,
		PadBottom: tilePad,
		PadLeft:   tilePad,
		PadRight:  tilePad,
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			if skip != nil && skip(row, col) {
				continue
			}
			plots[row][col].Draw(canvases[row][col])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = c.WriteTo(f)
	return err
}

// points pairs x and y, dropping pairs with a missing or infinite member.
func points(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i >= len(y) || !finite(x[i]) || !finite(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

func values(xs []float64) plotter.Values {
	vs := make(plotter.Values, 0, len(xs))
	for _, x := range xs {
		if finite(x) {
			vs = append(vs, x)
		}
	}
	return vs
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
