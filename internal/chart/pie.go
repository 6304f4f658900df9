package chart

import (
	"fmt"
	"os"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
)

const dpi = 96

var pastel = []drawing.Color{
	drawing.ColorFromHex("a1c9f4"),
	drawing.ColorFromHex("ffb482"),
	drawing.ColorFromHex("8de5a1"),
	drawing.ColorFromHex("ff9f9b"),
	drawing.ColorFromHex("d0bbff"),
	drawing.ColorFromHex("debb9b"),
	drawing.ColorFromHex("fab0e4"),
	drawing.ColorFromHex("cfcfcf"),
	drawing.ColorFromHex("fffea3"),
	drawing.ColorFromHex("b9f2f0"),
}

func (r *Renderer) savePie(c Pie, path string) error {
	if len(c.Values) == 0 {
		return ErrNoColumns
	}
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("chart: %d labels for %d wedges", len(c.Labels), len(c.Values))
	}

	pcts := c.Percentages()
	wedges := make([]gochart.Value, len(c.Values))
	for i, v := range c.Values {
		wedges[i] = gochart.Value{
			Value: v,
			Label: fmt.Sprintf("%s %.1f%%", c.Labels[i], pcts[i]),
			Style: gochart.Style{
				FillColor:   pastel[i%len(pastel)],
				StrokeColor: drawing.ColorWhite,
			},
		}
	}

	pie := gochart.PieChart{
		Title:  c.Title(),
		Width:  pixels(r.width),
		Height: pixels(r.height),
		Values: wedges,
	}

	provider := gochart.PNG
	if r.format == "svg" {
		provider = gochart.SVG
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pie.Render(provider, f)
}

func pixels(l vg.Length) int {
	return int(float64(l/vg.Inch) * dpi)
}
