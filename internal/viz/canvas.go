package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille characters, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set turns on the dot at (x, y) in dot coordinates. The canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Bounds is the data rectangle a canvas shows.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// BoundsOf returns the extent of the finite (x, y) pairs, widened when
// flat. ok is false when there are none.
func BoundsOf(x, y []float64) (b Bounds, ok bool) {
	b = Bounds{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for i := range x {
		if i >= len(y) || !finite(x[i]) || !finite(y[i]) {
			continue
		}
		b.XMin, b.XMax = math.Min(b.XMin, x[i]), math.Max(b.XMax, x[i])
		b.YMin, b.YMax = math.Min(b.YMin, y[i]), math.Max(b.YMax, y[i])
		ok = true
	}
	if !ok {
		return Bounds{}, false
	}
	if b.XMin == b.XMax {
		b.XMin, b.XMax = b.XMin-0.5, b.XMax+0.5
	}
	if b.YMin == b.YMax {
		b.YMin, b.YMax = b.YMin-0.5, b.YMax+0.5
	}
	return b, true
}

// Include widens b to cover y.
func (b *Bounds) Include(y float64) {
	if finite(y) {
		b.YMin, b.YMax = math.Min(b.YMin, y), math.Max(b.YMax, y)
	}
}

// pixel maps a data point to dot coordinates, y growing downwards.
func (c *Canvas) pixel(b Bounds, x, y float64) (int, int) {
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	px := (x - b.XMin) / (b.XMax - b.XMin) * w
	py := (b.YMax - y) / (b.YMax - b.YMin) * h
	return int(math.Round(px)), int(math.Round(py))
}

// Point sets the dot nearest to (x, y). Non-finite points are skipped.
func (c *Canvas) Point(b Bounds, x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	c.Set(c.pixel(b, x, y))
}

// Polyline joins consecutive finite points with lines.
func (c *Canvas) Polyline(b Bounds, x, y []float64) {
	prev := false
	var px, py int
	for i := range x {
		if i >= len(y) || !finite(x[i]) || !finite(y[i]) {
			prev = false
			continue
		}
		nx, ny := c.pixel(b, x[i], y[i])
		if prev {
			c.DrawLine(px, py, nx, ny)
		} else {
			c.Set(nx, ny)
		}
		px, py, prev = nx, ny, true
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
