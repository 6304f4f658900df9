package chart

import (
	"errors"
	"fmt"
)

// ErrNoColumns indicates a grid with nothing to place in it.
var ErrNoColumns = errors.New("chart: no columns to lay out")

// Grid is a row-major subplot layout. Disabled is the cell index left
// blank, or -1.
type Grid struct {
	Rows, Cols int
	Disabled   int
}

// GridShape lays out n subplots, cols per row. When n does not fill the
// last row exactly one trailing cell, the last of the grid, is disabled.
func GridShape(n, cols int) (Grid, error) {
	if cols < 1 {
		return Grid{}, fmt.Errorf("chart: %d columns per row", cols)
	}
	if n < 1 {
		return Grid{}, ErrNoColumns
	}

	rows := n / cols
	disabled := -1
	if n%cols > 0 {
		rows++
		disabled = rows*cols - 1
	}
	return Grid{Rows: rows, Cols: cols, Disabled: disabled}, nil
}

// Cell returns the row and column of subplot i.
func (g Grid) Cell(i int) (row, col int) {
	return i / g.Cols, i % g.Cols
}

func (g Grid) Size() int { return g.Rows * g.Cols }
