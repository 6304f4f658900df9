package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

const (
	maxRows  = 60
	edgeRows = 5
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Fprint writes t to w as an aligned grid, original row positions first.
// Tables longer than 60 rows show the first and last five.
func (t *Table) Fprint(w io.Writer) error {
	names := t.Names()
	headers := append([]string{""}, names...)

	cols := make([][]string, len(names))
	for j, n := range names {
		cols[j] = t.df.Col(n).Records()
	}

	n := t.Len()
	truncated := n > maxRows
	row := func(i int) []string {
		r := make([]string, 0, len(names)+1)
		r = append(r, strconv.Itoa(t.index[i]))
		for j := range cols {
			r = append(r, cols[j][i])
		}
		return r
	}

	var rows [][]string
	if truncated {
		for i := 0; i < edgeRows; i++ {
			rows = append(rows, row(i))
		}
		gap := make([]string, len(headers))
		for i := range gap {
			gap[i] = "..."
		}
		rows = append(rows, gap)
		for i := n - edgeRows; i < n; i++ {
			rows = append(rows, row(i))
		}
	} else {
		for i := 0; i < n; i++ {
			rows = append(rows, row(i))
		}
	}

	grid := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			switch {
			case r == ltable.HeaderRow:
				return headerStyle
			case c == 0:
				return indexStyle
			default:
				return cellStyle
			}
		})

	if _, err := fmt.Fprintln(w, grid.Render()); err != nil {
		return err
	}
	if truncated {
		_, err := fmt.Fprintf(w, "\n[%d rows x %d columns]\n", n, len(names))
		return err
	}
	return nil
}

func (t *Table) String() string {
	var b strings.Builder
	_ = t.Fprint(&b)
	return b.String()
}
