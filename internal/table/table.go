// Package table holds the dataset a genplot invocation works on.
//
// A [Table] is loaded once from a delimited file and never mutated; sorting
// and normalising return derived copies:
//
//	t, err := table.Load("runs.csv")
//	sorted, err := t.SortBy("time")
//	norm, err := table.Normalise(sorted, "time", table.ZeroBound)
//
// Columns are typed on load (int, float, bool, string). Numeric accessors
// return [ErrNotNumeric] for the latter two and every accessor returns
// [ErrNoColumn] for a name the table does not have.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Fields read as missing values.
var missing = []string{"", "NA", "NaN", "nan", "N/A", "<nil>"}

const rowKey = "\x00row"

// Table is an ordered set of named, equal-length columns. Index holds,
// for each row, its position in the file it was loaded from.
type Table struct {
	df    dataframe.DataFrame
	index []int
}

// Load reads a comma-delimited file with a header row.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses comma-delimited text with a header row. Whitespace following
// a delimiter is dropped, so "a, b" names the columns "a" and "b".
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	if len(records) == 1 {
		return headerOnly(records[0]), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missing),
	)
	if df.Err != nil {
		return nil, df.Err
	}
	return fromFrame(df, nil), nil
}

// headerOnly builds a table with no rows. Nothing is known about the
// column types, so every column is an empty float column.
func headerOnly(names []string) *Table {
	cols := make([]series.Series, len(names))
	for i, n := range names {
		cols[i] = series.New([]float64{}, series.Float, n)
	}
	return fromFrame(dataframe.New(cols...), nil)
}

func fromFrame(df dataframe.DataFrame, index []int) *Table {
	if index == nil {
		index = make([]int, df.Nrow())
		for i := range index {
			index[i] = i
		}
	}
	return &Table{df: df, index: index}
}

func (t *Table) Names() []string { return t.df.Names() }
func (t *Table) Len() int        { return t.df.Nrow() }
func (t *Table) Width() int      { return t.df.Ncol() }

// Index returns the original row position of every row.
func (t *Table) Index() []int {
	out := make([]int, len(t.index))
	copy(out, t.index)
	return out
}

func (t *Table) Has(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.Has(name) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return series.Series{}, s.Err
	}
	return s, nil
}

// IsNumeric reports whether the named column holds ints or floats.
func (t *Table) IsNumeric(name string) bool {
	s, err := t.Column(name)
	if err != nil {
		return false
	}
	return numeric(s)
}

func numeric(s series.Series) bool {
	return s.Type() == series.Int || s.Type() == series.Float
}

// Floats returns the named numeric column as float64 values; missing
// entries are NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !numeric(s) {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, s.Type())
	}
	return s.Float(), nil
}

// NumericNames lists the int and float columns in table order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, n := range t.df.Names() {
		if numeric(t.df.Col(n)) {
			names = append(names, n)
		}
	}
	return names
}

// Row returns the values of row i as float64, one per column. Non-numeric
// columns are an error.
func (t *Table) Row(i int) ([]float64, error) {
	if i < 0 || i >= t.Len() {
		return nil, fmt.Errorf("table: row %d out of range [0, %d)", i, t.Len())
	}
	names := t.df.Names()
	out := make([]float64, len(names))
	for j, n := range names {
		col, err := t.Floats(n)
		if err != nil {
			return nil, err
		}
		out[j] = col[i]
	}
	return out, nil
}

// SortBy returns a copy of t with rows ordered by the named column,
// ascending. Rows with equal keys keep their relative order.
func (t *Table) SortBy(name string) (*Table, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}

	tagged := t.df.Mutate(series.New(t.index, series.Int, rowKey))
	sorted := tagged.Arrange(dataframe.Sort(name))
	if sorted.Err != nil {
		return nil, fmt.Errorf("sort by %q: %w", name, sorted.Err)
	}
	index, err := sorted.Col(rowKey).Int()
	if err != nil {
		return nil, err
	}
	return fromFrame(sorted.Drop(rowKey), index), nil
}

// replace returns a copy of t with the given columns swapped in by name.
func (t *Table) replace(cols []series.Series) *Table {
	df := t.df
	for _, c := range cols {
		df = df.Mutate(c)
	}
	return fromFrame(df, t.Index())
}
