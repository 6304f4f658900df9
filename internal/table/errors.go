package table

import "errors"

var (
	// ErrNoColumn indicates a column name absent from the table.
	ErrNoColumn = errors.New("table: no such column")

	// ErrNotNumeric indicates a numeric operation on a text or boolean column.
	ErrNotNumeric = errors.New("table: column is not numeric")

	// ErrEmpty indicates input without a header row.
	ErrEmpty = errors.New("table: no header row")
)
