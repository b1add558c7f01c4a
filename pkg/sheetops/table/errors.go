package table

import "fmt"

// ColumnNotFoundError reports an operation referencing a column absent from
// the table's schema.
type ColumnNotFoundError struct {
	Column string
	Table  string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q not found in table %q", e.Column, e.Table)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

// RowOutOfRangeError reports a row position outside the table.
type RowOutOfRangeError struct {
	Row   int
	Count int
}

func (e *RowOutOfRangeError) Error() string {
	return fmt.Sprintf("row %d out of range (table has %d rows)", e.Row, e.Count)
}
