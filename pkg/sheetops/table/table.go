package table

import "strings"

// Table is an ordered row/column dataset loaded from one spreadsheet sheet.
// The column set is fixed once the table is materialized; edits change values,
// never the schema. Rows are addressed by their 0-based position, which stays
// contiguous: removal operations compact the remaining rows.
type Table struct {
	// Name is the sheet the table was loaded from.
	Name string
	// Columns are the header names in sheet order.
	Columns []string
	// Kinds are the per-column types inferred at load time.
	Kinds []Kind
	// Rows hold one Value per declared column.
	Rows [][]Value
}

// New builds an empty table with the given columns, all typed as text.
func New(name string, columns []string) *Table {
	kinds := make([]Kind, len(columns))
	return &Table{Name: name, Columns: columns, Kinds: kinds}
}

// NumRows reports the row count.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns reports the column count.
func (t *Table) NumColumns() int { return len(t.Columns) }

// ColumnIndex resolves a column name to its position.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, &ColumnNotFoundError{Column: name, Table: t.Name}
}

// Cell returns the value at the given row position and column name.
func (t *Table) Cell(row int, column string) (Value, error) {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return Value{}, err
	}
	if row < 0 || row >= len(t.Rows) {
		return Value{}, &RowOutOfRangeError{Row: row, Count: len(t.Rows)}
	}
	return t.Rows[row][col], nil
}

// SetCell replaces one cell with the parse of raw toward the column's
// inferred kind. Addressing can fail; the value itself cannot: input that
// does not parse as the column's kind is stored as literal text, which may
// demote the column's effective type for later numeric operations.
func (t *Table) SetCell(row int, column string, raw string) error {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}
	if row < 0 || row >= len(t.Rows) {
		return &RowOutOfRangeError{Row: row, Count: len(t.Rows)}
	}
	t.Rows[row][col] = ParseAs(raw, t.Kinds[col])
	return nil
}

// TrimWhitespace strips leading and trailing whitespace from every text cell
// in place and reports how many cells changed. Non-text cells are untouched.
func (t *Table) TrimWhitespace() int {
	changed := 0
	for _, row := range t.Rows {
		for i, v := range row {
			if v.Kind() != KindText {
				continue
			}
			trimmed := strings.TrimSpace(v.s)
			if trimmed != v.s {
				row[i] = Text(trimmed)
				changed++
			}
		}
	}
	return changed
}

// Clone returns a deep copy sharing nothing with the receiver.
func (t *Table) Clone() *Table {
	out := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Kinds:   append([]Kind(nil), t.Kinds...),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Value(nil), row...)
	}
	return out
}

// AppendRow adds a row, padding or truncating to the declared column count.
func (t *Table) AppendRow(cells []Value) {
	row := make([]Value, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Missing()
		}
	}
	t.Rows = append(t.Rows, row)
}

// InferKinds recomputes every column kind from the current cells.
// Called once after load; edits afterwards do not re-run inference.
func (t *Table) InferKinds() {
	column := make([]Value, 0, len(t.Rows))
	for c := range t.Columns {
		column = column[:0]
		for _, row := range t.Rows {
			column = append(column, row[c])
		}
		t.Kinds[c] = InferKind(column)
	}
}

// NumericColumns lists the columns whose every non-missing cell is numeric
// right now. This is the effective type: a lenient SetCell can drop a column
// from this list without changing its declared kind.
func (t *Table) NumericColumns() []string {
	var out []string
	for c, name := range t.Columns {
		numeric := false
		ok := true
		for _, row := range t.Rows {
			v := row[c]
			if v.IsMissing() {
				continue
			}
			if _, isNum := v.Float(); !isNum {
				ok = false
				break
			}
			numeric = true
		}
		if ok && numeric {
			out = append(out, name)
		}
	}
	return out
}

// ColumnFloats extracts the column's non-missing cells as floats together
// with the row positions they came from.
func (t *Table) ColumnFloats(column string) ([]float64, []int, error) {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return nil, nil, err
	}
	var vals []float64
	var rows []int
	for r, row := range t.Rows {
		if f, ok := row[col].Float(); ok {
			vals = append(vals, f)
			rows = append(rows, r)
		}
	}
	return vals, rows, nil
}
