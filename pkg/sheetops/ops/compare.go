package ops

import (
	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// Sheet names used when a comparison is exported as a workbook.
const (
	SheetMatches   = "Matches"
	SheetOnlyLeft  = "Only_in_file1"
	SheetOnlyRight = "Only_in_file2"
)

// Comparison partitions two tables by a key column on each side.
type Comparison struct {
	// Matched is the inner equi-join: one row per (left, right) pair whose
	// trimmed string keys are equal, carrying all columns of both sides.
	Matched *table.Table
	// OnlyLeft holds left rows whose key appears nowhere in the right key
	// column, in original order.
	OnlyLeft *table.Table
	// OnlyRight is the symmetric right-side partition.
	OnlyRight *table.Table
}

// Compare joins tables a and b on their respective key columns. Key values
// are coerced to string and trimmed before equality testing; the comparison
// is not type-aware, so numerically equal keys rendered differently stay
// distinct. A key repeated k times on the left and m times on the right
// yields k*m matched rows.
func Compare(a *table.Table, keyA string, b *table.Table, keyB string) (*Comparison, error) {
	colA, err := a.ColumnIndex(keyA)
	if err != nil {
		return nil, err
	}
	colB, err := b.ColumnIndex(keyB)
	if err != nil {
		return nil, err
	}

	// Group right rows by key, preserving right-side order within a group.
	rightByKey := make(map[string][]int, len(b.Rows))
	for i, row := range b.Rows {
		k := row[colB].Key()
		rightByKey[k] = append(rightByKey[k], i)
	}
	leftKeys := make(map[string]struct{}, len(a.Rows))
	for _, row := range a.Rows {
		leftKeys[row[colA].Key()] = struct{}{}
	}

	matched := table.New(SheetMatches, joinedColumns(a, b))
	copy(matched.Kinds, append(append([]table.Kind(nil), a.Kinds...), b.Kinds...))

	onlyLeft := table.New(SheetOnlyLeft, append([]string(nil), a.Columns...))
	copy(onlyLeft.Kinds, a.Kinds)
	onlyRight := table.New(SheetOnlyRight, append([]string(nil), b.Columns...))
	copy(onlyRight.Kinds, b.Kinds)

	for _, row := range a.Rows {
		k := row[colA].Key()
		partners, ok := rightByKey[k]
		if !ok {
			onlyLeft.AppendRow(append([]table.Value(nil), row...))
			continue
		}
		for _, bi := range partners {
			joined := make([]table.Value, 0, len(a.Columns)+len(b.Columns))
			joined = append(joined, row...)
			joined = append(joined, b.Rows[bi]...)
			matched.AppendRow(joined)
		}
	}
	for _, row := range b.Rows {
		if _, ok := leftKeys[row[colB].Key()]; !ok {
			onlyRight.AppendRow(append([]table.Value(nil), row...))
		}
	}

	return &Comparison{Matched: matched, OnlyLeft: onlyLeft, OnlyRight: onlyRight}, nil
}

// joinedColumns lays out the matched table's header: every left column then
// every right column, with names present on both sides disambiguated by
// _file1 / _file2 suffixes.
func joinedColumns(a, b *table.Table) []string {
	overlap := make(map[string]bool, len(a.Columns))
	for _, ca := range a.Columns {
		for _, cb := range b.Columns {
			if ca == cb {
				overlap[ca] = true
			}
		}
	}
	cols := make([]string, 0, len(a.Columns)+len(b.Columns))
	for _, c := range a.Columns {
		if overlap[c] {
			c += "_file1"
		}
		cols = append(cols, c)
	}
	for _, c := range b.Columns {
		if overlap[c] {
			c += "_file2"
		}
		cols = append(cols, c)
	}
	return cols
}
