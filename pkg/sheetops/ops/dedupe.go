// Package ops implements the row-level engines: deduplication, two-table
// comparison, and lookup. All three are pure functions of their input tables.
package ops

import (
	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// Dedupe removes rows whose key column repeats an earlier value, keeping the
// first occurrence in original row order. Keys are compared by their exact
// string coercion. The second result is the number of rows removed.
func Dedupe(t *table.Table, keyColumn string) (*table.Table, int, error) {
	col, err := t.ColumnIndex(keyColumn)
	if err != nil {
		return nil, 0, err
	}

	out := table.New(t.Name, append([]string(nil), t.Columns...))
	copy(out.Kinds, t.Kinds)

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := row[col].String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.AppendRow(append([]table.Value(nil), row...))
	}
	return out, t.NumRows() - out.NumRows(), nil
}

// DuplicateKeys reports how many rows share each repeated key value, for
// previewing what a Dedupe would drop.
func DuplicateKeys(t *table.Table, keyColumn string) (map[string]int, error) {
	col, err := t.ColumnIndex(keyColumn)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, row := range t.Rows {
		counts[row[col].String()]++
	}
	for k, n := range counts {
		if n < 2 {
			delete(counts, k)
		}
	}
	return counts, nil
}
