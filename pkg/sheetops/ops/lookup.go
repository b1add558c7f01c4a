package ops

import (
	"fmt"
	"strings"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// SheetLookup is the sheet name used when a lookup result is exported.
const SheetLookup = "LookupResult"

// MatchMode selects how a lookup query is compared against cell values.
type MatchMode string

const (
	// MatchExact compares the trimmed string forms for equality.
	MatchExact MatchMode = "exact"
	// MatchPartial matches when the cell's string form contains the query
	// as a case-insensitive substring. Missing cells never match.
	MatchPartial MatchMode = "partial"
)

// ParseMatchMode validates a mode string, defaulting the empty string to exact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(s)) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchPartial:
		return MatchPartial, nil
	default:
		return "", fmt.Errorf("invalid match mode %q (must be exact or partial)", s)
	}
}

// Find returns the rows of t whose value in column matches the query under
// the given mode. No match yields an empty table, not an error; presentation
// of "no rows" is the caller's concern.
func Find(t *table.Table, column, query string, mode MatchMode) (*table.Table, error) {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	out := table.New(SheetLookup, append([]string(nil), t.Columns...))
	copy(out.Kinds, t.Kinds)

	wantExact := strings.TrimSpace(query)
	wantSub := strings.ToLower(query)
	for _, row := range t.Rows {
		v := row[col]
		var hit bool
		switch mode {
		case MatchPartial:
			hit = !v.IsMissing() && strings.Contains(strings.ToLower(v.String()), wantSub)
		default:
			hit = v.Key() == wantExact
		}
		if hit {
			out.AppendRow(append([]table.Value(nil), row...))
		}
	}
	return out, nil
}
