// Package stats computes descriptive statistics and correlation matrices
// over the numeric columns of a table.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// Sheet names used when results are exported as a workbook.
const (
	SheetDescribe    = "Descriptive"
	SheetCorrelation = "Correlation"
)

// ErrNoNumericColumns indicates the table has no column whose non-missing
// cells are all numeric.
var ErrNoNumericColumns = errors.New("no numeric columns")

// Describe summarizes every numeric column: count, mean, sample standard
// deviation, min, quartiles, and max. The result is one row per column,
// ready for preview or export.
func Describe(t *table.Table) (*table.Table, error) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, ErrNoNumericColumns
	}

	out := table.New(SheetDescribe, []string{
		"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max",
	})
	for _, name := range numeric {
		vals, _, err := t.ColumnFloats(name)
		if err != nil {
			return nil, err
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		out.AppendRow([]table.Value{
			table.Text(name),
			table.Integer(int64(len(vals))),
			floatCell(stat.Mean(vals, nil)),
			floatCell(stat.StdDev(vals, nil)),
			floatCell(sorted[0]),
			floatCell(stat.Quantile(0.25, stat.LinInterp, sorted, nil)),
			floatCell(stat.Quantile(0.50, stat.LinInterp, sorted, nil)),
			floatCell(stat.Quantile(0.75, stat.LinInterp, sorted, nil)),
			floatCell(sorted[len(sorted)-1]),
		})
	}
	return out, nil
}

// Correlation builds the Pearson correlation matrix of the numeric columns,
// computed pairwise over rows where both cells are present.
func Correlation(t *table.Table) (*table.Table, error) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, ErrNoNumericColumns
	}

	cols := make(map[string]map[int]float64, len(numeric))
	for _, name := range numeric {
		vals, rows, err := t.ColumnFloats(name)
		if err != nil {
			return nil, err
		}
		byRow := make(map[int]float64, len(vals))
		for i, r := range rows {
			byRow[r] = vals[i]
		}
		cols[name] = byRow
	}

	out := table.New(SheetCorrelation, append([]string{"column"}, numeric...))
	for _, a := range numeric {
		row := make([]table.Value, 0, len(numeric)+1)
		row = append(row, table.Text(a))
		for _, b := range numeric {
			row = append(row, floatCell(pearson(cols[a], cols[b])))
		}
		out.AppendRow(row)
	}
	return out, nil
}

// pearson correlates two columns over their shared rows.
func pearson(a, b map[int]float64) float64 {
	var xs, ys []float64
	for r, x := range a {
		if y, ok := b[r]; ok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// floatCell maps NaN (undefined statistic) to a missing cell.
func floatCell(f float64) table.Value {
	if math.IsNaN(f) {
		return table.Missing()
	}
	return table.Float(f)
}
