// Package chart renders quick PNG charts from a table column.
package chart

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// Kind selects the chart style.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
)

// ErrNoData indicates the selected column has nothing to plot.
var ErrNoData = errors.New("no plottable data in column")

// ParseKind validates a chart kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindLine:
		return KindLine, nil
	case KindBar:
		return KindBar, nil
	case KindPie:
		return KindPie, nil
	default:
		return "", fmt.Errorf("invalid chart type %q (must be line, bar, or pie)", s)
	}
}

// Render draws a chart of the Y column to w as PNG. Line and bar plot the
// Y column's numeric cells, against the X column when it is numeric (line)
// or labeled by the X column's text (bar), else against row position. Pie
// plots the value counts of the Y column.
func Render(t *table.Table, kind Kind, xColumn, yColumn string, w io.Writer) error {
	switch kind {
	case KindPie:
		return renderPie(t, yColumn, w)
	case KindBar:
		return renderBar(t, xColumn, yColumn, w)
	default:
		return renderLine(t, xColumn, yColumn, w)
	}
}

func renderLine(t *table.Table, xColumn, yColumn string, w io.Writer) error {
	ys, rows, err := t.ColumnFloats(yColumn)
	if err != nil {
		return err
	}
	if len(ys) == 0 {
		return fmt.Errorf("%w: %q", ErrNoData, yColumn)
	}

	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r)
	}
	xName := "row"
	if xColumn != "" {
		if xv, xRows, xErr := t.ColumnFloats(xColumn); xErr == nil && len(xRows) == len(rows) {
			xs = xv
			xName = xColumn
		}
	}

	graph := gochart.Chart{
		XAxis: gochart.XAxis{Name: xName},
		YAxis: gochart.YAxis{Name: yColumn},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: yColumn, XValues: xs, YValues: ys},
		},
	}
	return graph.Render(gochart.PNG, w)
}

func renderBar(t *table.Table, xColumn, yColumn string, w io.Writer) error {
	ys, rows, err := t.ColumnFloats(yColumn)
	if err != nil {
		return err
	}
	if len(ys) == 0 {
		return fmt.Errorf("%w: %q", ErrNoData, yColumn)
	}

	var xCol = -1
	if xColumn != "" {
		if xCol, err = t.ColumnIndex(xColumn); err != nil {
			return err
		}
	}
	bars := make([]gochart.Value, len(ys))
	for i, r := range rows {
		label := fmt.Sprintf("%d", r)
		if xCol >= 0 {
			label = t.Rows[r][xCol].String()
		}
		bars[i] = gochart.Value{Value: ys[i], Label: label}
	}

	graph := gochart.BarChart{
		Title:    yColumn,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}
	return graph.Render(gochart.PNG, w)
}

// renderPie charts the frequency of each distinct value in the column,
// largest slice first.
func renderPie(t *table.Table, yColumn string, w io.Writer) error {
	col, err := t.ColumnIndex(yColumn)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, row := range t.Rows {
		v := row[col]
		if v.IsMissing() {
			continue
		}
		counts[v.String()]++
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: %q", ErrNoData, yColumn)
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	values := make([]gochart.Value, len(labels))
	for i, label := range labels {
		values[i] = gochart.Value{Value: float64(counts[label]), Label: label}
	}

	graph := gochart.PieChart{
		Title:  yColumn,
		Width:  512,
		Height: 512,
		Values: values,
	}
	return graph.Render(gochart.PNG, w)
}
