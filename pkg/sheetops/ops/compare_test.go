package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

func buildTable(name string, columns []string, rows ...[]string) *table.Table {
	t := table.New(name, columns)
	for _, row := range rows {
		cells := make([]table.Value, len(row))
		for i, s := range row {
			cells[i] = table.ParseLiteral(s)
		}
		t.AppendRow(cells)
	}
	t.InferKinds()
	return t
}

func TestCompareCartesianWithinKeyGroup(t *testing.T) {
	a := buildTable("a", []string{"k", "v"},
		[]string{"x", "1"}, []string{"y", "2"})
	b := buildTable("b", []string{"k", "w"},
		[]string{"x", "10"}, []string{"x", "11"})

	result, err := Compare(a, "k", b, "k")
	require.NoError(t, err)

	// A's "x" row pairs with both B rows.
	require.Equal(t, 2, result.Matched.NumRows())
	assert.Equal(t, []string{"k_file1", "v", "k_file2", "w"}, result.Matched.Columns)

	w0, _ := result.Matched.Cell(0, "w")
	w1, _ := result.Matched.Cell(1, "w")
	assert.Equal(t, "10", w0.String())
	assert.Equal(t, "11", w1.String())

	require.Equal(t, 1, result.OnlyLeft.NumRows())
	k, _ := result.OnlyLeft.Cell(0, "k")
	assert.Equal(t, "y", k.String())

	assert.Equal(t, 0, result.OnlyRight.NumRows())
}

func TestComparePartitionsReconstructSources(t *testing.T) {
	a := buildTable("a", []string{"k", "v"},
		[]string{"p", "1"}, []string{"q", "2"}, []string{"p", "3"}, []string{"r", "4"})
	b := buildTable("b", []string{"k", "w"},
		[]string{"p", "10"}, []string{"s", "20"})

	result, err := Compare(a, "k", b, "k")
	require.NoError(t, err)

	// Matched count is the sum of per-key products: "p" appears 2x1 times.
	assert.Equal(t, 2, result.Matched.NumRows())

	// Every A row is either matched (its key appears in B) or in OnlyLeft.
	matchedLeftKeys := map[string]bool{"p": true}
	onlyLeft := 0
	for r := range a.Rows {
		k, _ := a.Cell(r, "k")
		if !matchedLeftKeys[k.Key()] {
			onlyLeft++
		}
	}
	assert.Equal(t, onlyLeft, result.OnlyLeft.NumRows())

	require.Equal(t, 1, result.OnlyRight.NumRows())
	k, _ := result.OnlyRight.Cell(0, "k")
	assert.Equal(t, "s", k.String())
}

func TestCompareTrimsKeysButNotTypes(t *testing.T) {
	a := buildTable("a", []string{"id", "v"}, []string{"  x  ", "1"})
	b := buildTable("b", []string{"code", "w"}, []string{"x", "2"})

	result, err := Compare(a, "id", b, "code")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched.NumRows())
	// Distinct key column names need no suffix.
	assert.Equal(t, []string{"id", "v", "code", "w"}, result.Matched.Columns)

	// String-form comparison: integer 1 and float 1.5 keys never unify by
	// numeric value, only by rendered text.
	c := buildTable("c", []string{"k"}, []string{"1"})
	d := buildTable("d", []string{"k"}, []string{"1.5"})
	result, err = Compare(c, "k", d, "k")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Matched.NumRows())
	assert.Equal(t, 1, result.OnlyLeft.NumRows())
	assert.Equal(t, 1, result.OnlyRight.NumRows())
}

func TestCompareUnknownColumn(t *testing.T) {
	a := buildTable("a", []string{"k"}, []string{"x"})
	b := buildTable("b", []string{"k"}, []string{"x"})

	var notFound *table.ColumnNotFoundError
	_, err := Compare(a, "nope", b, "k")
	assert.ErrorAs(t, err, &notFound)
	_, err = Compare(a, "k", b, "nope")
	assert.ErrorAs(t, err, &notFound)
}
