package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

func namesTable(names ...string) *table.Table {
	t := table.New("Sheet1", []string{"name"})
	for _, n := range names {
		t.AppendRow([]table.Value{table.Text(n)})
	}
	return t
}

func TestFindExact(t *testing.T) {
	tbl := namesTable("Apple", "banana", "  Apple  ")

	result, err := Find(tbl, "name", "Apple", MatchExact)
	require.NoError(t, err)
	// Both the clean and the padded cell match after trimming.
	assert.Equal(t, 2, result.NumRows())

	// Query trimmed the same way as the cells.
	result, err = Find(tbl, "name", " banana ", MatchExact)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NumRows())
}

func TestFindPartialCaseInsensitive(t *testing.T) {
	tbl := namesTable("Apple", "banana")

	// Case-insensitive substring: "A" hits both Apple and banana.
	result, err := Find(tbl, "name", "A", MatchPartial)
	require.NoError(t, err)
	require.Equal(t, 2, result.NumRows())

	result, err = Find(tbl, "name", "app", MatchPartial)
	require.NoError(t, err)
	require.Equal(t, 1, result.NumRows())
	v, _ := result.Cell(0, "name")
	assert.Equal(t, "Apple", v.String())
}

func TestFindExactQueriesSatisfyPartial(t *testing.T) {
	tbl := namesTable("Apple", "banana", "cherry")

	exact, err := Find(tbl, "name", "banana", MatchExact)
	require.NoError(t, err)
	partial, err := Find(tbl, "name", "banana", MatchPartial)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, partial.NumRows(), exact.NumRows())
	assert.Equal(t, 1, exact.NumRows())
}

func TestFindMissingNeverMatchesPartial(t *testing.T) {
	tbl := table.New("Sheet1", []string{"name"})
	tbl.AppendRow([]table.Value{table.Missing()})
	tbl.AppendRow([]table.Value{table.Text("x")})

	result, err := Find(tbl, "name", "", MatchPartial)
	require.NoError(t, err)
	// Empty query is a substring of every present value, never of missing.
	assert.Equal(t, 1, result.NumRows())
}

func TestFindNoMatchIsEmptyNotError(t *testing.T) {
	tbl := namesTable("Apple")

	result, err := Find(tbl, "name", "zzz", MatchExact)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NumRows())
	assert.Equal(t, tbl.Columns, result.Columns)
}

func TestFindUnknownColumn(t *testing.T) {
	tbl := namesTable("Apple")
	_, err := Find(tbl, "nope", "x", MatchExact)
	var notFound *table.ColumnNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestParseMatchMode(t *testing.T) {
	mode, err := ParseMatchMode("")
	require.NoError(t, err)
	assert.Equal(t, MatchExact, mode)

	mode, err = ParseMatchMode("Partial")
	require.NoError(t, err)
	assert.Equal(t, MatchPartial, mode)

	_, err = ParseMatchMode("fuzzy")
	assert.Error(t, err)
}
