package xlsxio

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// Load reads one sheet from the workbook at path into a Table. The selector
// is a sheet name, or a 0-based sheet index when it parses as an integer, or
// empty for the first sheet. The first row is the header; remaining rows are
// data. The returned slice lists every sheet in the workbook, needed by
// callers that offer sheet switching.
func Load(path string, selector string) (*table.Table, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	sheetName, err := resolveSheet(sheetNames, selector)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Sheet: selector, Err: err}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, &ReadError{Path: path, Sheet: sheetName, Err: err}
	}

	return buildTable(sheetName, rows), sheetNames, nil
}

// resolveSheet maps a selector to a sheet name.
func resolveSheet(sheets []string, selector string) (string, error) {
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	if selector == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == selector {
			return s, nil
		}
	}
	if idx, err := strconv.Atoi(selector); err == nil {
		if idx >= 0 && idx < len(sheets) {
			return sheets[idx], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, selector)
}

// buildTable converts raw sheet rows into a typed table. Trailing all-empty
// rows and columns beyond the data bounds are dropped; column kinds are
// inferred from the parsed cells.
func buildTable(sheetName string, rows [][]string) *table.Table {
	rows = trimTrailingEmptyRows(rows)
	if len(rows) == 0 {
		return table.New(sheetName, nil)
	}

	width := dataWidth(rows)
	header := rows[0]
	columns := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(header) && header[i] != "" {
			columns[i] = header[i]
		} else {
			columns[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	t := table.New(sheetName, columns)
	cells := make([]table.Value, width)
	for _, row := range rows[1:] {
		for c := 0; c < width; c++ {
			if c < len(row) {
				cells[c] = table.ParseLiteral(row[c])
			} else {
				cells[c] = table.Missing()
			}
		}
		t.AppendRow(cells)
	}
	t.InferKinds()
	return t
}

// dataWidth finds the rightmost non-empty cell across all rows.
func dataWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		for c := len(row) - 1; c >= 0; c-- {
			if row[c] != "" {
				if c+1 > width {
					width = c + 1
				}
				break
			}
		}
	}
	return width
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && rowEmpty(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
