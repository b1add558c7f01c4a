package xlsxio

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// maxSheetNameLen is the xlsx container's sheet name limit.
const maxSheetNameLen = 31

// Sheet names one table for export.
type Sheet struct {
	Name  string
	Table *table.Table
}

// EnsureExt appends the .xlsx extension when the path lacks one.
func EnsureExt(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return path
	}
	return path + ".xlsx"
}

// WriteSheets serializes the named tables into a single workbook at path.
// Sheet names longer than 31 characters are truncated. A sheet whose typed
// cells fail to serialize is retried once with every cell coerced to text;
// only a second failure (or an unwritable target) yields a WriteError.
func WriteSheets(path string, sheets []Sheet) error {
	path = EnsureExt(path)
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		name := sh.Name
		if len(name) > maxSheetNameLen {
			name = name[:maxSheetNameLen]
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return &WriteError{Path: path, Sheet: name, Err: err}
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return &WriteError{Path: path, Sheet: name, Err: err}
		}

		if err := writeSheet(f, name, sh.Table, false); err != nil {
			if err = writeSheet(f, name, sh.Table, true); err != nil {
				return &WriteError{Path: path, Sheet: name, Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// writeSheet fills one sheet with the table's header and rows. With asText
// set, every cell is written as its string coercion.
func writeSheet(f *excelize.File, sheet string, t *table.Table, asText bool) error {
	for c, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v, asText)); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(v table.Value, asText bool) interface{} {
	if asText {
		return v.String()
	}
	if i, ok := v.Int(); ok {
		return i
	}
	if f, ok := v.Float(); ok {
		return f
	}
	if t, ok := v.Time(); ok {
		return t
	}
	return v.String()
}
