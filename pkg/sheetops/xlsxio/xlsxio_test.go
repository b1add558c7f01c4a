package xlsxio

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

// writeFixture builds a small two-sheet workbook for load tests.
func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "id")
	f.SetCellValue(sheet, "B1", "name")
	f.SetCellValue(sheet, "C1", "score")
	f.SetCellValue(sheet, "A2", 1)
	f.SetCellValue(sheet, "B2", "alice")
	f.SetCellValue(sheet, "C2", 9.5)
	f.SetCellValue(sheet, "A3", 2)
	f.SetCellValue(sheet, "B3", "bob")
	f.SetCellValue(sheet, "C3", 7)

	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Extra", "A1", "only")
	f.SetCellValue("Extra", "A2", "row")

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t)

	tbl, sheets, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(sheets) != 2 || sheets[0] != "Sheet1" || sheets[1] != "Extra" {
		t.Errorf("Expected sheets [Sheet1 Extra], got %v", sheets)
	}
	if tbl.Name != "Sheet1" {
		t.Errorf("Expected table name Sheet1, got %q", tbl.Name)
	}
	if got := tbl.Columns; len(got) != 3 || got[0] != "id" || got[2] != "score" {
		t.Errorf("Unexpected columns: %v", got)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.NumRows())
	}

	// Kinds inferred from cells: id all integers, score mixed numeric.
	if tbl.Kinds[0] != table.KindInteger {
		t.Errorf("Expected id column inferred integer, got %v", tbl.Kinds[0])
	}
	if tbl.Kinds[1] != table.KindText {
		t.Errorf("Expected name column inferred text, got %v", tbl.Kinds[1])
	}
	if tbl.Kinds[2] != table.KindFloat {
		t.Errorf("Expected score column inferred float, got %v", tbl.Kinds[2])
	}

	v, err := tbl.Cell(0, "score")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if f, ok := v.Float(); !ok || f != 9.5 {
		t.Errorf("Expected score 9.5, got %v", v)
	}
}

func TestLoadSheetSelector(t *testing.T) {
	path := writeFixture(t)

	// By name.
	tbl, _, err := Load(path, "Extra")
	if err != nil {
		t.Fatalf("Load by name failed: %v", err)
	}
	if tbl.Name != "Extra" || len(tbl.Columns) != 1 || tbl.Columns[0] != "only" {
		t.Errorf("Unexpected Extra sheet table: %v", tbl.Columns)
	}

	// By 0-based index.
	tbl, _, err = Load(path, "1")
	if err != nil {
		t.Fatalf("Load by index failed: %v", err)
	}
	if tbl.Name != "Extra" {
		t.Errorf("Expected sheet Extra by index, got %q", tbl.Name)
	}

	// Unknown selector.
	_, _, err = Load(path, "Nope")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Expected *ReadError, got %T", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"), "")
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected *ReadError, got %T (%v)", err, err)
	}
	if readErr.Path == "" {
		t.Error("ReadError should carry the path")
	}
}

func TestWriteSheetsRoundTrip(t *testing.T) {
	src := table.New("Data", []string{"id", "name"})
	src.Kinds = []table.Kind{table.KindInteger, table.KindText}
	src.AppendRow([]table.Value{table.Integer(1), table.Text("alice")})
	src.AppendRow([]table.Value{table.Integer(2), table.Missing()})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteSheets(path, []Sheet{{Name: "Data", Table: src}}); err != nil {
		t.Fatalf("WriteSheets failed: %v", err)
	}

	got, sheets, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load after write failed: %v", err)
	}
	if len(sheets) != 1 || sheets[0] != "Data" {
		t.Errorf("Expected one sheet Data, got %v", sheets)
	}
	if got.NumRows() != 2 {
		t.Fatalf("Expected 2 rows back, got %d", got.NumRows())
	}
	v, _ := got.Cell(0, "id")
	if i, ok := v.Int(); !ok || i != 1 {
		t.Errorf("Expected id 1 back, got %v", v)
	}
	v, _ = got.Cell(1, "name")
	if !v.IsMissing() {
		t.Errorf("Expected missing cell back, got %v", v)
	}
}

func TestWriteSheetsTruncatesLongNames(t *testing.T) {
	src := table.New("x", []string{"a"})
	src.AppendRow([]table.Value{table.Integer(1)})

	long := strings.Repeat("s", 40)
	path := filepath.Join(t.TempDir(), "long.xlsx")
	if err := WriteSheets(path, []Sheet{{Name: long, Table: src}}); err != nil {
		t.Fatalf("WriteSheets failed: %v", err)
	}

	_, sheets, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sheets) != 1 || len(sheets[0]) != 31 {
		t.Errorf("Expected one 31-char sheet name, got %v", sheets)
	}
}

func TestEnsureExt(t *testing.T) {
	if got := EnsureExt("report"); got != "report.xlsx" {
		t.Errorf("EnsureExt(report) = %q", got)
	}
	if got := EnsureExt("report.XLSX"); got != "report.XLSX" {
		t.Errorf("EnsureExt should keep existing extension, got %q", got)
	}
}
