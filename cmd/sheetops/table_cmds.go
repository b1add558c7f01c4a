package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheetops/sheetops/pkg/sheetops/ops"
	"github.com/sheetops/sheetops/pkg/sheetops/xlsxio"
)

func newPreviewCmd() *cobra.Command {
	var sheet string
	var rows int
	cmd := &cobra.Command{
		Use:   "preview [input.xlsx]",
		Short: "Show the first rows of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			t, _ := sess.Active()
			fmt.Printf("%s | sheet %q | %d rows x %d columns\n",
				args[0], t.Name, t.NumRows(), t.NumColumns())
			printTable(os.Stdout, t, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index (default: first sheet)")
	cmd.Flags().IntVar(&rows, "rows", 200, "Maximum rows to show")
	return cmd
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], ""); err != nil {
				return err
			}
			for _, name := range sess.SheetNames() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newColumnsCmd() *cobra.Command {
	var sheet string
	cmd := &cobra.Command{
		Use:   "columns [input.xlsx]",
		Short: "List a sheet's columns and their inferred types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			t, _ := sess.Active()
			for i, col := range t.Columns {
				fmt.Printf("%s\t%s\n", col, t.Kinds[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	return cmd
}

func newEditCmd() *cobra.Command {
	var sheet, column, value, output string
	var row int
	cmd := &cobra.Command{
		Use:   "edit [input.xlsx]",
		Short: "Set one cell and save",
		Long: `Set one cell, parsing the value toward the column's inferred type.
Input that does not parse is stored as literal text. Without -o the file is
saved in place after a timestamped backup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			if err := sess.SetCell(row, column, value); err != nil {
				return err
			}
			if output != "" {
				return sess.SaveAs(output)
			}
			return sess.Save()
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().IntVar(&row, "row", 0, "0-based row position")
	cmd.Flags().StringVar(&column, "column", "", "Column name")
	cmd.Flags().StringVar(&value, "value", "", "New cell value")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of saving in place")
	cmd.MarkFlagRequired("column")
	return cmd
}

func newTrimCmd() *cobra.Command {
	var sheet, output string
	cmd := &cobra.Command{
		Use:   "trim [input.xlsx]",
		Short: "Strip surrounding whitespace from every text cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			changed, err := sess.TrimWhitespace()
			if err != nil {
				return err
			}
			fmt.Printf("trimmed %d cell(s)\n", changed)
			if output != "" {
				return sess.SaveAs(output)
			}
			return sess.Save()
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of saving in place")
	return cmd
}

func newDedupeCmd() *cobra.Command {
	var sheet, column, output string
	cmd := &cobra.Command{
		Use:   "dedupe [input.xlsx]",
		Short: "Remove duplicate rows by a key column, keeping the first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			before, _ := sess.Active()
			total := before.NumRows()
			removed, err := sess.Dedupe(column)
			if err != nil {
				return err
			}
			fmt.Printf("rows before: %d | after: %d | removed: %d\n",
				total, total-removed, removed)
			if output != "" {
				return sess.SaveAs(output)
			}
			return sess.Save()
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().StringVar(&column, "column", "", "Key column for duplicate detection")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write cleaned copy here instead of saving in place")
	cmd.MarkFlagRequired("column")
	return cmd
}

func newLookupCmd() *cobra.Command {
	var column, value, match, output string
	cmd := &cobra.Command{
		Use:   "lookup [input.xlsx]",
		Short: "Find rows whose column matches a value",
		Long: `Find rows by column value. Exact match compares trimmed text;
partial match is a case-insensitive substring search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			mode, err := ops.ParseMatchMode(match)
			if err != nil {
				return err
			}
			sess := newSession()
			result, err := sess.Lookup(args[0], column, value, mode)
			if err != nil {
				return err
			}
			if result.NumRows() == 0 {
				fmt.Println("no matching rows found")
				return nil
			}
			fmt.Printf("%d matching row(s)\n", result.NumRows())
			printTable(os.Stdout, result, 0)
			if output != "" {
				return sess.ExportTables(output, xlsxio.Sheet{Name: ops.SheetLookup, Table: result})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Column to search")
	cmd.Flags().StringVar(&value, "value", "", "Value to search for")
	cmd.Flags().StringVar(&match, "match", "exact", "Match mode: exact or partial")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export matched rows to this xlsx file")
	cmd.MarkFlagRequired("column")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var columnA, columnB, output string
	cmd := &cobra.Command{
		Use:   "compare [file1.xlsx] [file2.xlsx]",
		Short: "Compare two files by a key column each",
		Long: `Compare two workbooks by one key column per side. The result
workbook holds three sheets: Matches (inner join on the trimmed string
keys), Only_in_file1, and Only_in_file2.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := requireFile(p); err != nil {
					return err
				}
			}
			if columnB == "" {
				columnB = columnA
			}
			sess := newSession()
			result, err := sess.Compare(args[0], columnA, args[1], columnB)
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultCompareName(args[0], args[1])
			}
			err = sess.ExportTables(output,
				xlsxio.Sheet{Name: ops.SheetMatches, Table: result.Matched},
				xlsxio.Sheet{Name: ops.SheetOnlyLeft, Table: result.OnlyLeft},
				xlsxio.Sheet{Name: ops.SheetOnlyRight, Table: result.OnlyRight},
			)
			if err != nil {
				return err
			}
			fmt.Printf("matched: %d | only in %s: %d | only in %s: %d\nexported: %s\n",
				result.Matched.NumRows(),
				filepath.Base(args[0]), result.OnlyLeft.NumRows(),
				filepath.Base(args[1]), result.OnlyRight.NumRows(),
				sess.LastExported())
			return nil
		},
	}
	cmd.Flags().StringVar(&columnA, "column-a", "", "Key column in the first file")
	cmd.Flags().StringVar(&columnB, "column-b", "", "Key column in the second file (default: same as --column-a)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output workbook path")
	cmd.MarkFlagRequired("column-a")
	return cmd
}

// defaultCompareName mirrors the suggested export name: both stems plus a
// timestamp.
func defaultCompareName(p1, p2 string) string {
	stem := func(p string) string {
		base := filepath.Base(p)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("compare_%s__%s_%s.xlsx",
		stem(p1), stem(p2), time.Now().Format("20060102_150405"))
}
