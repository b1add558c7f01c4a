package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sheetops/sheetops/pkg/sheetops/chart"
	"github.com/sheetops/sheetops/pkg/sheetops/stats"
	"github.com/sheetops/sheetops/pkg/sheetops/xlsxio"
)

func newStatsCmd() *cobra.Command {
	var sheet, output string
	cmd := &cobra.Command{
		Use:   "stats [input.xlsx]",
		Short: "Descriptive statistics of the numeric columns",
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
			desc, err := stats.Describe(t)
			if err != nil {
				return err
			}
			printTable(os.Stdout, desc, 0)
			if output != "" {
				return sess.ExportTables(output, xlsxio.Sheet{Name: stats.SheetDescribe, Table: desc})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export statistics to this xlsx file")
	return cmd
}

func newCorrCmd() *cobra.Command {
	var sheet, output string
	cmd := &cobra.Command{
		Use:   "corr [input.xlsx]",
		Short: "Pearson correlation matrix of the numeric columns",
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
			corr, err := stats.Correlation(t)
			if err != nil {
				return err
			}
			printTable(os.Stdout, corr, 0)
			if output != "" {
				return sess.ExportTables(output, xlsxio.Sheet{Name: stats.SheetCorrelation, Table: corr})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export the matrix to this xlsx file")
	return cmd
}

func newChartCmd() *cobra.Command {
	var sheet, kindStr, xColumn, yColumn, output string
	cmd := &cobra.Command{
		Use:   "chart [input.xlsx]",
		Short: "Render a quick line, bar, or pie chart as PNG",
		Long: `Render a quick chart of one column. Line and bar plot the Y
column's numeric values; pie plots the value counts of the Y column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			kind, err := chart.ParseKind(kindStr)
			if err != nil {
				return err
			}
			sess := newSession()
			if err := sess.Load(args[0], sheet); err != nil {
				return err
			}
			t, _ := sess.Active()

			if output == "" {
				output = filepath.Join(os.TempDir(),
					fmt.Sprintf("sheetops_chart_%s.png", uuid.NewString()))
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := chart.Render(t, kind, xColumn, yColumn, f); err != nil {
				os.Remove(output)
				return err
			}
			fmt.Printf("chart written: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or 0-based index")
	cmd.Flags().StringVar(&kindStr, "type", "line", "Chart type: line, bar, or pie")
	cmd.Flags().StringVar(&xColumn, "x", "", "X column (optional)")
	cmd.Flags().StringVar(&yColumn, "y", "", "Y column")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG output path (default: temp file)")
	cmd.MarkFlagRequired("y")
	return cmd
}
