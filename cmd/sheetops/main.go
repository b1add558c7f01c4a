// Package main provides the CLI entry point for sheetops.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sheetops/sheetops/pkg/sheetops/session"
	"github.com/sheetops/sheetops/pkg/sheetops/table"
)

var logLevel string

func main() {
	// A .env beside the binary may carry SHEETOPS_SMTP_* defaults.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "sheetops",
		Short: "Inspect, clean, compare, and forward spreadsheet files",
		Long: `sheetops loads xlsx workbooks for previewing and editing rows,
removes duplicates, compares two files by a key column, looks up rows,
computes quick statistics and charts, and forwards an exported file by
email or WhatsApp Web.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newPreviewCmd(),
		newSheetsCmd(),
		newColumnsCmd(),
		newEditCmd(),
		newTrimCmd(),
		newDedupeCmd(),
		newLookupCmd(),
		newCompareCmd(),
		newStatsCmd(),
		newCorrCmd(),
		newChartCmd(),
		newSendCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures the default slog text logger on stderr.
func setupLogging(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSession builds a session around the per-user settings document.
func newSession() *session.Session {
	settings := session.LoadSettings(session.DefaultSettingsPath())
	return session.New(settings, slog.Default())
}

// requireFile rejects paths that do not exist before handing them to the
// loader, for a friendlier message than the container error.
func requireFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	return nil
}

// printTable renders up to maxRows of a table as aligned text columns.
// maxRows <= 0 prints everything.
func printTable(w io.Writer, t *table.Table, maxRows int) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	n := t.NumRows()
	if maxRows > 0 && maxRows < n {
		n = maxRows
	}
	cells := make([]string, t.NumColumns())
	for r := 0; r < n; r++ {
		for c := range cells {
			cells[c] = t.Rows[r][c].String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	if n < t.NumRows() {
		fmt.Fprintf(w, "... %d of %d rows shown\n", n, t.NumRows())
	}
}
