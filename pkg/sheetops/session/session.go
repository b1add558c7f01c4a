// Package session orchestrates the active table, the auxiliary file cache,
// and settings in response to user actions. It owns all mutable process
// state; the engines it calls are pure.
package session

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sheetops/sheetops/pkg/sheetops/ops"
	"github.com/sheetops/sheetops/pkg/sheetops/table"
	"github.com/sheetops/sheetops/pkg/sheetops/xlsxio"
)

// backupDir is the subdirectory, next to the source file, that receives
// timestamped copies before a save-in-place.
const backupDir = "sheetops_backups"

// backupStamp is the timestamp prefix layout for backup file names.
const backupStamp = "20060102_150405"

// ErrNoTable indicates an operation that needs a loaded active table.
var ErrNoTable = errors.New("no table loaded")

// State tracks the active table's edit lifecycle.
type State int

const (
	// StateEmpty means no table has been loaded.
	StateEmpty State = iota
	// StateLoaded means a table is present with no unsaved edits.
	StateLoaded
	// StateDirty means edits were applied since the last save or export.
	StateDirty
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateDirty:
		return "dirty"
	default:
		return "empty"
	}
}

// Session holds the single active table plus the session-lifetime caches.
// Mutating calls must be serialized by the caller; the session is not safe
// for concurrent use.
type Session struct {
	log      *slog.Logger
	settings *Settings

	active     *table.Table
	path       string
	sheetNames []string
	state      State

	// aux caches secondary tables by file path for lookup; entries live for
	// the whole session and are never evicted.
	aux map[string]*table.Table

	lastExported string
}

// New builds an empty session around the given settings document.
func New(settings *Settings, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		log:          log,
		settings:     settings,
		aux:          make(map[string]*table.Table),
		lastExported: settings.LastExported,
	}
}

// State reports the active table's lifecycle state.
func (s *Session) State() State { return s.state }

// Active returns the loaded table, or ErrNoTable.
func (s *Session) Active() (*table.Table, error) {
	if s.active == nil {
		return nil, ErrNoTable
	}
	return s.active, nil
}

// Path is the active table's source file, empty when nothing is loaded.
func (s *Session) Path() string { return s.path }

// SheetNames lists every sheet of the active table's source workbook.
func (s *Session) SheetNames() []string { return s.sheetNames }

// LastExported is the most recent export target, spanning loads.
func (s *Session) LastExported() string { return s.lastExported }

// Settings exposes the session's settings document.
func (s *Session) Settings() *Settings { return s.settings }

// Load replaces the active table with a sheet read from path, clearing any
// unsaved edits. The loaded table is also cached for lookups.
func (s *Session) Load(path, sheetSelector string) error {
	t, sheets, err := xlsxio.Load(path, sheetSelector)
	if err != nil {
		return err
	}
	s.active = t
	s.path = path
	s.sheetNames = sheets
	s.state = StateLoaded
	s.aux[path] = t

	s.settings.LastOpened = path
	s.storeSettings()
	s.log.Info("table loaded", "path", path, "sheet", t.Name,
		"rows", t.NumRows(), "columns", t.NumColumns())
	return nil
}

// ReloadSheet rereads a sheet of the current file, discarding edits.
func (s *Session) ReloadSheet(sheetSelector string) error {
	if s.path == "" {
		return ErrNoTable
	}
	return s.Load(s.path, sheetSelector)
}

// SetCell edits one cell of the active table, marking the session dirty.
// The raw value is parsed toward the column's kind, falling back to text.
func (s *Session) SetCell(row int, column, raw string) error {
	if s.active == nil {
		return ErrNoTable
	}
	if err := s.active.SetCell(row, column, raw); err != nil {
		return err
	}
	s.state = StateDirty
	return nil
}

// TrimWhitespace strips every text cell of the active table in place and
// reports the number of changed cells.
func (s *Session) TrimWhitespace() (int, error) {
	if s.active == nil {
		return 0, ErrNoTable
	}
	changed := s.active.TrimWhitespace()
	if changed > 0 {
		s.state = StateDirty
	}
	return changed, nil
}

// Dedupe removes duplicate rows of the active table by key column, keeping
// the first occurrence, and reports how many rows were dropped.
func (s *Session) Dedupe(keyColumn string) (int, error) {
	if s.active == nil {
		return 0, ErrNoTable
	}
	cleaned, removed, err := ops.Dedupe(s.active, keyColumn)
	if err != nil {
		return 0, err
	}
	s.active = cleaned
	s.aux[s.path] = cleaned
	if removed > 0 {
		s.state = StateDirty
	}
	s.log.Info("duplicates removed", "column", keyColumn, "removed", removed,
		"rows", cleaned.NumRows())
	return removed, nil
}

// Save writes the active table back to its source file under its sheet
// name. The on-disk file is first copied to a timestamped backup; a backup
// failure is logged and never blocks the save.
func (s *Session) Save() error {
	if s.active == nil {
		return ErrNoTable
	}
	if err := s.backup(s.path); err != nil {
		s.log.Warn("backup failed, saving anyway", "path", s.path, "error", err)
	}
	if err := xlsxio.WriteSheets(s.path, []xlsxio.Sheet{{Name: s.active.Name, Table: s.active}}); err != nil {
		return err
	}
	s.state = StateLoaded
	s.markExported(s.path)
	return nil
}

// SaveAs writes the active table to a new file. The session keeps pointing
// at the original source path.
func (s *Session) SaveAs(path string) error {
	return s.Export(path)
}

// Export writes the active table to path as a single-sheet workbook.
func (s *Session) Export(path string) error {
	if s.active == nil {
		return ErrNoTable
	}
	if err := xlsxio.WriteSheets(path, []xlsxio.Sheet{{Name: "Sheet1", Table: s.active}}); err != nil {
		return err
	}
	s.state = StateLoaded
	s.markExported(xlsxio.EnsureExt(path))
	return nil
}

// ExportTables writes derived result tables (lookup hits, comparison
// partitions, statistics) to path. The active table's state is unaffected.
func (s *Session) ExportTables(path string, sheets ...xlsxio.Sheet) error {
	if err := xlsxio.WriteSheets(path, sheets); err != nil {
		return err
	}
	s.markExported(xlsxio.EnsureExt(path))
	return nil
}

// LoadAux returns the cached table for path, reading its first sheet on the
// first request. Cached entries persist for the session's lifetime.
func (s *Session) LoadAux(path string) (*table.Table, error) {
	if t, ok := s.aux[path]; ok {
		return t, nil
	}
	t, _, err := xlsxio.Load(path, "")
	if err != nil {
		return nil, err
	}
	s.aux[path] = t
	return t, nil
}

// Lookup finds rows in the (cached) table at path whose column matches the
// query under the given mode.
func (s *Session) Lookup(path, column, query string, mode ops.MatchMode) (*table.Table, error) {
	t, err := s.LoadAux(path)
	if err != nil {
		return nil, err
	}
	return ops.Find(t, column, query, mode)
}

// Compare rereads both files fresh from disk, bypassing the aux cache, and
// joins them on their key columns.
func (s *Session) Compare(pathA, keyA, pathB, keyB string) (*ops.Comparison, error) {
	a, _, err := xlsxio.Load(pathA, "")
	if err != nil {
		return nil, err
	}
	b, _, err := xlsxio.Load(pathB, "")
	if err != nil {
		return nil, err
	}
	return ops.Compare(a, keyA, b, keyB)
}

// markExported records a successful export in session state and settings.
func (s *Session) markExported(path string) {
	s.lastExported = path
	s.settings.LastExported = path
	s.storeSettings()
}

// storeSettings persists the settings document, logging on failure; a
// settings write problem never fails the triggering operation.
func (s *Session) storeSettings() {
	if err := s.settings.Store(); err != nil {
		s.log.Warn("settings not saved", "error", err)
	}
}

// backup copies the file at path into the backup subdirectory beside it,
// prefixed with a timestamp.
func (s *Session) backup(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dir := filepath.Join(filepath.Dir(path), backupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := time.Now().Format(backupStamp) + "_" + filepath.Base(path)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	s.log.Debug("backup written", "backup", filepath.Join(dir, name))
	return nil
}
