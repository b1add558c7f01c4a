// Package xlsxio reads and writes xlsx workbooks as table.Table values.
package xlsxio

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the requested sheet selector matched nothing.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadError reports a workbook that could not be opened or a sheet that
// could not be read.
type ReadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *ReadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("read %q sheet %q: %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("read %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError reports a workbook that could not be serialized or saved,
// after the coerce-to-text retry.
type WriteError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("write %q sheet %q: %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
