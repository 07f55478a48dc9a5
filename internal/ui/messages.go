// Package ui provides the Bubble Tea TUI for geophone.
package ui

import "github.com/abelbrown/geophone/internal/record"

// SheetLoaded is sent when the spreadsheet file has been decoded. This is
// the only asynchronous boundary before the pipeline: enrichment itself
// runs on the update loop when the message is handled.
type SheetLoaded struct {
	Path    string
	Columns []string
	Rows    []record.Row
	Err     error
}

// Exported is sent when the export file write finishes.
type Exported struct {
	Path string
	Err  error
}
