// Package source defines the donation input port and the factory that picks
// an implementation from configuration.
package source

import (
	"context"

	"donare/internal/core"
)

// Reader loads the full donation history from a backing source.
type Reader interface {
	Read(ctx context.Context) ([]core.Donation, error)
}

// CleanupFunc releases resources held by a source.
type CleanupFunc func() error

// Result contains the source instance and optional cleanup function.
type Result struct {
	Reader  Reader
	Cleanup CleanupFunc
}

// Type identifies a donation source implementation.
type Type string

const (
	CSVSource    Type = "csv"
	SheetsSource Type = "sheets"
	MemorySource Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the source type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case CSVSource, SheetsSource, MemorySource:
		return true
	default:
		return false
	}
}

// Types returns all valid source types.
func Types() []Type {
	return []Type{CSVSource, SheetsSource, MemorySource}
}

// Config holds configuration for source creation.
type Config struct {
	Type Type

	// CSV specific
	CSVPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Memory specific
	Donations []core.Donation
}
