// Package csv reads donation exports in the delimited format produced by the
// giving account's transaction download.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"donare/internal/core"
	"donare/internal/log"
)

// Column names as they appear in the export header. Matching is
// case-insensitive.
const (
	colDate         = "submit date"
	colAmount       = "amount"
	colOrganization = "organization"
	colPayeeID      = "tax id"
	colSector       = "charitable sector"
	colSchedule     = "recurring"
)

var requiredColumns = []string{colDate, colAmount, colOrganization, colPayeeID, colSector}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyFile     = errors.New("empty file")
)

// FileSource reads donations from a CSV file on disk.
type FileSource struct {
	path   string
	logger *log.Logger
}

func New(path string, logger *log.Logger) *FileSource {
	return &FileSource{path: path, logger: logger.WithComponent(log.ComponentSource)}
}

// Read loads and parses the whole file. Any malformed row is a fatal error;
// a donation export is small enough that partial loads are not worth the
// silent data loss.
func (s *FileSource) Read(ctx context.Context) ([]core.Donation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open donation export: %w", err)
	}
	defer f.Close()

	donations, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.logger.Info("Loaded donation export",
		log.FieldOperation, log.OpLoad,
		log.FieldPath, s.path,
		log.FieldCount, len(donations))
	return donations, nil
}

func parse(r io.Reader) ([]core.Donation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var donations []core.Donation
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line++

		d, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// columnIndex maps lower-cased header names to positions and checks that
// every required column is present. The schedule column is optional; older
// exports predate it.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseRecord(record []string, cols map[string]int) (core.Donation, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := core.ParseDate(field(colDate))
	if err != nil {
		return core.Donation{}, fmt.Errorf("submit date %q: %w", field(colDate), err)
	}

	amount, err := core.ParseCurrency(field(colAmount))
	if err != nil {
		return core.Donation{}, fmt.Errorf("amount %q: %w", field(colAmount), err)
	}

	d := core.Donation{
		PayeeID:      field(colPayeeID),
		Organization: field(colOrganization),
		Sector:       field(colSector),
		Amount:       amount,
		Date:         date,
		Schedule:     field(colSchedule),
	}
	if err := d.Validate(); err != nil {
		return core.Donation{}, err
	}
	return d, nil
}
