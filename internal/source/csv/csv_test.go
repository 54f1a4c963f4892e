package csv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"donare/internal/core"
	"donare/internal/log"
)

const sampleExport = `Submit Date,Amount,Organization,Tax ID,Charitable Sector,Recurring
01/15/2023,"$1,000.00",American Red Cross,53-0196605,Human Services,annually through indefinitely
06/30/2023,$250.00,The Nature Conservancy,53-0242652,Environment,
12/01/2024,$50.00,American Red Cross,53-0196605,Human Services,
`

func TestParse(t *testing.T) {
	got, err := parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("parsed %d donations, want 3", len(got))
	}

	first := got[0]
	if first.PayeeID != "53-0196605" {
		t.Errorf("PayeeID = %q", first.PayeeID)
	}
	if first.Amount.Cents != 100000 {
		t.Errorf("Amount.Cents = %d, want 100000", first.Amount.Cents)
	}
	if first.Date != core.NewDate(2023, 1, 15) {
		t.Errorf("Date = %v", first.Date)
	}
	if !first.ScheduleIsRecurring() {
		t.Error("first row should be recurring")
	}
	if got[1].ScheduleIsRecurring() {
		t.Error("row with empty schedule should not be recurring")
	}
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	input := "SUBMIT DATE,AMOUNT,ORGANIZATION,TAX ID,CHARITABLE SECTOR\n" +
		"03/01/2024,$10.00,Org,11-1111111,Education\n"
	got, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0].Schedule != "" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseMissingColumn(t *testing.T) {
	input := "Submit Date,Amount,Organization\n01/01/2024,$5.00,Org\n"
	_, err := parse(strings.NewReader(input))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	_, err := parse(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err = %v, want ErrEmptyFile", err)
	}
}

func TestParseBadRowsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad date", "not-a-date,$5.00,Org,11-1111111,Education,"},
		{"bad amount", "01/01/2024,five dollars,Org,11-1111111,Education,"},
		{"negative amount", "01/01/2024,-$5.00,Org,11-1111111,Education,"},
		{"empty payee id", "01/01/2024,$5.00,Org,,Education,"},
	}
	header := "Submit Date,Amount,Organization,Tax ID,Charitable Sector,Recurring\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(strings.NewReader(header + tt.row + "\n"))
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	logger := log.New(log.ComponentSource, log.Config{})
	s := New(filepath.Join(t.TempDir(), "nope.csv"), logger)
	if _, err := s.Read(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestFileSourceRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "donations.csv")
	if err := os.WriteFile(path, []byte(sampleExport), 0644); err != nil {
		t.Fatal(err)
	}
	logger := log.New(log.ComponentSource, log.Config{})
	got, err := New(path, logger).Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Read returned %d donations, want 3", len(got))
	}
}
