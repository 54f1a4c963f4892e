package source

import (
	"context"
	"strings"
	"testing"

	"donare/internal/core"
	"donare/internal/log"
)

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types() {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("postgres").IsValid() {
		t.Error("unknown type should be invalid")
	}
}

func TestFactoryRejectsInvalidType(t *testing.T) {
	f := NewFactory(log.New(log.ComponentSource, log.Config{}))
	if _, err := f.CreateSource(context.Background(), Config{Type: "nope"}); err == nil {
		t.Fatal("expected error for invalid source type")
	}
}

func TestFactoryCSVRequiresPath(t *testing.T) {
	f := NewFactory(log.New(log.ComponentSource, log.Config{}))
	if _, err := f.CreateSource(context.Background(), Config{Type: CSVSource}); err == nil {
		t.Fatal("expected error for csv source without path")
	}
}

func TestFactorySheetsUsesConfiguredSpreadsheet(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	f := NewFactory(log.New(log.ComponentSource, log.Config{}))
	ctx := context.Background()

	_, err := f.CreateSource(ctx, Config{Type: SheetsSource})
	if err == nil || !strings.Contains(err.Error(), "spreadsheet") {
		t.Fatalf("expected missing-spreadsheet error, got %v", err)
	}

	// The configured id must reach the client: with it set the only missing
	// piece is credentials.
	_, err = f.CreateSource(ctx, Config{Type: SheetsSource, GoogleSpreadsheetID: "sheet-123"})
	if err == nil || !strings.Contains(err.Error(), "credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestFactoryMemorySource(t *testing.T) {
	f := NewFactory(log.New(log.ComponentSource, log.Config{}))
	rows := []core.Donation{{
		PayeeID:      "11-1111111",
		Organization: "Org",
		Sector:       "Education",
		Amount:       core.Money{Cents: 1000},
		Date:         core.NewDate(2024, 1, 1),
	}}

	res, err := f.CreateSource(context.Background(), Config{Type: MemorySource, Donations: rows})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}
	got, err := res.Reader.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].PayeeID != "11-1111111" {
		t.Errorf("unexpected donations: %+v", got)
	}
}

func TestFactoryMemorySourceDefaultsToSample(t *testing.T) {
	f := NewFactory(log.New(log.ComponentSource, log.Config{}))
	res, err := f.CreateSource(context.Background(), Config{Type: MemorySource})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}
	got, err := res.Reader.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) == 0 {
		t.Error("sample dataset should not be empty")
	}
	for _, d := range got {
		if err := d.Validate(); err != nil {
			t.Errorf("sample donation invalid: %v (%+v)", err, d)
		}
	}
}
