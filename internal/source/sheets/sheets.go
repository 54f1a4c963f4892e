// Package sheets reads donations from a Google Sheets worksheet carrying the
// same logical columns as the CSV export.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"donare/internal/core"
	"donare/internal/log"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// New creates a Sheets client for the given spreadsheet. An empty sheet name
// defaults to "Donations". Credentials come from the environment via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Donations"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentSource),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Read pulls the whole worksheet. Row 1 must be a header with the same
// logical columns as the CSV export; header matching is case-insensitive.
func (c *Client) Read(ctx context.Context) ([]core.Donation, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", c.sheetName, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", c.sheetName)
	}

	cols := headerIndex(resp.Values[0])
	donations := make([]core.Donation, 0, len(resp.Values)-1)
	for i, row := range resp.Values[1:] {
		d, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", c.sheetName, i+2, err)
		}
		donations = append(donations, d)
	}

	c.logger.Info("Loaded donations from sheet",
		log.FieldOperation, log.OpLoad,
		log.FieldSource, "sheets",
		log.FieldCount, len(donations))
	return donations, nil
}

func headerIndex(header []any) map[string]int {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		name, _ := cell.(string)
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func parseRow(row []any, cols map[string]int) (core.Donation, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		s, _ := row[i].(string)
		return strings.TrimSpace(s)
	}

	date, err := core.ParseDate(cell("submit date"))
	if err != nil {
		return core.Donation{}, fmt.Errorf("submit date %q: %w", cell("submit date"), err)
	}
	amount, err := core.ParseCurrency(cell("amount"))
	if err != nil {
		return core.Donation{}, fmt.Errorf("amount %q: %w", cell("amount"), err)
	}

	d := core.Donation{
		PayeeID:      cell("tax id"),
		Organization: cell("organization"),
		Sector:       cell("charitable sector"),
		Amount:       amount,
		Date:         date,
		Schedule:     cell("recurring"),
	}
	if err := d.Validate(); err != nil {
		return core.Donation{}, err
	}
	return d, nil
}
