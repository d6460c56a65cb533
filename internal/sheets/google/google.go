package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"dashboard/internal/sheets"
)

var (
	_ sheets.Mirror = (*Client)(nil)
	_ sheets.Reader = (*Client)(nil)
)

// Config selects the spreadsheet and the service account used to write it.
type Config struct {
	SpreadsheetID string
	// SheetName is the base tab name; the update year is prefixed ("2026 Invoices").
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// Client mirrors invoice updates to one tab per year of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
	now           func() time.Time

	mu    sync.Mutex
	known map[string]bool
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, cfg), nil
}

// NewWithService wraps an existing service, e.g. one pointed at a test endpoint.
func NewWithService(svc *gsheet.Service, cfg Config) *Client {
	base := strings.TrimSpace(cfg.SheetName)
	if base == "" {
		base = "Invoices"
	}
	return &Client{
		svc:           svc,
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		sheetBase:     base,
		now:           time.Now,
		known:         make(map[string]bool),
	}
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte

	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", cfg.CredentialsFile)
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendInvoice appends r to the tab for the row's year and returns the
// updated range.
func (c *Client) AppendInvoice(ctx context.Context, r sheets.Row) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = c.now()
		r.Timestamp = ts
	}
	sheet := yearPrefixedName(c.sheetBase, ts.Year())
	if err := c.ensureSheet(ctx, sheet); err != nil {
		return "", err
	}

	vr := &gsheet.ValueRange{Values: [][]any{r.Values()}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:E", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return sheet, nil
}

// ListRows reads the current year's tab. Rows that do not parse, including
// the header, are skipped.
func (c *Client) ListRows(ctx context.Context) ([]sheets.Row, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := yearPrefixedName(c.sheetBase, c.now().Year()) + "!A:E"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseRows(resp.Values), nil
}

// ensureSheet creates the tab with a header row the first time it is used.
func (c *Client) ensureSheet(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.known[name] {
		return nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet %s: %w", c.spreadsheetID, err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == name {
			c.known[name] = true
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{Requests: []*gsheet.Request{{
		AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: name}},
	}}}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	header := make([]any, len(sheets.Header))
	for i, h := range sheets.Header {
		header[i] = h
	}
	hr := &gsheet.ValueRange{Values: [][]any{header}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, name+"!A1:E1", hr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header to %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Created mirror sheet", "sheet", name)
	c.known[name] = true
	return nil
}

func parseRows(values [][]any) []sheets.Row {
	out := make([]sheets.Row, 0, len(values))
	for _, cells := range values {
		r, err := sheets.ParseRow(cells)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
