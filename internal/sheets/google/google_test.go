package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"dashboard/internal/core"
	"dashboard/internal/sheets"
)

// fakeSheets implements the subset of the Sheets REST API the client uses.
type fakeSheets struct {
	mu      sync.Mutex
	tabs    map[string][][]any
	creates int
	gets    int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const base = "/v4/spreadsheets/sheet-id"
	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && path == base:
		f.gets++
		var resp gsheet.Spreadsheet
		for title := range f.tabs {
			resp.Sheets = append(resp.Sheets, &gsheet.Sheet{Properties: &gsheet.SheetProperties{Title: title}})
		}
		json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPost && path == base+":batchUpdate":
		var req gsheet.BatchUpdateSpreadsheetRequest
		json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			if rq.AddSheet != nil {
				f.tabs[rq.AddSheet.Properties.Title] = nil
				f.creates++
			}
		}
		w.Write([]byte(`{}`))

	case strings.HasPrefix(path, base+"/values/"):
		rng := strings.TrimPrefix(path, base+"/values/")
		isAppend := strings.HasSuffix(rng, ":append")
		rng = strings.TrimSuffix(rng, ":append")
		tab := rng[:strings.Index(rng, "!")]

		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(gsheet.ValueRange{Range: rng, Values: f.tabs[tab]})
		default:
			var vr gsheet.ValueRange
			json.NewDecoder(r.Body).Decode(&vr)
			f.tabs[tab] = append(f.tabs[tab], vr.Values...)
			if isAppend {
				n := len(f.tabs[tab])
				json.NewEncoder(w).Encode(gsheet.AppendValuesResponse{
					Updates: &gsheet.UpdateValuesResponse{UpdatedRange: tab + "!A" + strconv.Itoa(n) + ":E" + strconv.Itoa(n)},
				})
				return
			}
			w.Write([]byte(`{}`))
		}

	default:
		http.Error(w, "unexpected "+r.Method+" "+path, http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	c := NewWithService(svc, Config{SpreadsheetID: "sheet-id", SheetName: "Invoices"})
	c.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestAppendInvoice_CreatesYearSheetOnce(t *testing.T) {
	fake := &fakeSheets{tabs: map[string][][]any{}}
	c := newTestClient(t, fake)
	ctx := context.Background()

	row := sheets.Row{
		Timestamp:  time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		InvoiceID:  "inv-1",
		CustomerID: "cust-1",
		Amount:     core.Money{Cents: 15795},
		Status:     core.StatusPending,
	}

	ref, err := c.AppendInvoice(ctx, row)
	if err != nil {
		t.Fatalf("AppendInvoice: %v", err)
	}
	if ref != "2026 Invoices!A2:E2" {
		t.Fatalf("ref = %q", ref)
	}

	row.Status = core.StatusPaid
	if _, err := c.AppendInvoice(ctx, row); err != nil {
		t.Fatalf("AppendInvoice (second): %v", err)
	}

	if fake.creates != 1 || fake.gets != 1 {
		t.Fatalf("sheet lookups=%d creates=%d, want 1 and 1", fake.gets, fake.creates)
	}
	tab := fake.tabs["2026 Invoices"]
	if len(tab) != 3 || tab[0][0] != "Timestamp" {
		t.Fatalf("unexpected tab contents: %v", tab)
	}

	rows, err := c.ListRows(ctx)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 2 || rows[0].Status != core.StatusPending || rows[1].Status != core.StatusPaid {
		t.Fatalf("ListRows = %+v", rows)
	}
	if rows[0].Amount.Cents != 15795 {
		t.Fatalf("amount = %d", rows[0].Amount.Cents)
	}
}

func TestAppendInvoice_ExistingSheet(t *testing.T) {
	fake := &fakeSheets{tabs: map[string][][]any{"2025 Invoices": {{"Timestamp"}}}}
	c := newTestClient(t, fake)

	_, err := c.AppendInvoice(context.Background(), sheets.Row{
		Timestamp: time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
		InvoiceID: "inv-2",
		Amount:    core.Money{Cents: 100},
		Status:    core.StatusPaid,
	})
	if err != nil {
		t.Fatalf("AppendInvoice: %v", err)
	}
	if fake.creates != 0 {
		t.Fatalf("existing sheet must not be recreated")
	}
	if len(fake.tabs["2025 Invoices"]) != 2 {
		t.Fatalf("row not appended: %v", fake.tabs)
	}
}

func TestAppendInvoice_StampsZeroTimestamp(t *testing.T) {
	fake := &fakeSheets{tabs: map[string][][]any{}}
	c := newTestClient(t, fake)

	if _, err := c.AppendInvoice(context.Background(), sheets.Row{InvoiceID: "inv-3", Amount: core.Money{Cents: 1}, Status: core.StatusPaid}); err != nil {
		t.Fatalf("AppendInvoice: %v", err)
	}
	tab := fake.tabs["2026 Invoices"]
	if len(tab) != 2 || tab[1][0] != "2026-05-01T00:00:00Z" {
		t.Fatalf("unexpected tab: %v", tab)
	}
}

func TestNew_MissingConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil || err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := New(context.Background(), Config{SpreadsheetID: "x"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = New(context.Background(), Config{SpreadsheetID: "x", CredentialsFile: "/nonexistent/sa.json"})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNilServiceErrors(t *testing.T) {
	c := &Client{}
	if _, err := c.AppendInvoice(context.Background(), sheets.Row{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := c.ListRows(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Invoices", 2026, "2026 Invoices"},
		{" Invoices ", 2026, "2026 Invoices"},
		{"2024 Invoices", 2026, "2024 Invoices"},
		{"", 2026, ""},
		{"1234567", 2026, "2026 1234567"},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
		}
	}
}

func TestParseRowsSkipsHeaderAndJunk(t *testing.T) {
	rows := parseRows([][]any{
		{"Timestamp", "Invoice", "Customer", "Amount", "Status"},
		{"2026-01-01T00:00:00Z", "inv", "c", "10.00", "paid"},
		{"", "", ""},
	})
	if len(rows) != 1 || rows[0].Amount.Cents != 1000 {
		t.Fatalf("parseRows = %+v", rows)
	}
}
