// Package sheets defines the spreadsheet mirror of invoice updates and its
// row layout. Implementations live in the google and memory subpackages.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dashboard/internal/core"
)

// Header is the first row of a mirror sheet.
var Header = []string{"Timestamp", "Invoice", "Customer", "Amount", "Status"}

// Row is one mirrored invoice update.
type Row struct {
	Timestamp  time.Time
	InvoiceID  string
	CustomerID string
	Amount     core.Money
	Status     core.InvoiceStatus
}

// Values returns the row in sheet column order.
func (r Row) Values() []any {
	return []any{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.InvoiceID,
		r.CustomerID,
		r.Amount.Decimal(),
		r.Status.String(),
	}
}

// ParseRow is the inverse of Row.Values. Cells may come back from the API
// as strings or numbers.
func ParseRow(cells []any) (Row, error) {
	if len(cells) < len(Header) {
		return Row{}, fmt.Errorf("row has %d cells, want %d", len(cells), len(Header))
	}
	cols := make([]string, len(cells))
	for i, c := range cells {
		cols[i] = strings.TrimSpace(fmt.Sprint(c))
	}

	ts, err := time.Parse(time.RFC3339, cols[0])
	if err != nil {
		return Row{}, fmt.Errorf("timestamp %q: %w", cols[0], err)
	}
	cents, err := core.ParseDecimalToCents(cols[3])
	if err != nil {
		return Row{}, fmt.Errorf("amount %q: %w", cols[3], err)
	}
	status, err := core.ParseStatus(cols[4])
	if err != nil {
		return Row{}, fmt.Errorf("status %q: %w", cols[4], err)
	}
	return Row{
		Timestamp:  ts,
		InvoiceID:  cols[1],
		CustomerID: cols[2],
		Amount:     core.Money{Cents: cents},
		Status:     status,
	}, nil
}

// Mirror appends invoice updates to a spreadsheet and returns a reference to
// the written range.
type Mirror interface {
	AppendInvoice(ctx context.Context, r Row) (string, error)
}

// Reader lists mirrored rows, oldest first.
type Reader interface {
	ListRows(ctx context.Context) ([]Row, error)
}
