// Package memory is an in-process sheets.Mirror used in tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dashboard/internal/sheets"
)

var (
	_ sheets.Mirror = (*Store)(nil)
	_ sheets.Reader = (*Store)(nil)
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.Row
	now  func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// AppendInvoice stores the row and returns a synthetic row reference.
func (s *Store) AppendInvoice(_ context.Context, r sheets.Row) (string, error) {
	if r.InvoiceID == "" {
		return "", fmt.Errorf("missing invoice id")
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, r)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// ListRows returns a copy of the mirrored rows.
func (s *Store) ListRows(_ context.Context) ([]sheets.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.Row(nil), s.rows...), nil
}
