// Package memory is the in-process data backend. It is seeded from the YAML
// fixture and loses all edits on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dashboard/internal/core"
	"dashboard/internal/ports"
	"dashboard/internal/seed"
)

var _ ports.Store = (*Store)(nil)

type Store struct {
	mu        sync.RWMutex
	customers map[string]core.Customer
	invoices  map[string]core.Invoice
	revenue   []core.RevenuePoint
}

// New returns a store holding a copy of d.
func New(d seed.Data) *Store {
	s := &Store{
		customers: make(map[string]core.Customer, len(d.Customers)),
		invoices:  make(map[string]core.Invoice, len(d.Invoices)),
	}
	for _, c := range d.Customers {
		s.customers[c.ID] = c
	}
	for _, inv := range d.Invoices {
		s.invoices[inv.ID] = inv
	}
	s.revenue = append([]core.RevenuePoint(nil), d.Revenue...)
	return s
}

// NewFromFile seeds the store from path, or from the built-in sample when
// path is empty.
func NewFromFile(path string) (*Store, error) {
	d, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

func (s *Store) FetchRevenue(_ context.Context) ([]core.RevenuePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.RevenuePoint(nil), s.revenue...), nil
}

func (s *Store) FetchInvoiceForm(_ context.Context, id string) (core.InvoiceForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok {
		return core.InvoiceForm{}, core.ErrNotFound
	}
	return inv.Form(), nil
}

// ListInvoices returns invoices newest first, ties broken by id.
func (s *Store) ListInvoices(_ context.Context) ([]core.InvoiceRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]core.InvoiceRow, 0, len(s.invoices))
	for _, inv := range s.invoices {
		c := s.customers[inv.CustomerID]
		rows = append(rows, core.InvoiceRow{Invoice: inv, CustomerName: c.Name, CustomerEmail: c.Email})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]core.CustomerOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.CustomerOption, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c.Option())
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) UpdateInvoice(_ context.Context, id string, u core.InvoiceUpdate) (core.Invoice, error) {
	if err := u.Validate(); err != nil {
		return core.Invoice{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return core.Invoice{}, core.ErrNotFound
	}
	if _, ok := s.customers[u.CustomerID]; !ok {
		return core.Invoice{}, core.ErrUnknownCustomer
	}
	inv.CustomerID = u.CustomerID
	inv.Amount = u.Amount
	inv.Status = u.Status
	s.invoices[id] = inv
	return inv, nil
}

func (s *Store) Close() error { return nil }
