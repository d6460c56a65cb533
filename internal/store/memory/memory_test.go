package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dashboard/internal/core"
)

const (
	evilRabbit = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
	amyBurns   = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	firstInv   = "2f1c3a4e-5b6d-4e7f-8a9b-0c1d2e3f4a5b"
)

func newSeeded(t *testing.T) *Store {
	t.Helper()
	s, err := NewFromFile("")
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	return s
}

func TestStoreReads(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	rev, err := s.FetchRevenue(ctx)
	if err != nil || len(rev) != 12 || rev[11].Period != "Dec" {
		t.Fatalf("FetchRevenue() = %v, %v", rev, err)
	}

	customers, _ := s.ListCustomers(ctx)
	if len(customers) != 6 || customers[0].Name != "Amy Burns" {
		t.Fatalf("customers not sorted by name: %+v", customers)
	}

	rows, _ := s.ListInvoices(ctx)
	if len(rows) != 8 {
		t.Fatalf("ListInvoices() returned %d rows", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.After(rows[i-1].Date) {
			t.Fatalf("rows not newest first at %d", i)
		}
	}
	if rows[0].CustomerName == "" {
		t.Fatalf("customer name not joined")
	}

	form, err := s.FetchInvoiceForm(ctx, firstInv)
	if err != nil || form.CustomerID != evilRabbit || form.Amount.Cents != 15795 {
		t.Fatalf("FetchInvoiceForm() = %+v, %v", form, err)
	}
	if _, err := s.FetchInvoiceForm(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUpdateInvoice(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	upd := core.InvoiceUpdate{CustomerID: amyBurns, Amount: core.Money{Cents: 999}, Status: core.StatusPaid}
	inv, err := s.UpdateInvoice(ctx, firstInv, upd)
	if err != nil {
		t.Fatalf("UpdateInvoice() error = %v", err)
	}
	if inv.CustomerID != amyBurns || inv.Amount.Cents != 999 || inv.Status != core.StatusPaid || inv.Date.IsZero() {
		t.Fatalf("unexpected invoice: %+v", inv)
	}

	form, _ := s.FetchInvoiceForm(ctx, firstInv)
	if form.Status != core.StatusPaid {
		t.Fatalf("update not persisted: %+v", form)
	}

	if _, err := s.UpdateInvoice(ctx, "missing", upd); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	upd.CustomerID = "ghost"
	if _, err := s.UpdateInvoice(ctx, firstInv, upd); !errors.Is(err, core.ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
	upd.CustomerID = amyBurns
	upd.Amount = core.Money{}
	if _, err := s.UpdateInvoice(ctx, firstInv, upd); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestStoreRevenueIsCopied(t *testing.T) {
	s := newSeeded(t)
	rev, _ := s.FetchRevenue(context.Background())
	rev[0].Amount.Cents = 1

	again, _ := s.FetchRevenue(context.Background())
	if again[0].Amount.Cents == 1 {
		t.Fatal("FetchRevenue must not expose internal state")
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(cents int64) {
			defer wg.Done()
			_, _ = s.UpdateInvoice(ctx, firstInv, core.InvoiceUpdate{
				CustomerID: evilRabbit, Amount: core.Money{Cents: cents}, Status: core.StatusPending,
			})
			_, _ = s.ListInvoices(ctx)
		}(int64(i))
	}
	wg.Wait()
}
