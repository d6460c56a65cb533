package storage

import (
	"context"
	"errors"
	"testing"

	"dashboard/internal/core"
	"dashboard/internal/seed"
)

const (
	evilRabbit = "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"
	amyBurns   = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	firstInv   = "2f1c3a4e-5b6d-4e7f-8a9b-0c1d2e3f4a5b"
	missingInv = "00000000-0000-4000-8000-000000000000"
)

type seeder interface {
	Seed(ctx context.Context, d seed.Data) error
}

func seedDefault(t *testing.T, s seeder) {
	t.Helper()
	d, err := seed.Load("")
	if err != nil {
		t.Fatalf("seed.Load: %v", err)
	}
	if err := s.Seed(context.Background(), d); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// seeding twice must be idempotent
	if err := s.Seed(context.Background(), d); err != nil {
		t.Fatalf("Seed (again): %v", err)
	}
}

type repository interface {
	seeder
	FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error)
	FetchInvoiceForm(ctx context.Context, id string) (core.InvoiceForm, error)
	ListInvoices(ctx context.Context) ([]core.InvoiceRow, error)
	ListCustomers(ctx context.Context) ([]core.CustomerOption, error)
	UpdateInvoice(ctx context.Context, id string, u core.InvoiceUpdate) (core.Invoice, error)
}

func exerciseRepository(t *testing.T, r repository) {
	t.Helper()
	ctx := context.Background()
	seedDefault(t, r)

	rev, err := r.FetchRevenue(ctx)
	if err != nil {
		t.Fatalf("FetchRevenue: %v", err)
	}
	if len(rev) != 12 || rev[0].Period != "Jan" || rev[0].Amount.Cents != 200000 {
		t.Fatalf("unexpected revenue: %+v", rev)
	}

	customers, err := r.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 6 || customers[0].Name != "Amy Burns" {
		t.Fatalf("unexpected customers: %+v", customers)
	}

	rows, err := r.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("ListInvoices returned %d rows", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.After(rows[i-1].Date) {
			t.Fatalf("rows not newest first at %d", i)
		}
	}

	form, err := r.FetchInvoiceForm(ctx, firstInv)
	if err != nil {
		t.Fatalf("FetchInvoiceForm: %v", err)
	}
	want := core.InvoiceForm{ID: firstInv, CustomerID: evilRabbit, Amount: core.Money{Cents: 15795}, Status: core.StatusPending}
	if form != want {
		t.Fatalf("FetchInvoiceForm = %+v, want %+v", form, want)
	}

	if _, err := r.FetchInvoiceForm(ctx, missingInv); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("FetchInvoiceForm(missing) err = %v, want ErrNotFound", err)
	}

	update := core.InvoiceUpdate{CustomerID: amyBurns, Amount: core.Money{Cents: 4200}, Status: core.StatusPaid}
	inv, err := r.UpdateInvoice(ctx, firstInv, update)
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}
	if inv.CustomerID != amyBurns || inv.Amount.Cents != 4200 || inv.Status != core.StatusPaid || inv.Date.IsZero() {
		t.Fatalf("UpdateInvoice returned %+v", inv)
	}
	form, _ = r.FetchInvoiceForm(ctx, firstInv)
	if form.CustomerID != amyBurns || form.Status != core.StatusPaid {
		t.Fatalf("update not persisted: %+v", form)
	}

	tests := []struct {
		name   string
		id     string
		update core.InvoiceUpdate
		err    error
	}{
		{"missing invoice", missingInv, update, core.ErrNotFound},
		{"unknown customer", firstInv, core.InvoiceUpdate{CustomerID: missingInv, Amount: core.Money{Cents: 1}, Status: core.StatusPaid}, core.ErrUnknownCustomer},
		{"zero amount", firstInv, core.InvoiceUpdate{CustomerID: amyBurns, Status: core.StatusPaid}, core.ErrInvalidAmount},
		{"bad status", firstInv, core.InvoiceUpdate{CustomerID: amyBurns, Amount: core.Money{Cents: 1}, Status: "void"}, core.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.UpdateInvoice(ctx, tt.id, tt.update); !errors.Is(err, tt.err) {
				t.Errorf("UpdateInvoice() err = %v, want %v", err, tt.err)
			}
		})
	}
}
