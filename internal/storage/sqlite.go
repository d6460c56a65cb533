package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dashboard/internal/core"
	"dashboard/internal/ports"
	"dashboard/internal/seed"

	_ "modernc.org/sqlite"
)

var _ ports.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error) {
	rows, err := r.queries.ListRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	out := make([]core.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.RevenuePoint{Period: row.Month, Amount: core.Money{Cents: row.RevenueCents}})
	}
	return out, nil
}

func (r *SQLiteRepository) FetchInvoiceForm(ctx context.Context, id string) (core.InvoiceForm, error) {
	row, err := r.queries.GetInvoice(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.InvoiceForm{}, core.ErrNotFound
	}
	if err != nil {
		return core.InvoiceForm{}, fmt.Errorf("get invoice %s: %w", id, err)
	}
	inv, err := invoiceFromRow(row)
	if err != nil {
		return core.InvoiceForm{}, err
	}
	return inv.Form(), nil
}

func (r *SQLiteRepository) ListInvoices(ctx context.Context) ([]core.InvoiceRow, error) {
	rows, err := r.queries.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]core.InvoiceRow, 0, len(rows))
	for _, row := range rows {
		inv, err := invoiceFromRow(row.Invoice)
		if err != nil {
			return nil, err
		}
		out = append(out, core.InvoiceRow{Invoice: inv, CustomerName: row.CustomerName, CustomerEmail: row.CustomerEmail})
	}
	return out, nil
}

func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.CustomerOption, error) {
	rows, err := r.queries.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]core.CustomerOption, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.CustomerOption{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateInvoice(ctx context.Context, id string, u core.InvoiceUpdate) (core.Invoice, error) {
	if err := u.Validate(); err != nil {
		return core.Invoice{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	ok, err := q.CustomerExists(ctx, u.CustomerID)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		return core.Invoice{}, core.ErrUnknownCustomer
	}

	row, err := q.UpdateInvoice(ctx, UpdateInvoiceParams{
		CustomerID:  u.CustomerID,
		AmountCents: u.Amount.Cents,
		Status:      u.Status.String(),
		ID:          id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return core.Invoice{}, core.ErrNotFound
	}
	if err != nil {
		return core.Invoice{}, fmt.Errorf("update invoice %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return core.Invoice{}, fmt.Errorf("commit: %w", err)
	}

	slog.DebugContext(ctx, "Invoice saved to SQLite", "id", row.ID, "amount_cents", row.AmountCents, "status", row.Status)
	return invoiceFromRow(row)
}

// Seed upserts customers and invoices and replaces the revenue series.
func (r *SQLiteRepository) Seed(ctx context.Context, d seed.Data) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	for _, c := range d.Customers {
		if err := q.UpsertCustomer(ctx, Customer{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL}); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.ID, err)
		}
	}
	for _, inv := range d.Invoices {
		if err := q.UpsertInvoice(ctx, Invoice{
			ID:          inv.ID,
			CustomerID:  inv.CustomerID,
			AmountCents: inv.Amount.Cents,
			Status:      inv.Status.String(),
			Date:        inv.Date.Format(time.DateOnly),
		}); err != nil {
			return fmt.Errorf("upsert invoice %s: %w", inv.ID, err)
		}
	}
	if err := q.DeleteRevenue(ctx); err != nil {
		return fmt.Errorf("clear revenue: %w", err)
	}
	for i, p := range d.Revenue {
		if err := q.InsertRevenue(ctx, Revenue{Month: p.Period, Position: int64(i), RevenueCents: p.Amount.Cents}); err != nil {
			return fmt.Errorf("insert revenue %s: %w", p.Period, err)
		}
	}
	return tx.Commit()
}

func invoiceFromRow(row Invoice) (core.Invoice, error) {
	status, err := core.ParseStatus(row.Status)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("invoice %s: %w", row.ID, err)
	}
	date, err := time.Parse(time.DateOnly, row.Date)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("invoice %s: parse date %q: %w", row.ID, row.Date, err)
	}
	return core.Invoice{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Amount:     core.Money{Cents: row.AmountCents},
		Status:     status,
		Date:       date,
	}, nil
}
