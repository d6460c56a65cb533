package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dashboard/internal/core"
	"dashboard/internal/ports"
	"dashboard/internal/seed"
)

var _ ports.Store = (*PostgresRepository)(nil)

// PostgresRepository serves the same ports as SQLiteRepository from Postgres,
// through the pgx database/sql driver.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository connects to dsn and applies migrations.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunPostgresMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an open, already migrated database.
func NewPostgresRepositoryFromDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month, revenue_cents FROM revenue ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	defer rows.Close()

	var out []core.RevenuePoint
	for rows.Next() {
		var p core.RevenuePoint
		if err := rows.Scan(&p.Period, &p.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FetchInvoiceForm(ctx context.Context, id string) (core.InvoiceForm, error) {
	var (
		f      core.InvoiceForm
		status string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id::text, customer_id::text, amount_cents, status FROM invoices WHERE id = $1`, id,
	).Scan(&f.ID, &f.CustomerID, &f.Amount.Cents, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return core.InvoiceForm{}, core.ErrNotFound
	}
	if err != nil {
		return core.InvoiceForm{}, fmt.Errorf("get invoice %s: %w", id, err)
	}
	if f.Status, err = core.ParseStatus(status); err != nil {
		return core.InvoiceForm{}, fmt.Errorf("invoice %s: %w", id, err)
	}
	return f, nil
}

func (r *PostgresRepository) ListInvoices(ctx context.Context) ([]core.InvoiceRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id::text, i.customer_id::text, i.amount_cents, i.status, i.date, c.name, c.email
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []core.InvoiceRow
	for rows.Next() {
		var (
			row    core.InvoiceRow
			status string
		)
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Amount.Cents, &status, &row.Date,
			&row.CustomerName, &row.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if row.Status, err = core.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("invoice %s: %w", row.ID, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]core.CustomerOption, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id::text, name FROM customers ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []core.CustomerOption
	for rows.Next() {
		var c core.CustomerOption
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateInvoice(ctx context.Context, id string, u core.InvoiceUpdate) (core.Invoice, error) {
	if err := u.Validate(); err != nil {
		return core.Invoice{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, u.CustomerID,
	).Scan(&exists); err != nil {
		return core.Invoice{}, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return core.Invoice{}, core.ErrUnknownCustomer
	}

	var (
		inv    core.Invoice
		status string
	)
	err = tx.QueryRowContext(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount_cents = $2, status = $3, updated_at = now()
		WHERE id = $4
		RETURNING id::text, customer_id::text, amount_cents, status, date`,
		u.CustomerID, u.Amount.Cents, u.Status.String(), id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.Amount.Cents, &status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Invoice{}, core.ErrNotFound
	}
	if err != nil {
		return core.Invoice{}, fmt.Errorf("update invoice %s: %w", id, err)
	}
	inv.Status = core.InvoiceStatus(status)

	if err := tx.Commit(); err != nil {
		return core.Invoice{}, fmt.Errorf("commit: %w", err)
	}
	return inv, nil
}

// Seed upserts customers and invoices and replaces the revenue series.
func (r *PostgresRepository) Seed(ctx context.Context, d seed.Data) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range d.Customers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, image_url) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, image_url = EXCLUDED.image_url`,
			c.ID, c.Name, c.Email, c.ImageURL); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.ID, err)
		}
	}
	for _, inv := range d.Invoices {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoices (id, customer_id, amount_cents, status, date) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				customer_id = EXCLUDED.customer_id,
				amount_cents = EXCLUDED.amount_cents,
				status = EXCLUDED.status,
				date = EXCLUDED.date`,
			inv.ID, inv.CustomerID, inv.Amount.Cents, inv.Status.String(), inv.Date); err != nil {
			return fmt.Errorf("upsert invoice %s: %w", inv.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revenue`); err != nil {
		return fmt.Errorf("clear revenue: %w", err)
	}
	for i, p := range d.Revenue {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO revenue (month, position, revenue_cents) VALUES ($1, $2, $3)`,
			p.Period, i, p.Amount.Cents); err != nil {
			return fmt.Errorf("insert revenue %s: %w", p.Period, err)
		}
	}
	return tx.Commit()
}
