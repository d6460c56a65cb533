package storage

import (
	"context"
)

const listRevenue = `
SELECT month, position, revenue_cents FROM revenue ORDER BY position
`

func (q *Queries) ListRevenue(ctx context.Context) ([]Revenue, error) {
	rows, err := q.db.QueryContext(ctx, listRevenue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Revenue
	for rows.Next() {
		var i Revenue
		if err := rows.Scan(&i.Month, &i.Position, &i.RevenueCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getInvoice = `
SELECT id, customer_id, amount_cents, status, date FROM invoices WHERE id = ?
`

func (q *Queries) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	row := q.db.QueryRowContext(ctx, getInvoice, id)
	var i Invoice
	err := row.Scan(&i.ID, &i.CustomerID, &i.AmountCents, &i.Status, &i.Date)
	return i, err
}

const listInvoices = `
SELECT i.id, i.customer_id, i.amount_cents, i.status, i.date, c.name, c.email
FROM invoices i
JOIN customers c ON c.id = i.customer_id
ORDER BY i.date DESC, i.id
`

func (q *Queries) ListInvoices(ctx context.Context) ([]InvoiceWithCustomer, error) {
	rows, err := q.db.QueryContext(ctx, listInvoices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InvoiceWithCustomer
	for rows.Next() {
		var i InvoiceWithCustomer
		if err := rows.Scan(
			&i.ID, &i.CustomerID, &i.AmountCents, &i.Status, &i.Date,
			&i.CustomerName, &i.CustomerEmail,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listCustomers = `
SELECT id, name FROM customers ORDER BY name COLLATE NOCASE
`

func (q *Queries) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := q.db.QueryContext(ctx, listCustomers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Customer
	for rows.Next() {
		var i Customer
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const customerExists = `
SELECT EXISTS(SELECT 1 FROM customers WHERE id = ?)
`

func (q *Queries) CustomerExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, customerExists, id).Scan(&exists)
	return exists, err
}

const updateInvoice = `
UPDATE invoices
SET customer_id = ?, amount_cents = ?, status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, customer_id, amount_cents, status, date
`

type UpdateInvoiceParams struct {
	CustomerID  string
	AmountCents int64
	Status      string
	ID          string
}

func (q *Queries) UpdateInvoice(ctx context.Context, arg UpdateInvoiceParams) (Invoice, error) {
	row := q.db.QueryRowContext(ctx, updateInvoice, arg.CustomerID, arg.AmountCents, arg.Status, arg.ID)
	var i Invoice
	err := row.Scan(&i.ID, &i.CustomerID, &i.AmountCents, &i.Status, &i.Date)
	return i, err
}

const upsertCustomer = `
INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email, image_url = excluded.image_url
`

func (q *Queries) UpsertCustomer(ctx context.Context, c Customer) error {
	_, err := q.db.ExecContext(ctx, upsertCustomer, c.ID, c.Name, c.Email, c.ImageURL)
	return err
}

const upsertInvoice = `
INSERT INTO invoices (id, customer_id, amount_cents, status, date) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    customer_id = excluded.customer_id,
    amount_cents = excluded.amount_cents,
    status = excluded.status,
    date = excluded.date
`

func (q *Queries) UpsertInvoice(ctx context.Context, i Invoice) error {
	_, err := q.db.ExecContext(ctx, upsertInvoice, i.ID, i.CustomerID, i.AmountCents, i.Status, i.Date)
	return err
}

const deleteRevenue = `DELETE FROM revenue`

func (q *Queries) DeleteRevenue(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteRevenue)
	return err
}

const insertRevenue = `
INSERT INTO revenue (month, position, revenue_cents) VALUES (?, ?, ?)
`

func (q *Queries) InsertRevenue(ctx context.Context, r Revenue) error {
	_, err := q.db.ExecContext(ctx, insertRevenue, r.Month, r.Position, r.RevenueCents)
	return err
}
