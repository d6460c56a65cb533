package ports

import (
	"context"

	"dashboard/internal/core"
)

// Ports for outbound adapters.
type (
	// RevenueReader supplies the chronological revenue series for the chart.
	RevenueReader interface {
		FetchRevenue(ctx context.Context) ([]core.RevenuePoint, error)
	}

	InvoiceReader interface {
		// FetchInvoiceForm returns the edit snapshot for id or core.ErrNotFound.
		FetchInvoiceForm(ctx context.Context, id string) (core.InvoiceForm, error)
		// ListInvoices returns invoices joined with customer names, newest first.
		ListInvoices(ctx context.Context) ([]core.InvoiceRow, error)
	}

	InvoiceWriter interface {
		// UpdateInvoice persists u for id. Unknown ids return core.ErrNotFound,
		// unknown customers core.ErrUnknownCustomer.
		UpdateInvoice(ctx context.Context, id string, u core.InvoiceUpdate) (core.Invoice, error)
	}

	CustomerLister interface {
		ListCustomers(ctx context.Context) ([]core.CustomerOption, error)
	}

	// Store bundles every port a data backend provides.
	Store interface {
		RevenueReader
		InvoiceReader
		InvoiceWriter
		CustomerLister
		Close() error
	}
)
