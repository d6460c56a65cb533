package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"dashboard/internal/core"
	"dashboard/internal/invoices"
)

type invoicesPage struct {
	Title    string
	Invoices []core.InvoiceRow
}

type editInvoicePage struct {
	Title     string
	InvoiceID string
	Form      invoices.View
}

// handleInvoices lists invoices newest first.
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	rows, err := s.store.ListInvoices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list invoices", "error", err)
		s.serverError(w, r, "Failed to fetch invoices.")
		return
	}
	s.render(w, r, http.StatusOK, "invoices_page", invoicesPage{
		Title:    "Invoices",
		Invoices: rows,
	})
}

// loadEditForm fetches the invoice snapshot and the customer list concurrently
// and binds them to a fresh form.
func (s *Server) loadEditForm(ctx context.Context, id string) (*invoices.Form, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var (
		inv       core.InvoiceForm
		customers []core.CustomerOption
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inv, err = s.store.FetchInvoiceForm(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.ListCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return invoices.New(&inv, customers, s.update), nil
}

// handleEditInvoice renders the edit page for an existing invoice.
func (s *Server) handleEditInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseInvoiceID(r)
	if !ok {
		s.notFound(w, r, "Could not find the requested invoice.")
		return
	}
	form, err := s.loadEditForm(r.Context(), id)
	if !s.checkLoad(w, r, id, err) {
		return
	}
	s.render(w, r, http.StatusOK, "edit_invoice_page", editInvoicePage{
		Title:     "Edit Invoice",
		InvoiceID: id,
		Form:      form.View(),
	})
}

// handleUpdateInvoice is the form action. A clean state redirects to the
// listing; anything else re-renders the form with 422.
func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseInvoiceID(r)
	if !ok {
		s.notFound(w, r, "Could not find the requested invoice.")
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.WarnContext(r.Context(), "Malformed form submission", "invoice_id", id, "error", err)
		BadRequestError("Invalid request format.").Write(w)
		return
	}

	form, err := s.loadEditForm(r.Context(), id)
	if !s.checkLoad(w, r, id, err) {
		return
	}

	state, err := form.Submit(r.Context(), parser.Values())
	if err != nil {
		// Only reachable when no invoice is bound.
		s.notFound(w, r, "Could not find the requested invoice.")
		return
	}

	if state.Clean() {
		if IsHTMX(r) {
			NewHTMXResponse().
				Redirect(invoices.ListURL).
				TriggerInvoiceUpdated(id).
				TriggerChartRefresh().
				TriggerSuccessNotification("Invoice updated.").
				Write(w)
			return
		}
		http.Redirect(w, r, invoices.ListURL, http.StatusSeeOther)
		return
	}

	if IsHTMX(r) {
		s.render(w, r, http.StatusUnprocessableEntity, "edit_form", form.View())
		return
	}
	s.render(w, r, http.StatusUnprocessableEntity, "edit_invoice_page", editInvoicePage{
		Title:     "Edit Invoice",
		InvoiceID: id,
		Form:      form.View(),
	})
}

// checkLoad writes the error response for a failed loadEditForm and reports
// whether the handler may continue.
func (s *Server) checkLoad(w http.ResponseWriter, r *http.Request, id string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, core.ErrNotFound):
		s.notFound(w, r, "Could not find the requested invoice.")
	default:
		slog.ErrorContext(r.Context(), "Failed to load invoice form", "invoice_id", id, "error", err)
		s.serverError(w, r, "Failed to fetch invoice.")
	}
	return false
}
