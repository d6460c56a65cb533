package invoices

import (
	"context"
	"errors"
	"net/url"

	"dashboard/internal/core"
)

const (
	ListURL     = "/dashboard/invoices"
	LoadingText = "Loading invoice..."
	SubmitLabel = "Edit Invoice"
)

// ErrNoInvoice is returned by Submit when the form has no invoice bound.
var ErrNoInvoice = errors.New("no invoice bound to form")

// EditURL returns the edit page and form action path for an invoice.
func EditURL(id string) string {
	return ListURL + "/" + url.PathEscape(id) + "/edit"
}

// Form is the invoice edit form.
type Form struct {
	state     State
	action    Action
	invoice   *core.InvoiceForm
	customers []core.CustomerOption
}

// New creates the edit form. invoice may be nil while it is still loading; the
// form then renders a loading view and exposes no action.
func New(invoice *core.InvoiceForm, customers []core.CustomerOption, update UpdateFunc) *Form {
	f := &Form{
		state:     InitialState(),
		customers: customers,
	}
	if invoice == nil || update == nil {
		return f
	}
	f.invoice = invoice
	f.action = BindUpdate(invoice.ID, update)
	return f
}

// State returns the current submission state.
func (f *Form) State() State { return f.state }

// Submit dispatches form to the bound action and replaces the state with the
// result.
func (f *Form) Submit(ctx context.Context, form url.Values) (State, error) {
	if f.action == nil {
		return f.state, ErrNoInvoice
	}
	next := f.action(ctx, f.state, form)
	if next.Errors == nil {
		next.Errors = InitialState().Errors
	}
	f.state = next
	return f.state, nil
}
