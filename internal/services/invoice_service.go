package services

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"dashboard/internal/amqp"
	"dashboard/internal/core"
	"dashboard/internal/invoices"
	applog "dashboard/internal/log"
	"dashboard/internal/metrics"
	"dashboard/internal/ports"
)

// Messages returned to the edit form.
const (
	MsgMissingFields   = "Missing Fields. Failed to Update Invoice."
	MsgInvoiceNotFound = "Invoice not found."
	MsgDatabaseError   = "Database Error: Failed to Update Invoice."

	MsgSelectCustomer  = "Please select a customer."
	MsgUnknownCustomer = "Selected customer does not exist."
	MsgAmount          = "Please enter an amount greater than $0."
	MsgStatus          = "Please select an invoice status."
)

// EventPublisher announces persisted invoice edits.
type EventPublisher interface {
	PublishInvoiceUpdated(ctx context.Context, msg *amqp.InvoiceUpdatedMessage) error
}

// InvoiceService validates edit submissions, persists them and fans out the
// side effects of a successful update.
type InvoiceService struct {
	store      ports.InvoiceWriter
	publisher  EventPublisher
	metrics    *metrics.Metrics
	onUpdate   []func()
	sanitizer  *bluemonday.Policy
	structured *applog.StructuredLogger
}

type Option func(*InvoiceService)

// WithPublisher sets the event publisher. Without one no events are sent.
func WithPublisher(p EventPublisher) Option {
	return func(s *InvoiceService) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *InvoiceService) { s.metrics = m }
}

// OnUpdate registers fn to run after every successful update, e.g. to drop caches.
func OnUpdate(fn func()) Option {
	return func(s *InvoiceService) { s.onUpdate = append(s.onUpdate, fn) }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *InvoiceService) { s.structured = applog.NewStructuredLogger(l) }
}

func NewInvoiceService(store ports.InvoiceWriter, opts ...Option) *InvoiceService {
	s := &InvoiceService{
		store:     store,
		sanitizer: bluemonday.StrictPolicy(),
		structured: applog.NewStructuredLogger(applog.New(applog.Config{
			Component: applog.ComponentInvoice,
			Handler:   slog.Default().Handler(),
		})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateInvoice applies the raw form values to invoice id. The returned state
// is always complete and never derived from prev; a clean state means the
// update was persisted.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, prev invoices.State, form url.Values) invoices.State {
	state := invoices.InitialState()

	update, ok := s.validate(form, &state)
	if !ok {
		state.Message = MsgMissingFields
		s.metrics.InvoiceUpdate(metrics.ResultValidation)
		return state
	}

	inv, err := s.store.UpdateInvoice(ctx, id, update)
	switch {
	case errors.Is(err, core.ErrNotFound):
		state.Message = MsgInvoiceNotFound
		s.metrics.InvoiceUpdate(metrics.ResultNotFound)
		return state
	case errors.Is(err, core.ErrUnknownCustomer):
		state.AddError(invoices.FieldCustomerID, MsgUnknownCustomer)
		state.Message = MsgMissingFields
		s.metrics.InvoiceUpdate(metrics.ResultValidation)
		return state
	case err != nil:
		slog.ErrorContext(ctx, "Failed to update invoice", "invoice_id", id, "error", err)
		state.Message = MsgDatabaseError
		s.metrics.InvoiceUpdate(metrics.ResultError)
		return state
	}

	s.structured.LogInvoiceUpdated(ctx, inv.ID, inv.CustomerID, inv.Amount.Cents, inv.Status.String())
	s.metrics.InvoiceUpdate(metrics.ResultSuccess)
	for _, fn := range s.onUpdate {
		fn()
	}
	s.publish(ctx, inv)

	return state
}

func (s *InvoiceService) validate(form url.Values, state *invoices.State) (core.InvoiceUpdate, bool) {
	var u core.InvoiceUpdate

	u.CustomerID = s.sanitize(form.Get(string(invoices.FieldCustomerID)))
	switch {
	case u.CustomerID == "":
		state.AddError(invoices.FieldCustomerID, MsgSelectCustomer)
	case uuid.Validate(u.CustomerID) != nil:
		state.AddError(invoices.FieldCustomerID, MsgUnknownCustomer)
	}

	if cents, err := core.ParseDecimalToCents(form.Get(string(invoices.FieldAmount))); err != nil {
		state.AddError(invoices.FieldAmount, MsgAmount)
	} else {
		u.Amount = core.Money{Cents: cents}
	}

	if status, err := core.ParseStatus(form.Get(string(invoices.FieldStatus))); err != nil {
		state.AddError(invoices.FieldStatus, MsgStatus)
	} else {
		u.Status = status
	}

	return u, !state.HasErrors()
}

func (s *InvoiceService) sanitize(v string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(strings.TrimSpace(v)))
}

// publish is best effort: the update is already persisted.
func (s *InvoiceService) publish(ctx context.Context, inv core.Invoice) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping invoice event", "invoice_id", inv.ID)
		return
	}
	if err := s.publisher.PublishInvoiceUpdated(ctx, amqp.NewInvoiceUpdatedMessage(inv)); err != nil {
		slog.WarnContext(ctx, "Failed to publish invoice event", "invoice_id", inv.ID, "error", err)
		s.metrics.EventPublished(metrics.ResultError)
		return
	}
	s.metrics.EventPublished(metrics.ResultSuccess)
}
