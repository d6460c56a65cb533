package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dashboard/internal/amqp"
	"dashboard/internal/core"
	applog "dashboard/internal/log"
	"dashboard/internal/metrics"
	"dashboard/internal/ports"
	"dashboard/internal/sheets"
)

// ErrInvalidMessage marks events that can never be mirrored. Retrying them is pointless.
var ErrInvalidMessage = errors.New("invalid invoice message")

// Consumer delivers invoice events until ctx is done.
type Consumer interface {
	ConsumeInvoiceUpdated(ctx context.Context, handler amqp.InvoiceHandler) error
}

// MirrorWorker copies invoice updates into the spreadsheet mirror.
type MirrorWorker struct {
	mirror     sheets.Mirror
	metrics    *metrics.Metrics
	structured *applog.StructuredLogger
}

func NewMirrorWorker(mirror sheets.Mirror, m *metrics.Metrics, logger *applog.Logger) *MirrorWorker {
	if logger == nil {
		logger = applog.New(applog.Config{Component: applog.ComponentWorker, Handler: slog.Default().Handler()})
	}
	return &MirrorWorker{
		mirror:     mirror,
		metrics:    m,
		structured: applog.NewStructuredLogger(logger),
	}
}

// Run consumes events from c until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context, c Consumer) error {
	slog.InfoContext(ctx, "Mirror worker started")
	err := c.ConsumeInvoiceUpdated(ctx, func(ctx context.Context, msg *amqp.InvoiceUpdatedMessage) error {
		err := w.HandleInvoiceUpdated(ctx, msg)
		if errors.Is(err, ErrInvalidMessage) {
			// ack and drop
			return nil
		}
		return err
	})
	if errors.Is(err, context.Canceled) {
		slog.InfoContext(ctx, "Mirror worker stopped")
		return nil
	}
	return err
}

// HandleInvoiceUpdated appends one event to the mirror.
func (w *MirrorWorker) HandleInvoiceUpdated(ctx context.Context, msg *amqp.InvoiceUpdatedMessage) error {
	row, err := rowFromMessage(msg)
	if err != nil {
		w.metrics.MirrorAppend(metrics.ResultValidation)
		slog.WarnContext(ctx, "Dropping invoice message", "error", err)
		return err
	}

	slog.InfoContext(ctx, "Processing invoice message", "invoice_id", row.InvoiceID, "timestamp", row.Timestamp)

	ref, err := w.mirror.AppendInvoice(ctx, row)
	if err != nil {
		w.metrics.MirrorAppend(metrics.ResultError)
		return fmt.Errorf("append invoice %s to mirror: %w", row.InvoiceID, err)
	}

	w.metrics.MirrorAppend(metrics.ResultSuccess)
	w.structured.LogInvoiceMirrored(ctx, row.InvoiceID, ref)
	return nil
}

// Backfill mirrors the current state of every invoice. It is the recovery
// path when events were lost while the worker was down.
func (w *MirrorWorker) Backfill(ctx context.Context, invoices ports.InvoiceReader) (int, error) {
	rows, err := invoices.ListInvoices(ctx)
	if err != nil {
		return 0, fmt.Errorf("list invoices: %w", err)
	}

	now := time.Now().UTC()
	done := 0
	for _, inv := range rows {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		msg := amqp.NewInvoiceUpdatedMessage(inv.Invoice)
		msg.Timestamp = now
		if err := w.HandleInvoiceUpdated(ctx, msg); err != nil {
			return done, err
		}
		done++
	}
	slog.InfoContext(ctx, "Backfill completed", "invoices", done)
	return done, nil
}

func rowFromMessage(msg *amqp.InvoiceUpdatedMessage) (sheets.Row, error) {
	if msg == nil || msg.ID == "" {
		return sheets.Row{}, fmt.Errorf("%w: missing id", ErrInvalidMessage)
	}
	status, err := core.ParseStatus(msg.Status)
	if err != nil {
		return sheets.Row{}, fmt.Errorf("%w: %s: %v", ErrInvalidMessage, msg.ID, err)
	}
	amount := core.Money{Cents: msg.AmountCents}
	if err := amount.Validate(); err != nil {
		return sheets.Row{}, fmt.Errorf("%w: %s: %v", ErrInvalidMessage, msg.ID, err)
	}
	return sheets.Row{
		Timestamp:  msg.Timestamp,
		InvoiceID:  msg.ID,
		CustomerID: msg.CustomerID,
		Amount:     amount,
		Status:     status,
	}, nil
}
