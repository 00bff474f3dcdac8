// Package notifyhook bridges Billfold lifecycle events to a notification
// backend.
//
// It defines a local Notifier interface so the package does not depend on
// any particular delivery channel. Callers inject a NotifierFunc adapter
// that bridges to email, chat, or webhooks at wiring time.
package notifyhook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/plugin"
	"github.com/billfold/billfold/product"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*Extension)(nil)
	_ plugin.OnInvoiceCreated       = (*Extension)(nil)
	_ plugin.OnInvoiceStatusChanged = (*Extension)(nil)
	_ plugin.OnInvoiceOverdue       = (*Extension)(nil)
	_ plugin.OnInvoicePaid          = (*Extension)(nil)
	_ plugin.OnInvoiceDeleted       = (*Extension)(nil)
	_ plugin.OnCustomerDeleted      = (*Extension)(nil)
	_ plugin.OnProductDeleted       = (*Extension)(nil)
)

// Notifier is the interface that notification backends must implement.
// It is defined locally so that the notifyhook package does not import a
// delivery channel directly; callers inject the concrete sender at
// wiring time.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// Notification is a single user-facing message about a lifecycle event.
type Notification struct {
	Event      string         `json:"event"`
	Message    string         `json:"message"`
	ResourceID string         `json:"resource_id,omitempty"`
	Severity   string         `json:"severity"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NotifierFunc is an adapter to use a plain function as a Notifier.
type NotifierFunc func(ctx context.Context, n *Notification) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n *Notification) error {
	return f(ctx, n)
}

// Extension bridges Billfold lifecycle events to a notification backend.
type Extension struct {
	notifier Notifier
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that delivers through the provided Notifier.
func New(n Notifier, opts ...Option) *Extension {
	e := &Extension{
		notifier: n,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "notify-hook" }

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, v interface{}) error {
	inv, ok := v.(*invoice.Invoice)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventInvoiceCreated, SeverityInfo, inv.ID.String(),
		fmt.Sprintf("Invoice %s created for %s", inv.InvoiceNumber, clientName(inv)),
		"invoice_number", inv.InvoiceNumber,
	)
}

// OnInvoiceStatusChanged implements plugin.OnInvoiceStatusChanged.
func (e *Extension) OnInvoiceStatusChanged(ctx context.Context, v interface{}, from, to string) error {
	inv, ok := v.(*invoice.Invoice)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventInvoiceStatusChanged, SeverityInfo, inv.ID.String(),
		fmt.Sprintf("Invoice %s moved from %s to %s", inv.InvoiceNumber, from, to),
		"invoice_number", inv.InvoiceNumber,
		"from", from,
		"to", to,
	)
}

// OnInvoiceOverdue implements plugin.OnInvoiceOverdue.
func (e *Extension) OnInvoiceOverdue(ctx context.Context, v interface{}, daysOverdue int) error {
	inv, ok := v.(*invoice.Invoice)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventInvoiceOverdue, SeverityWarning, inv.ID.String(),
		fmt.Sprintf("Invoice %s is %d day(s) overdue", inv.InvoiceNumber, daysOverdue),
		"invoice_number", inv.InvoiceNumber,
		"days_overdue", daysOverdue,
	)
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (e *Extension) OnInvoicePaid(ctx context.Context, v interface{}, paidAt time.Time) error {
	inv, ok := v.(*invoice.Invoice)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventInvoicePaid, SeverityInfo, inv.ID.String(),
		fmt.Sprintf("Invoice %s marked paid", inv.InvoiceNumber),
		"invoice_number", inv.InvoiceNumber,
		"paid_at", paidAt,
	)
}

// OnInvoiceDeleted implements plugin.OnInvoiceDeleted.
func (e *Extension) OnInvoiceDeleted(ctx context.Context, invoiceID string) error {
	return e.notify(ctx, EventInvoiceDeleted, SeverityInfo, invoiceID,
		"Invoice deleted",
		"invoice_id", invoiceID,
	)
}

// ──────────────────────────────────────────────────
// Customer and product lifecycle hooks
// ──────────────────────────────────────────────────

// OnCustomerSaved implements plugin.OnCustomerSaved.
func (e *Extension) OnCustomerSaved(ctx context.Context, v interface{}) error {
	c, ok := v.(*customer.Customer)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventCustomerSaved, SeverityInfo, c.ID.String(),
		fmt.Sprintf("Customer %s saved", c.DisplayName()),
		"customer_id", c.ID.String(),
	)
}

// OnCustomerDeleted implements plugin.OnCustomerDeleted.
func (e *Extension) OnCustomerDeleted(ctx context.Context, customerID string) error {
	return e.notify(ctx, EventCustomerDeleted, SeverityInfo, customerID,
		"Customer deleted",
		"customer_id", customerID,
	)
}

// OnProductSaved implements plugin.OnProductSaved.
func (e *Extension) OnProductSaved(ctx context.Context, v interface{}) error {
	p, ok := v.(*product.Product)
	if !ok {
		return nil
	}
	return e.notify(ctx, EventProductSaved, SeverityInfo, p.ID.String(),
		fmt.Sprintf("Product %s saved", p.Name),
		"product_id", p.ID.String(),
	)
}

// OnProductDeleted implements plugin.OnProductDeleted.
func (e *Extension) OnProductDeleted(ctx context.Context, productID string) error {
	return e.notify(ctx, EventProductDeleted, SeverityInfo, productID,
		"Product deleted",
		"product_id", productID,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// notify builds and sends a notification if the event is enabled.
// Delivery failures are logged, never propagated, so a broken channel
// cannot fail the business operation that triggered it.
func (e *Extension) notify(
	ctx context.Context,
	event, severity, resourceID, message string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[event] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	n := &Notification{
		Event:      event,
		Message:    message,
		ResourceID: resourceID,
		Severity:   severity,
		Metadata:   meta,
	}

	if err := e.notifier.Notify(ctx, n); err != nil {
		e.logger.Warn("notifyhook: failed to deliver notification",
			"event", event,
			"resource_id", resourceID,
			"error", err,
		)
	}
	return nil
}

// clientName prefers the client display name on the invoice.
func clientName(inv *invoice.Invoice) string {
	if inv.Client != "" {
		return inv.Client
	}
	return "(no client)"
}
