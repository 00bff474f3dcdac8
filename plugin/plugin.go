// Package plugin provides an extensible plugin system for Billfold.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when a new invoice is first saved.
type OnInvoiceCreated interface {
	Plugin
	OnInvoiceCreated(ctx context.Context, inv interface{}) error
}

// OnInvoiceSaved is called on every successful invoice save, including
// the first one.
type OnInvoiceSaved interface {
	Plugin
	OnInvoiceSaved(ctx context.Context, inv interface{}) error
}

// OnInvoiceStatusChanged is called when an invoice's status changes,
// whether by user action or system derivation.
type OnInvoiceStatusChanged interface {
	Plugin
	OnInvoiceStatusChanged(ctx context.Context, inv interface{}, from, to string) error
}

// OnInvoiceOverdue is called when the system derives the overdue status
// for a sent invoice whose due date has passed.
type OnInvoiceOverdue interface {
	Plugin
	OnInvoiceOverdue(ctx context.Context, inv interface{}, daysOverdue int) error
}

// OnInvoicePaid is called when an invoice is marked paid.
type OnInvoicePaid interface {
	Plugin
	OnInvoicePaid(ctx context.Context, inv interface{}, paidAt time.Time) error
}

// OnInvoiceDeleted is called after an invoice is deleted.
type OnInvoiceDeleted interface {
	Plugin
	OnInvoiceDeleted(ctx context.Context, invoiceID string) error
}

// ──────────────────────────────────────────────────
// Customer lifecycle hooks
// ──────────────────────────────────────────────────

// OnCustomerSaved is called when a customer is created or updated.
type OnCustomerSaved interface {
	Plugin
	OnCustomerSaved(ctx context.Context, c interface{}) error
}

// OnCustomerDeleted is called after a customer is deleted.
type OnCustomerDeleted interface {
	Plugin
	OnCustomerDeleted(ctx context.Context, customerID string) error
}

// ──────────────────────────────────────────────────
// Product lifecycle hooks
// ──────────────────────────────────────────────────

// OnProductSaved is called when a product is created or updated.
type OnProductSaved interface {
	Plugin
	OnProductSaved(ctx context.Context, p interface{}) error
}

// OnProductDeleted is called after a product is deleted.
type OnProductDeleted interface {
	Plugin
	OnProductDeleted(ctx context.Context, productID string) error
}

// ──────────────────────────────────────────────────
// Reporting hooks
// ──────────────────────────────────────────────────

// OnReportGenerated is called after a report aggregate is computed.
type OnReportGenerated interface {
	Plugin
	OnReportGenerated(ctx context.Context, kind string, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Invoice exporters
// ──────────────────────────────────────────────────

// InvoiceExporter renders invoices for export.
type InvoiceExporter interface {
	Plugin
	Format() string                                                   // "pdf", "html", "csv", etc.
	Render(ctx context.Context, inv interface{}, w interface{}) error // w is io.Writer
}
