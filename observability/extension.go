// Package observability provides a metrics extension for Billfold that
// records lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                 = (*MetricsExtension)(nil)
	_ plugin.OnInit                 = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCreated       = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceSaved         = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceStatusChanged = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceOverdue       = (*MetricsExtension)(nil)
	_ plugin.OnInvoicePaid          = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceDeleted       = (*MetricsExtension)(nil)
	_ plugin.OnCustomerSaved        = (*MetricsExtension)(nil)
	_ plugin.OnProductSaved         = (*MetricsExtension)(nil)
	_ plugin.OnReportGenerated      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Billfold plugin to automatically track invoicing metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Invoice metrics
	InvoiceCreated    Counter
	InvoiceSaved      Counter
	InvoicePaid       Counter
	InvoiceDeleted    Counter
	StatusTransitions Counter
	OverdueDerived    Counter
	InvoiceTotal      Histogram

	// Customer and product metrics
	CustomerSaved Counter
	ProductSaved  Counter

	// Reporting metrics
	ReportsGenerated Counter
	ReportLatency    Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Invoice metrics
		InvoiceCreated:    factory.Counter("billfold.invoice.created"),
		InvoiceSaved:      factory.Counter("billfold.invoice.saved"),
		InvoicePaid:       factory.Counter("billfold.invoice.paid"),
		InvoiceDeleted:    factory.Counter("billfold.invoice.deleted"),
		StatusTransitions: factory.Counter("billfold.invoice.status.transitions"),
		OverdueDerived:    factory.Counter("billfold.invoice.overdue.derived"),
		InvoiceTotal:      factory.Histogram("billfold.invoice.total_amount"),

		// Customer and product metrics
		CustomerSaved: factory.Counter("billfold.customer.saved"),
		ProductSaved:  factory.Counter("billfold.product.saved"),

		// Reporting metrics
		ReportsGenerated: factory.Counter("billfold.report.generated"),
		ReportLatency:    factory.Histogram("billfold.report.latency_ms"),

		// Error metrics
		StoreErrors:  factory.Counter("billfold.store.errors"),
		PluginErrors: factory.Counter("billfold.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, _ interface{}) error {
	m.InvoiceCreated.Inc()
	return nil
}

// OnInvoiceSaved implements plugin.OnInvoiceSaved.
func (m *MetricsExtension) OnInvoiceSaved(_ context.Context, v interface{}) error {
	m.InvoiceSaved.Inc()
	if inv, ok := v.(*invoice.Invoice); ok {
		m.InvoiceTotal.Observe(inv.Totals().GrandTotal)
	}
	return nil
}

// OnInvoiceStatusChanged implements plugin.OnInvoiceStatusChanged.
func (m *MetricsExtension) OnInvoiceStatusChanged(_ context.Context, _ interface{}, _, _ string) error {
	m.StatusTransitions.Inc()
	return nil
}

// OnInvoiceOverdue implements plugin.OnInvoiceOverdue.
func (m *MetricsExtension) OnInvoiceOverdue(_ context.Context, _ interface{}, _ int) error {
	m.OverdueDerived.Inc()
	return nil
}

// OnInvoicePaid implements plugin.OnInvoicePaid.
func (m *MetricsExtension) OnInvoicePaid(_ context.Context, _ interface{}, _ time.Time) error {
	m.InvoicePaid.Inc()
	return nil
}

// OnInvoiceDeleted implements plugin.OnInvoiceDeleted.
func (m *MetricsExtension) OnInvoiceDeleted(_ context.Context, _ string) error {
	m.InvoiceDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Customer and product lifecycle hooks
// ──────────────────────────────────────────────────

// OnCustomerSaved implements plugin.OnCustomerSaved.
func (m *MetricsExtension) OnCustomerSaved(_ context.Context, _ interface{}) error {
	m.CustomerSaved.Inc()
	return nil
}

// OnProductSaved implements plugin.OnProductSaved.
func (m *MetricsExtension) OnProductSaved(_ context.Context, _ interface{}) error {
	m.ProductSaved.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Reporting hooks
// ──────────────────────────────────────────────────

// OnReportGenerated implements plugin.OnReportGenerated.
func (m *MetricsExtension) OnReportGenerated(_ context.Context, _ string, elapsed time.Duration) error {
	m.ReportsGenerated.Inc()
	m.ReportLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}
