package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onInvoiceCreated       []OnInvoiceCreated
	onInvoiceSaved         []OnInvoiceSaved
	onInvoiceStatusChanged []OnInvoiceStatusChanged
	onInvoiceOverdue       []OnInvoiceOverdue
	onInvoicePaid          []OnInvoicePaid
	onInvoiceDeleted       []OnInvoiceDeleted
	onCustomerSaved        []OnCustomerSaved
	onCustomerDeleted      []OnCustomerDeleted
	onProductSaved         []OnProductSaved
	onProductDeleted       []OnProductDeleted
	onReportGenerated      []OnReportGenerated
	invoiceExporters       map[string]InvoiceExporter
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:           slog.Default(),
		invoiceExporters: make(map[string]InvoiceExporter),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := p.(OnInvoiceSaved); ok {
		r.onInvoiceSaved = append(r.onInvoiceSaved, v)
	}
	if v, ok := p.(OnInvoiceStatusChanged); ok {
		r.onInvoiceStatusChanged = append(r.onInvoiceStatusChanged, v)
	}
	if v, ok := p.(OnInvoiceOverdue); ok {
		r.onInvoiceOverdue = append(r.onInvoiceOverdue, v)
	}
	if v, ok := p.(OnInvoicePaid); ok {
		r.onInvoicePaid = append(r.onInvoicePaid, v)
	}
	if v, ok := p.(OnInvoiceDeleted); ok {
		r.onInvoiceDeleted = append(r.onInvoiceDeleted, v)
	}
	if v, ok := p.(OnCustomerSaved); ok {
		r.onCustomerSaved = append(r.onCustomerSaved, v)
	}
	if v, ok := p.(OnCustomerDeleted); ok {
		r.onCustomerDeleted = append(r.onCustomerDeleted, v)
	}
	if v, ok := p.(OnProductSaved); ok {
		r.onProductSaved = append(r.onProductSaved, v)
	}
	if v, ok := p.(OnProductDeleted); ok {
		r.onProductDeleted = append(r.onProductDeleted, v)
	}
	if v, ok := p.(OnReportGenerated); ok {
		r.onReportGenerated = append(r.onReportGenerated, v)
	}
	if v, ok := p.(InvoiceExporter); ok {
		r.invoiceExporters[v.Format()] = v
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnInvoiceCreated)(nil)).Elem(), "OnInvoiceCreated")
	checkInterface(reflect.TypeOf((*OnInvoiceSaved)(nil)).Elem(), "OnInvoiceSaved")
	checkInterface(reflect.TypeOf((*OnInvoiceStatusChanged)(nil)).Elem(), "OnInvoiceStatusChanged")
	checkInterface(reflect.TypeOf((*OnInvoiceOverdue)(nil)).Elem(), "OnInvoiceOverdue")
	checkInterface(reflect.TypeOf((*OnInvoicePaid)(nil)).Elem(), "OnInvoicePaid")
	checkInterface(reflect.TypeOf((*OnReportGenerated)(nil)).Elem(), "OnReportGenerated")
	checkInterface(reflect.TypeOf((*InvoiceExporter)(nil)).Elem(), "InvoiceExporter")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceCreated emits an invoice created event.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceCreated(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceSaved emits an invoice saved event.
func (r *Registry) EmitInvoiceSaved(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoiceSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceSaved(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceStatusChanged emits an invoice status change event.
func (r *Registry) EmitInvoiceStatusChanged(ctx context.Context, inv interface{}, from, to string) {
	r.mu.RLock()
	plugins := r.onInvoiceStatusChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceStatusChanged(ctx, inv, from, to)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceStatusChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceOverdue emits a derived-overdue event.
func (r *Registry) EmitInvoiceOverdue(ctx context.Context, inv interface{}, daysOverdue int) {
	r.mu.RLock()
	plugins := r.onInvoiceOverdue
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceOverdue(ctx, inv, daysOverdue)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceOverdue failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoicePaid emits an invoice paid event.
func (r *Registry) EmitInvoicePaid(ctx context.Context, inv interface{}, paidAt time.Time) {
	r.mu.RLock()
	plugins := r.onInvoicePaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoicePaid(ctx, inv, paidAt)
		}); err != nil {
			r.logger.Warn("plugin OnInvoicePaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceDeleted emits an invoice deleted event.
func (r *Registry) EmitInvoiceDeleted(ctx context.Context, invoiceID string) {
	r.mu.RLock()
	plugins := r.onInvoiceDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceDeleted(ctx, invoiceID)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCustomerSaved emits a customer saved event.
func (r *Registry) EmitCustomerSaved(ctx context.Context, c interface{}) {
	r.mu.RLock()
	plugins := r.onCustomerSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCustomerSaved(ctx, c)
		}); err != nil {
			r.logger.Warn("plugin OnCustomerSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCustomerDeleted emits a customer deleted event.
func (r *Registry) EmitCustomerDeleted(ctx context.Context, customerID string) {
	r.mu.RLock()
	plugins := r.onCustomerDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCustomerDeleted(ctx, customerID)
		}); err != nil {
			r.logger.Warn("plugin OnCustomerDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProductSaved emits a product saved event.
func (r *Registry) EmitProductSaved(ctx context.Context, prod interface{}) {
	r.mu.RLock()
	plugins := r.onProductSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductSaved(ctx, prod)
		}); err != nil {
			r.logger.Warn("plugin OnProductSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProductDeleted emits a product deleted event.
func (r *Registry) EmitProductDeleted(ctx context.Context, productID string) {
	r.mu.RLock()
	plugins := r.onProductDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductDeleted(ctx, productID)
		}); err != nil {
			r.logger.Warn("plugin OnProductDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReportGenerated emits a report generated event.
func (r *Registry) EmitReportGenerated(ctx context.Context, kind string, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onReportGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReportGenerated(ctx, kind, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnReportGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// GetExporter returns an invoice exporter by format, or nil.
func (r *Registry) GetExporter(format string) InvoiceExporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.invoiceExporters[format]
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the invoicing pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
