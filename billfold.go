package billfold

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/plugin"
	"github.com/billfold/billfold/product"
	"github.com/billfold/billfold/report"
	"github.com/billfold/billfold/store"
	"github.com/billfold/billfold/template"
	"github.com/billfold/billfold/types"
)

// Engine is the main invoicing engine.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	clock           func() time.Time
	netDays         int
	defaultCurrency string
	defaultTemplate string
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:           s,
		plugins:         plugin.NewRegistry(),
		logger:          slog.Default(),
		clock:           time.Now,
		netDays:         30,
		defaultCurrency: "usd",
		defaultTemplate: template.Default().ID,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock injects the time source. Overdue derivation, default due
// dates, and paid timestamps all flow through it.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithNetDays sets the default payment term in days for new drafts.
func WithNetDays(days int) Option {
	return func(e *Engine) {
		e.netDays = days
	}
}

// WithDefaultCurrency sets the currency code new drafts start with.
func WithDefaultCurrency(code string) Option {
	return func(e *Engine) {
		e.defaultCurrency = strings.ToLower(code)
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("billfold started",
		"net_days", e.netDays,
		"default_currency", e.defaultCurrency,
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Plugins exposes the plugin registry, e.g. to look up an exporter.
func (e *Engine) Plugins() *plugin.Registry {
	return e.plugins
}

func (e *Engine) now() time.Time    { return e.clock() }
func (e *Engine) today() types.Date { return types.DateOf(e.clock()) }

// ──────────────────────────────────────────────────
// Invoice Management
// ──────────────────────────────────────────────────

// NewDraft builds an unsaved draft invoice: next number from the store
// sequence, due date at today plus the configured net days, default
// currency and template, no line items. Nothing is persisted until
// SaveInvoice.
func (e *Engine) NewDraft(ctx context.Context) (*invoice.Invoice, error) {
	if _, err := e.requireUser(ctx); err != nil {
		return nil, err
	}

	seq, err := e.store.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	return &invoice.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%06d", seq),
		IssueDate:     e.today(),
		DueDate:       e.today().AddDays(e.netDays),
		Status:        invoice.StatusDraft,
		CurrencyCode:  e.defaultCurrency,
		TemplateID:    e.defaultTemplate,
		Items:         []invoice.LineItem{},
	}, nil
}

// SaveInvoice validates and persists an invoice, creating it on first
// save and updating it afterwards. Read-only (paid or cancelled)
// invoices reject the edit before any store write, so the stored record
// is untouched on failure.
func (e *Engine) SaveInvoice(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	creating := inv.ID.IsNil()
	if !creating {
		stored, err := e.store.GetInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}
		if stored.IsReadOnly() {
			return ErrInvoiceReadOnly
		}
	}

	if err := e.validateInvoice(inv); err != nil {
		return err
	}

	// Normalize dates at the write boundary. Whatever shape the caller
	// left them in, the stored record carries bare calendar dates.
	today := e.today()
	inv.IssueDate = types.NormalizeDate(inv.IssueDate, today)
	inv.DueDate = types.NormalizeDate(inv.DueDate, today)

	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}
	if inv.CurrencyCode == "" {
		inv.CurrencyCode = e.defaultCurrency
	}

	for i := range inv.Items {
		if inv.Items[i].ID.IsNil() {
			inv.Items[i].ID = id.NewLineItemID()
		}
	}

	if creating {
		inv.ID = id.NewInvoiceID()
		inv.Entity = types.NewEntity()
		if err := e.store.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		e.plugins.EmitInvoiceCreated(ctx, inv)
	} else {
		inv.Touch()
		if err := e.store.UpdateInvoice(ctx, inv); err != nil {
			return err
		}
	}

	e.plugins.EmitInvoiceSaved(ctx, inv)
	e.logger.Debug("invoice saved",
		"invoice_id", inv.ID,
		"number", inv.InvoiceNumber,
		"status", inv.Status,
	)
	return nil
}

// validateInvoice collects every failing field rather than stopping at
// the first one.
func (e *Engine) validateInvoice(inv *invoice.Invoice) error {
	var errs MultiError

	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs.Add(ValidationError{Field: field, Message: "must not be empty"})
		}
	}
	require("invoice_number", inv.InvoiceNumber)
	require("company", inv.Company)
	require("company_address", inv.CompanyAddress)
	require("client", inv.Client)
	require("client_address", inv.ClientAddress)

	if !invoice.ValidStatus(inv.Status) && inv.Status != "" {
		errs.Add(ValidationError{Field: "status", Message: "unknown status"})
	}

	if len(inv.Items) == 0 {
		errs.Add(ValidationError{Field: "items", Message: "at least one line item required"})
	}
	for i, it := range inv.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		if strings.TrimSpace(it.Description) == "" {
			errs.Add(ValidationError{Field: prefix + "description", Message: "must not be empty"})
		}
		if it.Quantity <= 0 {
			errs.Add(ValidationError{Field: prefix + "quantity", Message: "must be positive"})
		}
		if it.Price < 0 {
			errs.Add(ValidationError{Field: prefix + "price", Message: "must not be negative"})
		}
		if it.TaxRate < 0 {
			errs.Add(ValidationError{Field: prefix + "tax_rate", Message: "must not be negative"})
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// GetInvoice retrieves an invoice by ID, deriving the overdue status
// for a sent invoice whose due date has passed.
func (e *Engine) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	inv, err := e.store.GetInvoice(ctx, invID)
	if err != nil {
		return nil, err
	}
	e.deriveOverdue(ctx, inv)
	return inv, nil
}

// ListInvoices lists invoices with filtering and paging, returning the
// page plus the total match count. Overdue derivation runs over the
// returned page.
func (e *Engine) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, int, error) {
	invoices, total, err := e.store.ListInvoices(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	for _, inv := range invoices {
		e.deriveOverdue(ctx, inv)
	}
	return invoices, total, nil
}

// deriveOverdue flips a sent invoice to overdue once its due date has
// passed. There is no scheduler; the check runs opportunistically on
// every load. The write is status-only so invoice content is never
// rewritten as a side effect of reading it.
func (e *Engine) deriveOverdue(ctx context.Context, inv *invoice.Invoice) {
	now := e.now()
	if !inv.PastDue(now) {
		return
	}

	if err := e.store.UpdateInvoiceStatus(ctx, inv.ID, invoice.StatusOverdue, nil); err != nil {
		e.logger.Warn("overdue derivation failed",
			"invoice_id", inv.ID,
			"error", err,
		)
		return
	}

	from := inv.Status
	inv.Status = invoice.StatusOverdue
	days := invoice.DaysOverdue(inv.DueDate, now)

	e.plugins.EmitInvoiceStatusChanged(ctx, inv, string(from), string(invoice.StatusOverdue))
	e.plugins.EmitInvoiceOverdue(ctx, inv, days)
	e.logger.Info("invoice overdue",
		"invoice_id", inv.ID,
		"number", inv.InvoiceNumber,
		"days_overdue", days,
	)
}

// ChangeStatus applies a manual status transition. Changing to the
// current status is a no-op: no store call, no events. Overdue is never
// a legal target; it is derived, not set.
func (e *Engine) ChangeStatus(ctx context.Context, invID id.InvoiceID, target invoice.Status) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	inv, err := e.store.GetInvoice(ctx, invID)
	if err != nil {
		return err
	}

	if target == inv.Status {
		return nil
	}
	if !invoice.ValidStatus(target) {
		return ErrInvalidStatus
	}
	if target == invoice.StatusOverdue {
		return ErrManualOverdue
	}
	if !invoice.CanTransition(inv.Status, target) {
		return ErrIllegalTransition
	}

	var paidAt *time.Time
	if target == invoice.StatusPaid {
		now := e.now()
		paidAt = &now
	}

	if err := e.store.UpdateInvoiceStatus(ctx, invID, target, paidAt); err != nil {
		return err
	}

	from := inv.Status
	inv.Status = target
	inv.PaidAt = paidAt

	e.plugins.EmitInvoiceStatusChanged(ctx, inv, string(from), string(target))
	if target == invoice.StatusPaid {
		e.plugins.EmitInvoicePaid(ctx, inv, *paidAt)
	}
	e.logger.Info("invoice status changed",
		"invoice_id", invID,
		"from", from,
		"to", target,
	)
	return nil
}

// DeleteInvoice removes an invoice.
func (e *Engine) DeleteInvoice(ctx context.Context, invID id.InvoiceID) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	if _, err := e.store.GetInvoice(ctx, invID); err != nil {
		return err
	}
	if err := e.store.DeleteInvoice(ctx, invID); err != nil {
		return err
	}

	e.plugins.EmitInvoiceDeleted(ctx, invID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Customer Management
// ──────────────────────────────────────────────────

// SaveCustomer creates or updates a customer.
func (e *Engine) SaveCustomer(ctx context.Context, c *customer.Customer) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}

	if c.ID.IsNil() {
		c.ID = id.NewCustomerID()
		c.Entity = types.NewEntity()
		if err := e.store.CreateCustomer(ctx, c); err != nil {
			return err
		}
	} else {
		c.Touch()
		if err := e.store.UpdateCustomer(ctx, c); err != nil {
			return err
		}
	}

	e.plugins.EmitCustomerSaved(ctx, c)
	return nil
}

// GetCustomer retrieves a customer by ID.
func (e *Engine) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	return e.store.GetCustomer(ctx, customerID)
}

// ListCustomers lists customers.
func (e *Engine) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	return e.store.ListCustomers(ctx, opts)
}

// DeleteCustomer removes a customer. The delete is refused while any
// invoice still references the customer; the check runs before the
// store delete.
func (e *Engine) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	inUse, err := e.store.CustomerHasInvoices(ctx, customerID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCustomerInUse
	}

	if err := e.store.DeleteCustomer(ctx, customerID); err != nil {
		return err
	}

	e.plugins.EmitCustomerDeleted(ctx, customerID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Product Management
// ──────────────────────────────────────────────────

// SaveProduct creates or updates a catalog product.
func (e *Engine) SaveProduct(ctx context.Context, p *product.Product) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	var errs MultiError
	if strings.TrimSpace(p.Name) == "" {
		errs.Add(ValidationError{Field: "name", Message: "must not be empty"})
	}
	if p.UnitPrice < 0 {
		errs.Add(ValidationError{Field: "unit_price", Message: "must not be negative"})
	}
	if p.TaxRate < 0 {
		errs.Add(ValidationError{Field: "tax_rate", Message: "must not be negative"})
	}
	if errs.HasErrors() {
		return errs
	}

	if p.ID.IsNil() {
		p.ID = id.NewProductID()
		p.Entity = types.NewEntity()
		p.Active = true
		if err := e.store.CreateProduct(ctx, p); err != nil {
			return err
		}
	} else {
		p.Touch()
		if err := e.store.UpdateProduct(ctx, p); err != nil {
			return err
		}
	}

	e.plugins.EmitProductSaved(ctx, p)
	return nil
}

// GetProduct retrieves a product by ID.
func (e *Engine) GetProduct(ctx context.Context, productID id.ProductID) (*product.Product, error) {
	return e.store.GetProduct(ctx, productID)
}

// ListProducts lists catalog products.
func (e *Engine) ListProducts(ctx context.Context, opts product.ListOpts) ([]*product.Product, error) {
	return e.store.ListProducts(ctx, opts)
}

// DeleteProduct removes a product unless a line item still references
// it.
func (e *Engine) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	if _, err := e.requireUser(ctx); err != nil {
		return err
	}

	inUse, err := e.store.ProductInUse(ctx, productID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrProductInUse
	}

	if err := e.store.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	e.plugins.EmitProductDeleted(ctx, productID.String())
	return nil
}

// AddProductLine appends a line item to an invoice from a catalog
// product, copying its price and tax rate. Later product edits never
// rewrite lines already on an invoice.
func (e *Engine) AddProductLine(ctx context.Context, inv *invoice.Invoice, productID id.ProductID, quantity float64) error {
	p, err := e.store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	inv.Items = append(inv.Items, invoice.LineItem{
		ID:          id.NewLineItemID(),
		Description: p.Name,
		Quantity:    quantity,
		Price:       p.UnitPrice,
		TaxRate:     p.TaxRate,
		ProductID:   p.ID,
	})
	return nil
}

// ──────────────────────────────────────────────────
// Reporting
// ──────────────────────────────────────────────────

// Dashboard computes headline metrics over invoices due in the given
// range. Zero from/to leave the range unbounded on that side.
func (e *Engine) Dashboard(ctx context.Context, from, to types.Date) (report.Dashboard, error) {
	start := time.Now()

	invoices, err := e.loadInvoices(ctx, from, to)
	if err != nil {
		return report.Dashboard{}, err
	}

	d := report.BuildDashboard(invoices, e.now())
	e.plugins.EmitReportGenerated(ctx, "dashboard", time.Since(start))
	return d, nil
}

// CustomerReport aggregates invoices per customer over the given due
// date range.
func (e *Engine) CustomerReport(ctx context.Context, from, to types.Date) ([]report.CustomerSummary, error) {
	start := time.Now()

	invoices, err := e.loadInvoices(ctx, from, to)
	if err != nil {
		return nil, err
	}

	customers, err := e.store.ListCustomers(ctx, customer.ListOpts{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID.String()] = c.DisplayName()
	}

	summaries := report.BuildCustomerSummaries(invoices, names)
	e.plugins.EmitReportGenerated(ctx, "customers", time.Since(start))
	return summaries, nil
}

// AgingReport buckets all outstanding invoices by how late they are.
func (e *Engine) AgingReport(ctx context.Context) ([]report.AgingSummary, error) {
	start := time.Now()

	invoices, err := e.loadInvoices(ctx, types.Date{}, types.Date{})
	if err != nil {
		return nil, err
	}

	summary := report.BuildAgingSummary(invoices, e.now())
	e.plugins.EmitReportGenerated(ctx, "aging", time.Since(start))
	return summary, nil
}

// loadInvoices pulls every invoice in the due date range, with overdue
// derivation applied, for the report builders.
func (e *Engine) loadInvoices(ctx context.Context, from, to types.Date) ([]*invoice.Invoice, error) {
	invoices, _, err := e.store.ListInvoices(ctx, invoice.ListOpts{DueFrom: from, DueTo: to})
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		e.deriveOverdue(ctx, inv)
	}
	return invoices, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// CurrentUser returns the session user carried in the context, or "".
func CurrentUser(ctx context.Context) string {
	// Would extract from context (e.g., from Forge scope)
	// For now, check context value
	if v := ctx.Value("user_id"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// requireUser rejects mutating operations without a session user.
// There is no anonymous fallback.
func (e *Engine) requireUser(ctx context.Context) (string, error) {
	user := CurrentUser(ctx)
	if user == "" {
		return "", ErrUnauthorized
	}
	return user, nil
}
