package store

import (
	"context"
	"time"

	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
)

// Store is the unified storage interface for all Billfold entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Invoice methods
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error
	GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, int, error)
	UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error
	DeleteInvoice(ctx context.Context, invID id.InvoiceID) error
	UpdateInvoiceStatus(ctx context.Context, invID id.InvoiceID, status invoice.Status, paidAt *time.Time) error
	NextInvoiceNumber(ctx context.Context) (int64, error)

	// Customer methods
	CreateCustomer(ctx context.Context, c *customer.Customer) error
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error)
	ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error)
	UpdateCustomer(ctx context.Context, c *customer.Customer) error
	DeleteCustomer(ctx context.Context, customerID id.CustomerID) error
	CustomerHasInvoices(ctx context.Context, customerID id.CustomerID) (bool, error)

	// Product methods
	CreateProduct(ctx context.Context, p *product.Product) error
	GetProduct(ctx context.Context, productID id.ProductID) (*product.Product, error)
	ListProducts(ctx context.Context, opts product.ListOpts) ([]*product.Product, error)
	UpdateProduct(ctx context.Context, p *product.Product) error
	DeleteProduct(ctx context.Context, productID id.ProductID) error
	ProductInUse(ctx context.Context, productID id.ProductID) (bool, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
