package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/billfold/billfold"
	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
)

type Store struct {
	mu sync.RWMutex

	// Invoice storage
	invoices map[string]*invoice.Invoice

	// Customer storage
	customers map[string]*customer.Customer

	// Product storage
	products map[string]*product.Product

	// Invoice number sequence
	sequence int64
}

func New() *Store {
	return &Store{
		invoices:  make(map[string]*invoice.Invoice),
		customers: make(map[string]*customer.Customer),
		products:  make(map[string]*product.Product),
	}
}

// Invoice Store implementation
func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; exists {
		return billfold.ErrAlreadyExists
	}
	s.invoices[inv.ID.String()] = cloneInvoice(inv)
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invID.String()]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, billfold.ErrInvoiceNotFound
}

func (s *Store) ListInvoices(_ context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if !matchInvoice(inv, opts) {
			continue
		}
		result = append(result, cloneInvoice(inv))
	}

	// Newest first, stable across calls
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})

	total := len(result)

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], total, nil
}

func matchInvoice(inv *invoice.Invoice, opts invoice.ListOpts) bool {
	if opts.Status != "" && inv.Status != opts.Status {
		return false
	}
	if !opts.CustomerID.IsNil() && inv.CustomerID.String() != opts.CustomerID.String() {
		return false
	}
	if !opts.DueFrom.IsZero() && inv.DueDate.Before(opts.DueFrom) {
		return false
	}
	if !opts.DueTo.IsZero() && inv.DueDate.After(opts.DueTo) {
		return false
	}
	return true
}

func (s *Store) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID.String()]; !exists {
		return billfold.ErrInvoiceNotFound
	}
	s.invoices[inv.ID.String()] = cloneInvoice(inv)
	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, invID id.InvoiceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.invoices, invID.String())
	return nil
}

func (s *Store) UpdateInvoiceStatus(_ context.Context, invID id.InvoiceID, status invoice.Status, paidAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv, ok := s.invoices[invID.String()]; ok {
		inv.Status = status
		inv.PaidAt = paidAt
		inv.Touch()
		return nil
	}
	return billfold.ErrInvoiceNotFound
}

func (s *Store) NextInvoiceNumber(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	return s.sequence, nil
}

// Customer Store implementation
func (s *Store) CreateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[c.ID.String()]; exists {
		return billfold.ErrAlreadyExists
	}
	s.customers[c.ID.String()] = cloneCustomer(c)
	return nil
}

func (s *Store) GetCustomer(_ context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.customers[customerID.String()]; ok {
		return cloneCustomer(c), nil
	}
	return nil, billfold.ErrCustomerNotFound
}

func (s *Store) ListCustomers(_ context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*customer.Customer, 0)
	for _, c := range s.customers {
		if opts.Search != "" {
			needle := strings.ToLower(opts.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle) {
				continue
			}
		}
		result = append(result, cloneCustomer(c))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[c.ID.String()]; !exists {
		return billfold.ErrCustomerNotFound
	}
	s.customers[c.ID.String()] = cloneCustomer(c)
	return nil
}

func (s *Store) DeleteCustomer(_ context.Context, customerID id.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.customers, customerID.String())
	return nil
}

func (s *Store) CustomerHasInvoices(_ context.Context, customerID id.CustomerID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if !inv.CustomerID.IsNil() && inv.CustomerID.String() == customerID.String() {
			return true, nil
		}
	}
	return false, nil
}

// Product Store implementation
func (s *Store) CreateProduct(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID.String()]; exists {
		return billfold.ErrAlreadyExists
	}
	s.products[p.ID.String()] = cloneProduct(p)
	return nil
}

func (s *Store) GetProduct(_ context.Context, productID id.ProductID) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.products[productID.String()]; ok {
		return cloneProduct(p), nil
	}
	return nil, billfold.ErrProductNotFound
}

func (s *Store) ListProducts(_ context.Context, opts product.ListOpts) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*product.Product, 0)
	for _, p := range s.products {
		if opts.ActiveOnly && !p.Active {
			continue
		}
		if opts.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Search)) {
			continue
		}
		result = append(result, cloneProduct(p))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return page(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateProduct(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID.String()]; !exists {
		return billfold.ErrProductNotFound
	}
	s.products[p.ID.String()] = cloneProduct(p)
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, productID id.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, productID.String())
	return nil
}

func (s *Store) ProductInUse(_ context.Context, productID id.ProductID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ReferencesProduct(productID) {
			return true, nil
		}
	}
	return false, nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}

// Helper functions
func page[T any](in []T, offset, limit int) []T {
	start := offset
	if start > len(in) {
		start = len(in)
	}
	end := start + limit
	if limit == 0 || end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

// The store keeps its own copies so callers cannot mutate a stored
// record through a pointer they still hold after save.
func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	c := *inv
	c.Items = append([]invoice.LineItem(nil), inv.Items...)
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		c.PaidAt = &t
	}
	if inv.Metadata != nil {
		c.Metadata = make(map[string]string, len(inv.Metadata))
		for k, v := range inv.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

func cloneCustomer(cu *customer.Customer) *customer.Customer {
	c := *cu
	if cu.Metadata != nil {
		c.Metadata = make(map[string]string, len(cu.Metadata))
		for k, v := range cu.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

func cloneProduct(p *product.Product) *product.Product {
	c := *p
	if p.Metadata != nil {
		c.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
