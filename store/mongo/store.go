// Package mongo provides a MongoDB-backed store implementation using Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	billfold "github.com/billfold/billfold"
	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
	billfoldstore "github.com/billfold/billfold/store"
)

// Collection name constants.
const (
	colInvoices  = "billfold_invoices"
	colCustomers = "billfold_customers"
	colProducts  = "billfold_products"
	colSequences = "billfold_sequences"
)

// compile-time interface check
var _ billfoldstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all billfold collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("billfold/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m := toInvoiceModel(inv)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: create invoice: %w", err)
	}
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	var m invoiceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": invID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, billfold.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("billfold/mongo: get invoice: %w", err)
	}
	return fromInvoiceModel(&m)
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, int, error) {
	filter := invoiceFilter(opts)

	total, err := s.mdb.Collection(colInvoices).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("billfold/mongo: count invoices: %w", err)
	}

	var models []invoiceModel
	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("billfold/mongo: list invoices: %w", err)
	}

	result := make([]*invoice.Invoice, 0, len(models))
	for i := range models {
		inv, err := fromInvoiceModel(&models[i])
		if err != nil {
			return nil, 0, fmt.Errorf("billfold/mongo: list invoices: %w", err)
		}
		result = append(result, inv)
	}
	return result, int(total), nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m := toInvoiceModel(inv)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: update invoice: %w", err)
	}
	if res.MatchedCount() == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invID id.InvoiceID) error {
	res, err := s.mdb.NewDelete((*invoiceModel)(nil)).
		Filter(bson.M{"_id": invID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: delete invoice: %w", err)
	}
	if res.DeletedCount() == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) UpdateInvoiceStatus(ctx context.Context, invID id.InvoiceID, status invoice.Status, paidAt *time.Time) error {
	res, err := s.mdb.NewUpdate((*invoiceModel)(nil)).
		Filter(bson.M{"_id": invID.String()}).
		Set("status", string(status)).
		Set("paid_at", paidAt).
		Set("updated_at", now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: update invoice status: %w", err)
	}
	if res.MatchedCount() == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

// NextInvoiceNumber atomically increments the invoice number sequence.
func (s *Store) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var seq sequenceModel
	err := s.mdb.Collection(colSequences).FindOneAndUpdate(ctx,
		bson.M{"_id": "invoice_number"},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&seq)
	if err != nil {
		return 0, fmt.Errorf("billfold/mongo: next invoice number: %w", err)
	}
	return seq.Value, nil
}

// ==================== Customer Store ====================

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: create customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	var m customerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": customerID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, billfold.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("billfold/mongo: get customer: %w", err)
	}
	return fromCustomerModel(&m)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	var models []customerModel

	filter := bson.M{}
	if opts.Search != "" {
		pattern := bson.M{"$regex": opts.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"email": pattern},
		}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "name", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("billfold/mongo: list customers: %w", err)
	}

	result := make([]*customer.Customer, 0, len(models))
	for i := range models {
		c, err := fromCustomerModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("billfold/mongo: list customers: %w", err)
		}
		result = append(result, c)
	}
	return result, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: update customer: %w", err)
	}
	if res.MatchedCount() == 0 {
		return billfold.ErrCustomerNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	res, err := s.mdb.NewDelete((*customerModel)(nil)).
		Filter(bson.M{"_id": customerID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: delete customer: %w", err)
	}
	if res.DeletedCount() == 0 {
		return billfold.ErrCustomerNotFound
	}
	return nil
}

func (s *Store) CustomerHasInvoices(ctx context.Context, customerID id.CustomerID) (bool, error) {
	n, err := s.mdb.Collection(colInvoices).CountDocuments(ctx,
		bson.M{"customer_id": customerID.String()})
	if err != nil {
		return false, fmt.Errorf("billfold/mongo: customer has invoices: %w", err)
	}
	return n > 0, nil
}

// ==================== Product Store ====================

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	m := toProductModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: create product: %w", err)
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID id.ProductID) (*product.Product, error) {
	var m productModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": productID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, billfold.ErrProductNotFound
		}
		return nil, fmt.Errorf("billfold/mongo: get product: %w", err)
	}
	return fromProductModel(&m)
}

func (s *Store) ListProducts(ctx context.Context, opts product.ListOpts) ([]*product.Product, error) {
	var models []productModel

	filter := bson.M{}
	if opts.ActiveOnly {
		filter["active"] = true
	}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "name", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("billfold/mongo: list products: %w", err)
	}

	result := make([]*product.Product, 0, len(models))
	for i := range models {
		p, err := fromProductModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("billfold/mongo: list products: %w", err)
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	m := toProductModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: update product: %w", err)
	}
	if res.MatchedCount() == 0 {
		return billfold.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	res, err := s.mdb.NewDelete((*productModel)(nil)).
		Filter(bson.M{"_id": productID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("billfold/mongo: delete product: %w", err)
	}
	if res.DeletedCount() == 0 {
		return billfold.ErrProductNotFound
	}
	return nil
}

func (s *Store) ProductInUse(ctx context.Context, productID id.ProductID) (bool, error) {
	n, err := s.mdb.Collection(colInvoices).CountDocuments(ctx,
		bson.M{"items.product_id": productID.String()})
	if err != nil {
		return false, fmt.Errorf("billfold/mongo: product in use: %w", err)
	}
	return n > 0, nil
}

// ==================== Helpers ====================

// invoiceFilter translates list options into a bson filter document.
func invoiceFilter(opts invoice.ListOpts) bson.M {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if !opts.CustomerID.IsNil() {
		filter["customer_id"] = opts.CustomerID.String()
	}

	// Due dates are stored as "YYYY-MM-DD" strings, so range filters
	// compare lexicographically. An upper bound alone must not sweep in
	// the empty string used for absent dates.
	due := bson.M{}
	if !opts.DueFrom.IsZero() {
		due["$gte"] = opts.DueFrom.String()
	}
	if !opts.DueTo.IsZero() {
		due["$lte"] = opts.DueTo.String()
		if opts.DueFrom.IsZero() {
			due["$gt"] = ""
		}
	}
	if len(due) > 0 {
		filter["due_date"] = due
	}
	return filter
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all billfold collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colInvoices: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
			{Keys: bson.D{{Key: "due_date", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{
				Keys:    bson.D{{Key: "invoice_number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colCustomers: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		colProducts: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "active", Value: 1}}},
		},
	}
}
