package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	billfold "github.com/billfold/billfold"
	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
	billfoldstore "github.com/billfold/billfold/store"
)

// compile-time interface check
var _ billfoldstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("billfold/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("billfold/sqlite: migration failed: %w", err)
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	m := new(invoiceModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", invID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, billfold.ErrInvoiceNotFound
		}
		return nil, err
	}
	return fromInvoiceModel(m)
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, int, error) {
	where, args := invoiceFilter(opts)

	var total int
	err := s.sdb.NewRaw(
		"SELECT COUNT(*) FROM billfold_invoices WHERE "+where, args...,
	).Scan(ctx, &total)
	if err != nil {
		return nil, 0, err
	}

	var models []invoiceModel
	q := s.sdb.NewSelect(&models)

	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if !opts.CustomerID.IsNil() {
		q = q.Where("customer_id = ?", opts.CustomerID.String())
	}
	if !opts.DueFrom.IsZero() {
		q = q.Where("due_date >= ?", opts.DueFrom.String())
	}
	if !opts.DueTo.IsZero() {
		q = q.Where("due_date != '' AND due_date <= ?", opts.DueTo.String())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at DESC")

	if err := q.Scan(ctx); err != nil {
		return nil, 0, err
	}

	result := make([]*invoice.Invoice, len(models))
	for i := range models {
		inv, err := fromInvoiceModel(&models[i])
		if err != nil {
			return nil, 0, err
		}
		result[i] = inv
	}
	return result, total, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m := toInvoiceModel(inv)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invID id.InvoiceID) error {
	res, err := s.sdb.NewDelete((*invoiceModel)(nil)).
		Where("id = ?", invID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) UpdateInvoiceStatus(ctx context.Context, invID id.InvoiceID, status invoice.Status, paidAt *time.Time) error {
	t := now()
	res, err := s.sdb.NewUpdate((*invoiceModel)(nil)).
		Set("status = ?", string(status)).
		Set("paid_at = ?", paidAt).
		Set("updated_at = ?", t).
		Where("id = ?", invID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var value int64
	err := s.sdb.NewRaw(`
		UPDATE billfold_sequences SET value = value + 1
		WHERE name = 'invoice_number'
		RETURNING value
	`).Scan(ctx, &value)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// ==================== Customer Store ====================

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCustomer(ctx context.Context, customerID id.CustomerID) (*customer.Customer, error) {
	m := new(customerModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", customerID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, billfold.ErrCustomerNotFound
		}
		return nil, err
	}
	return fromCustomerModel(m)
}

func (s *Store) ListCustomers(ctx context.Context, opts customer.ListOpts) ([]*customer.Customer, error) {
	var models []customerModel
	q := s.sdb.NewSelect(&models)

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("(name LIKE ? OR email LIKE ?)", pattern, pattern)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("name ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*customer.Customer, len(models))
	for i := range models {
		c, err := fromCustomerModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	m := toCustomerModel(c)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrCustomerNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID id.CustomerID) error {
	res, err := s.sdb.NewDelete((*customerModel)(nil)).
		Where("id = ?", customerID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrCustomerNotFound
	}
	return nil
}

func (s *Store) CustomerHasInvoices(ctx context.Context, customerID id.CustomerID) (bool, error) {
	var count int
	err := s.sdb.NewRaw(
		"SELECT COUNT(*) FROM billfold_invoices WHERE customer_id = ?",
		customerID.String(),
	).Scan(ctx, &count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ==================== Product Store ====================

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	m := toProductModel(p)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetProduct(ctx context.Context, productID id.ProductID) (*product.Product, error) {
	m := new(productModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", productID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, billfold.ErrProductNotFound
		}
		return nil, err
	}
	return fromProductModel(m)
}

func (s *Store) ListProducts(ctx context.Context, opts product.ListOpts) ([]*product.Product, error) {
	var models []productModel
	q := s.sdb.NewSelect(&models)

	if opts.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if opts.Search != "" {
		q = q.Where("name LIKE ?", "%"+opts.Search+"%")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("name ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*product.Product, len(models))
	for i := range models {
		p, err := fromProductModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	m := toProductModel(p)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID id.ProductID) error {
	res, err := s.sdb.NewDelete((*productModel)(nil)).
		Where("id = ?", productID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return billfold.ErrProductNotFound
	}
	return nil
}

func (s *Store) ProductInUse(ctx context.Context, productID id.ProductID) (bool, error) {
	// Line items live inside the invoice JSON column, so the reference
	// check is a substring match on the serialized product id.
	var count int
	err := s.sdb.NewRaw(
		"SELECT COUNT(*) FROM billfold_invoices WHERE items LIKE ?",
		"%"+productID.String()+"%",
	).Scan(ctx, &count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ==================== Helpers ====================

// invoiceFilter builds the WHERE clause shared by the list query and
// its count.
func invoiceFilter(opts invoice.ListOpts) (string, []any) {
	where := "1=1"
	args := make([]any, 0, 4)

	if opts.Status != "" {
		where += " AND status = ?"
		args = append(args, string(opts.Status))
	}
	if !opts.CustomerID.IsNil() {
		where += " AND customer_id = ?"
		args = append(args, opts.CustomerID.String())
	}
	if !opts.DueFrom.IsZero() {
		where += " AND due_date >= ?"
		args = append(args, opts.DueFrom.String())
	}
	if !opts.DueTo.IsZero() {
		where += " AND due_date != '' AND due_date <= ?"
		args = append(args, opts.DueTo.String())
	}
	return where, args
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
