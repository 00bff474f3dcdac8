package invoice

import (
	"context"
	"time"

	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/types"
)

// Store is the invoice persistence interface implemented by each backend.
type Store interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, invID id.InvoiceID) (*Invoice, error)
	List(ctx context.Context, opts ListOpts) ([]*Invoice, int, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, invID id.InvoiceID) error

	// UpdateStatus writes status (and paid_at) without touching any other
	// field; a pure status change must not silently alter invoice content.
	UpdateStatus(ctx context.Context, invID id.InvoiceID, status Status, paidAt *time.Time) error

	// NextNumber bumps and returns the invoice number sequence.
	NextNumber(ctx context.Context) (int64, error)
}

// ListOpts filters and pages invoice listings. List returns the page of
// matching invoices plus the total match count.
type ListOpts struct {
	Status     Status
	CustomerID id.CustomerID
	DueFrom    types.Date
	DueTo      types.Date
	Limit      int
	Offset     int
}
