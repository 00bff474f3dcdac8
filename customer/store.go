package customer

import (
	"context"

	"github.com/billfold/billfold/id"
)

type Store interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, customerID id.CustomerID) (*Customer, error)
	List(ctx context.Context, opts ListOpts) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, customerID id.CustomerID) error
}

type ListOpts struct {
	// Search matches name or email, case-insensitive substring.
	Search string
	Limit  int
	Offset int
}
