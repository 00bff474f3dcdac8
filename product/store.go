package product

import (
	"context"

	"github.com/billfold/billfold/id"
)

type Store interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, productID id.ProductID) (*Product, error)
	List(ctx context.Context, opts ListOpts) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ProductID) error
}

type ListOpts struct {
	// ActiveOnly hides products retired from the catalog.
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}
