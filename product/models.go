package product

import (
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/types"
)

// Product is a reusable catalog entry. Adding one to an invoice copies
// its fields into a line item; later product edits never rewrite lines
// already on an invoice.
type Product struct {
	types.Entity
	ID          id.ProductID      `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	UnitPrice   float64           `json:"unit_price"`
	TaxRate     float64           `json:"tax_rate"` // default percent for new lines
	Unit        string            `json:"unit,omitempty"`
	Active      bool              `json:"active"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
