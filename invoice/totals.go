package invoice

// Totals is the financial summary of an invoice. All values are exact
// (unrounded) float64 amounts in the invoice currency; rounding happens
// only at formatting time via the currency package.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`        // Σ qty × price, tax excluded
	TaxTotal       float64 `json:"tax_total"`       // Σ qty × price × rate/100
	DiscountAmount float64 `json:"discount_amount"` // subtotal × discount%, when shown
	ShippingCost   float64 `json:"shipping_cost"`   // shipping cost, when shown
	GrandTotal     float64 `json:"grand_total"`     // subtotal + tax − discount + shipping
}

// ExtendedAmount is the tax-inclusive amount of one line item:
// quantity × price × (1 + taxRate/100). No rounding is applied here;
// summing rounded line amounts would accumulate drift across items.
func ExtendedAmount(it LineItem) float64 {
	return it.Quantity * it.Price * (1 + it.TaxRate/100)
}

// Totals computes the invoice's financial summary from its line items and
// toggles. The result is deterministic and independent of item order:
// subtotal and tax are accumulated separately from exact per-line values
// and combined once at the end.
func (inv *Invoice) Totals() Totals {
	var t Totals
	for i := range inv.Items {
		it := &inv.Items[i]
		line := it.Quantity * it.Price
		t.Subtotal += line
		t.TaxTotal += line * it.TaxRate / 100
	}

	if inv.ShowDiscount {
		t.DiscountAmount = t.Subtotal * inv.Discount / 100
	}
	if inv.ShowShipping {
		t.ShippingCost = inv.Shipping.Cost
	}

	t.GrandTotal = t.Subtotal + t.TaxTotal - t.DiscountAmount + t.ShippingCost
	return t
}
