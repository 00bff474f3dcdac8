package invoice

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func TestExtendedAmount(t *testing.T) {
	tests := []struct {
		name     string
		item     LineItem
		expected float64
	}{
		{"NoTax", LineItem{Quantity: 1, Price: 20, TaxRate: 0}, 20},
		{"WithTax", LineItem{Quantity: 2, Price: 50, TaxRate: 10}, 110},
		{"FractionalQuantity", LineItem{Quantity: 2.5, Price: 40, TaxRate: 0}, 100},
		{"ZeroPrice", LineItem{Quantity: 3, Price: 0, TaxRate: 20}, 0},
		{"HighTaxRate", LineItem{Quantity: 1, Price: 100, TaxRate: 150}, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtendedAmount(tt.item); !almostEqual(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTotalsEndToEnd(t *testing.T) {
	// Two items: 2×50 at 10% tax plus 1×20 untaxed.
	inv := &Invoice{
		Items: []LineItem{
			{Description: "Design work", Quantity: 2, Price: 50, TaxRate: 10},
			{Description: "Stock photo", Quantity: 1, Price: 20, TaxRate: 0},
		},
	}

	got := inv.Totals()
	if !almostEqual(got.Subtotal, 120) {
		t.Errorf("Subtotal: got %v, want 120", got.Subtotal)
	}
	if !almostEqual(got.TaxTotal, 10) {
		t.Errorf("TaxTotal: got %v, want 10", got.TaxTotal)
	}
	if !almostEqual(got.DiscountAmount, 0) {
		t.Errorf("DiscountAmount: got %v, want 0", got.DiscountAmount)
	}
	if !almostEqual(got.ShippingCost, 0) {
		t.Errorf("ShippingCost: got %v, want 0", got.ShippingCost)
	}
	if !almostEqual(got.GrandTotal, 130) {
		t.Errorf("GrandTotal: got %v, want 130", got.GrandTotal)
	}
}

func TestTotalsToggles(t *testing.T) {
	base := Invoice{
		Items:    []LineItem{{Quantity: 1, Price: 200, TaxRate: 5}},
		Discount: 10,
		Shipping: Shipping{Cost: 15},
	}

	tests := []struct {
		name           string
		showDiscount   bool
		showShipping   bool
		wantDiscount   float64
		wantShipping   float64
		wantGrandTotal float64
	}{
		{"BothHidden", false, false, 0, 0, 210},
		{"DiscountOnly", true, false, 20, 0, 190},
		{"ShippingOnly", false, true, 0, 15, 225},
		{"BothShown", true, true, 20, 15, 205},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := base
			inv.ShowDiscount = tt.showDiscount
			inv.ShowShipping = tt.showShipping

			got := inv.Totals()
			if !almostEqual(got.DiscountAmount, tt.wantDiscount) {
				t.Errorf("DiscountAmount: got %v, want %v", got.DiscountAmount, tt.wantDiscount)
			}
			if !almostEqual(got.ShippingCost, tt.wantShipping) {
				t.Errorf("ShippingCost: got %v, want %v", got.ShippingCost, tt.wantShipping)
			}
			if !almostEqual(got.GrandTotal, tt.wantGrandTotal) {
				t.Errorf("GrandTotal: got %v, want %v", got.GrandTotal, tt.wantGrandTotal)
			}
		})
	}
}

func TestTotalsInvariant(t *testing.T) {
	inv := &Invoice{
		Items: []LineItem{
			{Quantity: 3.5, Price: 19.99, TaxRate: 7.5},
			{Quantity: 1, Price: 0.01, TaxRate: 0},
			{Quantity: 12, Price: 104.17, TaxRate: 21},
		},
		Discount:     12.5,
		Shipping:     Shipping{Cost: 9.95},
		ShowDiscount: true,
		ShowShipping: true,
	}

	got := inv.Totals()
	want := got.Subtotal + got.TaxTotal - got.DiscountAmount + got.ShippingCost
	if !almostEqual(got.GrandTotal, want) {
		t.Errorf("grand total invariant violated: got %v, want %v", got.GrandTotal, want)
	}
}

func TestTotalsOrderIndependent(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Price: 50, TaxRate: 10},
		{Quantity: 1, Price: 20, TaxRate: 0},
		{Quantity: 0.5, Price: 99.99, TaxRate: 19},
	}
	reversed := []LineItem{items[2], items[1], items[0]}

	a := (&Invoice{Items: items}).Totals()
	b := (&Invoice{Items: reversed}).Totals()

	if !almostEqual(a.GrandTotal, b.GrandTotal) {
		t.Errorf("grand total depends on item order: %v vs %v", a.GrandTotal, b.GrandTotal)
	}
	if !almostEqual(a.Subtotal, b.Subtotal) {
		t.Errorf("subtotal depends on item order: %v vs %v", a.Subtotal, b.Subtotal)
	}
}

func TestTotalsEmptyInvoice(t *testing.T) {
	got := (&Invoice{}).Totals()
	if got.GrandTotal != 0 || got.Subtotal != 0 || got.TaxTotal != 0 {
		t.Errorf("empty invoice should total zero, got %+v", got)
	}
}

func BenchmarkTotals(b *testing.B) {
	inv := &Invoice{ShowDiscount: true, ShowShipping: true, Discount: 10, Shipping: Shipping{Cost: 25}}
	for i := 0; i < 50; i++ {
		inv.Items = append(inv.Items, LineItem{Quantity: float64(i), Price: 9.99, TaxRate: 20})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = inv.Totals()
	}
}
