package invoice

import (
	"time"

	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/types"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Invoice is the aggregate root. An invoice with a Nil ID has never been
// saved; the first successful save assigns it.
type Invoice struct {
	types.Entity
	ID             id.InvoiceID  `json:"id"`
	InvoiceNumber  string        `json:"invoice_number"`
	Company        string        `json:"company"`
	CompanyAddress string        `json:"company_address"`
	Client         string        `json:"client"`
	ClientAddress  string        `json:"client_address"`
	CustomerID     id.CustomerID `json:"customer_id,omitempty"`
	Items          []LineItem    `json:"items"` // insertion order = display order
	IssueDate      types.Date    `json:"issue_date"`
	DueDate        types.Date    `json:"due_date"`
	Status         Status        `json:"status"`
	CurrencyCode   string        `json:"currency"`
	TemplateID     string        `json:"template_id,omitempty"`

	// Display/computation toggles. Each gates whether the matching
	// amount contributes to the grand total and/or is rendered.
	Discount           float64  `json:"discount"` // percent of subtotal
	Shipping           Shipping `json:"shipping"`
	ShowDiscount       bool     `json:"show_discount"`
	ShowShipping       bool     `json:"show_shipping"`
	ShowTaxColumn      bool     `json:"show_tax_column"`
	ShowSignature      bool     `json:"show_signature"`
	ShowPaymentDetails bool     `json:"show_payment_details"`

	PaidAt         *time.Time        `json:"paid_at,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	PaymentDetails string            `json:"payment_details,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	ID          id.LineItemID `json:"id"`
	Description string        `json:"description"`
	Quantity    float64       `json:"quantity"` // positive, fractional allowed
	Price       float64       `json:"price"`    // non-negative unit price in invoice currency
	TaxRate     float64       `json:"tax_rate"` // non-negative percent, no upper bound
	ProductID   id.ProductID  `json:"product_id,omitempty"`
}

// Shipping is the optional shipping charge on an invoice.
type Shipping struct {
	Cost    float64 `json:"cost"`
	Carrier string  `json:"carrier,omitempty"`
}

// IsReadOnly reports whether the invoice rejects further field edits.
// Paid and cancelled invoices are view-only.
func (inv *Invoice) IsReadOnly() bool {
	return inv.Status == StatusPaid || inv.Status == StatusCancelled
}

// FindItem returns the line item with the given ID, or nil.
func (inv *Invoice) FindItem(itemID id.LineItemID) *LineItem {
	for i := range inv.Items {
		if inv.Items[i].ID.String() == itemID.String() {
			return &inv.Items[i]
		}
	}
	return nil
}

// ReferencesProduct reports whether any line item points at the product.
func (inv *Invoice) ReferencesProduct(productID id.ProductID) bool {
	for i := range inv.Items {
		if !inv.Items[i].ProductID.IsNil() && inv.Items[i].ProductID.String() == productID.String() {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the five lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}
