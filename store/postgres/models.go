package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
	"github.com/billfold/billfold/types"
)

// ==================== Invoice models ====================

type invoiceModel struct {
	grove.BaseModel `grove:"table:billfold_invoices"`

	ID                 string            `grove:"id,pk"`
	InvoiceNumber      string            `grove:"invoice_number"`
	Company            string            `grove:"company"`
	CompanyAddress     string            `grove:"company_address"`
	Client             string            `grove:"client"`
	ClientAddress      string            `grove:"client_address"`
	CustomerID         string            `grove:"customer_id"`
	Items              json.RawMessage   `grove:"items,type:jsonb"`
	IssueDate          string            `grove:"issue_date"`
	DueDate            string            `grove:"due_date"`
	Status             string            `grove:"status"`
	Currency           string            `grove:"currency"`
	TemplateID         string            `grove:"template_id"`
	Discount           float64           `grove:"discount"`
	ShippingCost       float64           `grove:"shipping_cost"`
	ShippingCarrier    string            `grove:"shipping_carrier"`
	ShowDiscount       bool              `grove:"show_discount"`
	ShowShipping       bool              `grove:"show_shipping"`
	ShowTaxColumn      bool              `grove:"show_tax_column"`
	ShowSignature      bool              `grove:"show_signature"`
	ShowPaymentDetails bool              `grove:"show_payment_details"`
	PaidAt             *time.Time        `grove:"paid_at"`
	Notes              string            `grove:"notes"`
	PaymentDetails     string            `grove:"payment_details"`
	Metadata           map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt          time.Time         `grove:"created_at"`
	UpdatedAt          time.Time         `grove:"updated_at"`
}

func toInvoiceModel(inv *invoice.Invoice) *invoiceModel {
	items, _ := json.Marshal(inv.Items) //nolint:errcheck // best-effort

	customerID := ""
	if !inv.CustomerID.IsNil() {
		customerID = inv.CustomerID.String()
	}

	return &invoiceModel{
		ID:                 inv.ID.String(),
		InvoiceNumber:      inv.InvoiceNumber,
		Company:            inv.Company,
		CompanyAddress:     inv.CompanyAddress,
		Client:             inv.Client,
		ClientAddress:      inv.ClientAddress,
		CustomerID:         customerID,
		Items:              items,
		IssueDate:          inv.IssueDate.String(),
		DueDate:            inv.DueDate.String(),
		Status:             string(inv.Status),
		Currency:           inv.CurrencyCode,
		TemplateID:         inv.TemplateID,
		Discount:           inv.Discount,
		ShippingCost:       inv.Shipping.Cost,
		ShippingCarrier:    inv.Shipping.Carrier,
		ShowDiscount:       inv.ShowDiscount,
		ShowShipping:       inv.ShowShipping,
		ShowTaxColumn:      inv.ShowTaxColumn,
		ShowSignature:      inv.ShowSignature,
		ShowPaymentDetails: inv.ShowPaymentDetails,
		PaidAt:             inv.PaidAt,
		Notes:              inv.Notes,
		PaymentDetails:     inv.PaymentDetails,
		Metadata:           inv.Metadata,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
}

func fromInvoiceModel(m *invoiceModel) (*invoice.Invoice, error) {
	invID, err := id.ParseInvoiceID(m.ID)
	if err != nil {
		return nil, err
	}

	var customerID id.CustomerID
	if m.CustomerID != "" {
		customerID, err = id.ParseCustomerID(m.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	var items []invoice.LineItem
	if len(m.Items) > 0 {
		_ = json.Unmarshal(m.Items, &items) //nolint:errcheck // best-effort
	}

	return &invoice.Invoice{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:                 invID,
		InvoiceNumber:      m.InvoiceNumber,
		Company:            m.Company,
		CompanyAddress:     m.CompanyAddress,
		Client:             m.Client,
		ClientAddress:      m.ClientAddress,
		CustomerID:         customerID,
		Items:              items,
		IssueDate:          parseDate(m.IssueDate),
		DueDate:            parseDate(m.DueDate),
		Status:             invoice.Status(m.Status),
		CurrencyCode:       m.Currency,
		TemplateID:         m.TemplateID,
		Discount:           m.Discount,
		Shipping:           invoice.Shipping{Cost: m.ShippingCost, Carrier: m.ShippingCarrier},
		ShowDiscount:       m.ShowDiscount,
		ShowShipping:       m.ShowShipping,
		ShowTaxColumn:      m.ShowTaxColumn,
		ShowSignature:      m.ShowSignature,
		ShowPaymentDetails: m.ShowPaymentDetails,
		PaidAt:             m.PaidAt,
		Notes:              m.Notes,
		PaymentDetails:     m.PaymentDetails,
		Metadata:           m.Metadata,
	}, nil
}

// parseDate reads a stored "YYYY-MM-DD" column; empty means absent.
func parseDate(s string) types.Date {
	if s == "" {
		return types.Date{}
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}
	}
	return d
}

// ==================== Customer models ====================

type customerModel struct {
	grove.BaseModel `grove:"table:billfold_customers"`

	ID        string            `grove:"id,pk"`
	Name      string            `grove:"name"`
	Email     string            `grove:"email"`
	Phone     string            `grove:"phone"`
	Address   string            `grove:"address"`
	TaxID     string            `grove:"tax_id"`
	Notes     string            `grove:"notes"`
	Metadata  map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt time.Time         `grove:"created_at"`
	UpdatedAt time.Time         `grove:"updated_at"`
}

func toCustomerModel(c *customer.Customer) *customerModel {
	return &customerModel{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		Notes:     c.Notes,
		Metadata:  c.Metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerModel(m *customerModel) (*customer.Customer, error) {
	customerID, err := id.ParseCustomerID(m.ID)
	if err != nil {
		return nil, err
	}

	return &customer.Customer{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       customerID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Address:  m.Address,
		TaxID:    m.TaxID,
		Notes:    m.Notes,
		Metadata: m.Metadata,
	}, nil
}

// ==================== Product models ====================

type productModel struct {
	grove.BaseModel `grove:"table:billfold_products"`

	ID          string            `grove:"id,pk"`
	Name        string            `grove:"name"`
	Description string            `grove:"description"`
	UnitPrice   float64           `grove:"unit_price"`
	TaxRate     float64           `grove:"tax_rate"`
	Unit        string            `grove:"unit"`
	Active      bool              `grove:"active"`
	Metadata    map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt   time.Time         `grove:"created_at"`
	UpdatedAt   time.Time         `grove:"updated_at"`
}

func toProductModel(p *product.Product) *productModel {
	return &productModel{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		TaxRate:     p.TaxRate,
		Unit:        p.Unit,
		Active:      p.Active,
		Metadata:    p.Metadata,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromProductModel(m *productModel) (*product.Product, error) {
	productID, err := id.ParseProductID(m.ID)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          productID,
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		Unit:        m.Unit,
		Active:      m.Active,
		Metadata:    m.Metadata,
	}, nil
}

// ==================== Sequence model ====================

type sequenceModel struct {
	grove.BaseModel `grove:"table:billfold_sequences"`

	Name  string `grove:"name,pk"`
	Value int64  `grove:"value"`
}
