package customer

import (
	"strings"

	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/types"
)

// Customer is a billable party. Name is the only required field; the
// rest pre-fills the client block when drafting an invoice for them.
type Customer struct {
	types.Entity
	ID       id.CustomerID     `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Address  string            `json:"address,omitempty"`
	TaxID    string            `json:"tax_id,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DisplayName returns the trimmed name, or "(unnamed)" for a blank one
// so listings never render an empty row label.
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "(unnamed)"
	}
	return name
}
