package notifyhook

// Event constants for notifications.
const (
	// Invoice events
	EventInvoiceCreated       = "invoice.created"
	EventInvoiceSaved         = "invoice.saved"
	EventInvoiceStatusChanged = "invoice.status_changed"
	EventInvoiceOverdue       = "invoice.overdue"
	EventInvoicePaid          = "invoice.paid"
	EventInvoiceDeleted       = "invoice.deleted"

	// Customer events
	EventCustomerSaved   = "customer.saved"
	EventCustomerDeleted = "customer.deleted"

	// Product events
	EventProductSaved   = "product.saved"
	EventProductDeleted = "product.deleted"
)

// Severity levels for notifications.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)
