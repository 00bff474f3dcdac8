package billfold

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("billfold: not found")
	ErrAlreadyExists = errors.New("billfold: already exists")
	ErrInvalidInput  = errors.New("billfold: invalid input")
	ErrUnauthorized  = errors.New("billfold: unauthorized")
	ErrForbidden     = errors.New("billfold: forbidden")

	// Invoice errors
	ErrInvoiceNotFound   = errors.New("billfold: invoice not found")
	ErrInvoiceReadOnly   = errors.New("billfold: invoice is read-only")
	ErrManualOverdue     = errors.New("billfold: overdue status cannot be set manually")
	ErrInvalidStatus     = errors.New("billfold: invalid invoice status")
	ErrIllegalTransition = errors.New("billfold: illegal status transition")
	ErrNoLineItems       = errors.New("billfold: invoice has no line items")

	// Customer errors
	ErrCustomerNotFound = errors.New("billfold: customer not found")
	ErrCustomerInUse    = errors.New("billfold: customer has invoices")

	// Product errors
	ErrProductNotFound = errors.New("billfold: product not found")
	ErrProductInUse    = errors.New("billfold: product is referenced by invoices")

	// Store errors
	ErrStoreNotReady     = errors.New("billfold: store not ready")
	ErrStoreClosed       = errors.New("billfold: store is closed")
	ErrTransactionFailed = errors.New("billfold: transaction failed")
	ErrMigrationFailed   = errors.New("billfold: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("billfold: validation failed for %s: %s", e.Field, e.Message)
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "billfold: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("billfold: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Unwrap exposes the contained errors to errors.Is and errors.As.
func (e MultiError) Unwrap() []error {
	return e.Errors
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsReadOnly returns true if the error rejects an edit to a finalized invoice.
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrInvoiceReadOnly)
}

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidInput)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
