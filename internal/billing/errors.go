package billing

import (
	"errors"
	"fmt"
)

// Common billing errors
var (
	// ErrMissingCustomer is returned when an invoice is built without a
	// resolvable customer. User-correctable; nothing is persisted.
	ErrMissingCustomer = errors.New("no customer selected")

	// ErrEmptyInvoice is returned when neither purchased nor returned
	// items survive line resolution. Nothing is persisted.
	ErrEmptyInvoice = errors.New("invoice has no valid line items")

	// ErrCustomerNotFound is returned when a customer id does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrMissingName is returned when a new record has no name.
	ErrMissingName = errors.New("name is required")

	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvoiceNotFound is returned when an invoice id does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidUnit is returned when a product unit is not one of the
	// known units.
	ErrInvalidUnit = errors.New("invalid product unit")

	// ErrInvalidPrice is returned when a product price is negative.
	ErrInvalidPrice = errors.New("product price must not be negative")

	// ErrNegativePayment is returned when a paid amount is negative.
	ErrNegativePayment = errors.New("paid amount must not be negative")
)

// BillingError wraps errors with the operation that failed.
type BillingError struct {
	// Op is the operation that failed (e.g., "CreateInvoice").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *BillingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("billing: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("billing: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *BillingError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *BillingError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapErr wraps an error as a BillingError unless it already is one.
func wrapErr(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var billErr *BillingError
	if errors.As(err, &billErr) {
		return err
	}
	return &BillingError{Op: op, Err: err, Details: details}
}
