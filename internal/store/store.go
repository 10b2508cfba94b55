package store

import (
	"errors"

	"billmate/pkg/models"
)

// ErrUnavailable is returned when the persistence layer cannot be read or
// written. Callers must surface it; a failed save means nothing was stored.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the persistence adapter for the three collections. Each
// collection is read and written wholesale, in record order. There is no
// transactionality across collections and a single active writer is
// assumed.
type Store interface {
	LoadCustomers() ([]models.Customer, error)
	SaveCustomers(customers []models.Customer) error

	LoadProducts() ([]models.Product, error)
	SaveProducts(products []models.Product) error

	LoadInvoices() ([]models.Invoice, error)
	SaveInvoices(invoices []models.Invoice) error
}
