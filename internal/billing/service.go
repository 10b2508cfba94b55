// Package billing implements the billing and statement engine: customer and
// product records, invoice construction with line-item returns and partial
// payments, filtering and aggregation over the invoice history, and the
// statement texts shared with customers.
//
// The engine is stateless: every operation loads the collections it needs
// from the store, works on them in memory, and writes whole collections
// back. The store is the only holder of mutable state.
package billing

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"billmate/internal/logger"
	"billmate/internal/store"
	"billmate/pkg/models"
)

// Service owns all mutating operations on the three collections.
type Service struct {
	store store.Store
	node  *snowflake.Node
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a billing service over the given store.
func NewService(st store.Store) (*Service, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, wrapErr("NewService", err, "creating invoice id node")
	}
	return &Service{
		store: st,
		node:  node,
		now:   time.Now,
		log:   logger.WithComponent("billing"),
	}, nil
}

// AddCustomer records a new customer and returns it.
func (s *Service) AddCustomer(name, phone, address string) (*models.Customer, error) {
	const op = "AddCustomer"

	if strings.TrimSpace(name) == "" {
		return nil, wrapErr(op, ErrMissingName, "customer")
	}

	customers, err := s.store.LoadCustomers()
	if err != nil {
		return nil, wrapErr(op, err, "")
	}

	customer := models.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		CreatedAt: s.now(),
	}

	if err := s.store.SaveCustomers(append(customers, customer)); err != nil {
		return nil, wrapErr(op, err, "")
	}

	s.log.Info().
		Str("customer_id", customer.ID).
		Str("name", customer.Name).
		Msg("Customer added")
	return &customer, nil
}

// ListCustomers returns all customers in stored order.
func (s *Service) ListCustomers() ([]models.Customer, error) {
	customers, err := s.store.LoadCustomers()
	if err != nil {
		return nil, wrapErr("ListCustomers", err, "")
	}
	return customers, nil
}

// DeleteCustomer removes a customer record. Existing invoices keep their
// denormalized name/phone snapshots; no cascade.
func (s *Service) DeleteCustomer(id string) error {
	const op = "DeleteCustomer"

	customers, err := s.store.LoadCustomers()
	if err != nil {
		return wrapErr(op, err, "")
	}

	kept := customers[:0]
	found := false
	for _, c := range customers {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return wrapErr(op, ErrCustomerNotFound, id)
	}

	if err := s.store.SaveCustomers(kept); err != nil {
		return wrapErr(op, err, "")
	}

	s.log.Info().Str("customer_id", id).Msg("Customer deleted")
	return nil
}

// AddProduct records a new catalogue entry and returns it.
func (s *Service) AddProduct(name string, price decimal.Decimal, unit models.Unit) (*models.Product, error) {
	const op = "AddProduct"

	if strings.TrimSpace(name) == "" {
		return nil, wrapErr(op, ErrMissingName, "product")
	}
	if price.IsNegative() {
		return nil, wrapErr(op, ErrInvalidPrice, price.String())
	}
	if !unit.Valid() {
		return nil, wrapErr(op, ErrInvalidUnit, string(unit))
	}

	products, err := s.store.LoadProducts()
	if err != nil {
		return nil, wrapErr(op, err, "")
	}

	product := models.Product{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Price: price,
		Unit:  unit,
	}

	if err := s.store.SaveProducts(append(products, product)); err != nil {
		return nil, wrapErr(op, err, "")
	}

	s.log.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Str("price", product.Price.String()).
		Msg("Product added")
	return &product, nil
}

// ListProducts returns all products in stored order.
func (s *Service) ListProducts() ([]models.Product, error) {
	products, err := s.store.LoadProducts()
	if err != nil {
		return nil, wrapErr("ListProducts", err, "")
	}
	return products, nil
}

// DeleteProduct removes a catalogue entry. Invoices keep their snapshotted
// name and price.
func (s *Service) DeleteProduct(id string) error {
	const op = "DeleteProduct"

	products, err := s.store.LoadProducts()
	if err != nil {
		return wrapErr(op, err, "")
	}

	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return wrapErr(op, ErrProductNotFound, id)
	}

	if err := s.store.SaveProducts(kept); err != nil {
		return wrapErr(op, err, "")
	}

	s.log.Info().Str("product_id", id).Msg("Product deleted")
	return nil
}

// ListInvoices returns all invoices in stored order.
func (s *Service) ListInvoices() ([]models.Invoice, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return nil, wrapErr("ListInvoices", err, "")
	}
	return invoices, nil
}
