package store

import (
	"sync"

	"billmate/pkg/models"
)

// MemoryStore keeps the three collections in memory. Used in tests and
// anywhere durability is not needed.
type MemoryStore struct {
	mu        sync.RWMutex
	customers []models.Customer
	products  []models.Product
	invoices  []models.Invoice
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadCustomers() ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...), nil
}

func (s *MemoryStore) SaveCustomers(customers []models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]models.Customer(nil), customers...)
	return nil
}

func (s *MemoryStore) LoadProducts() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...), nil
}

func (s *MemoryStore) SaveProducts(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product(nil), products...)
	return nil
}

func (s *MemoryStore) LoadInvoices() ([]models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Invoice(nil), s.invoices...), nil
}

func (s *MemoryStore) SaveInvoices(invoices []models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append([]models.Invoice(nil), invoices...)
	return nil
}
