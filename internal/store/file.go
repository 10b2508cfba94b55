package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"billmate/internal/logger"
	"billmate/pkg/models"
)

// Collection file names, matching the original data set one-to-one.
const (
	customersFile = "customers.json"
	productsFile  = "products.json"
	invoicesFile  = "invoices.json"
)

// FileStore persists each collection as a JSON file under a data directory.
// Writes go through a temp file and rename, so a crashed save leaves the
// previous contents intact.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates the data directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir %s: %v", ErrUnavailable, dir, err)
	}
	return &FileStore{
		dir: dir,
		log: logger.WithComponent("file-store"),
	}, nil
}

func (s *FileStore) LoadCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.load(customersFile, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *FileStore) SaveCustomers(customers []models.Customer) error {
	return s.save(customersFile, customers, len(customers))
}

func (s *FileStore) LoadProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.load(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *FileStore) SaveProducts(products []models.Product) error {
	return s.save(productsFile, products, len(products))
}

func (s *FileStore) LoadInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.load(invoicesFile, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *FileStore) SaveInvoices(invoices []models.Invoice) error {
	return s.save(invoicesFile, invoices, len(invoices))
}

// load reads a collection file into out. A missing file is an empty
// collection, not an error.
func (s *FileStore) load(name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.log.Error().Err(err).Str("file", path).Msg("Failed to read collection")
		return fmt.Errorf("%w: reading %s: %v", ErrUnavailable, name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Error().Err(err).Str("file", path).Msg("Failed to decode collection")
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, name, err)
	}
	return nil
}

// save overwrites a collection file wholesale.
func (s *FileStore) save(name string, records any, count int) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrUnavailable, name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("file", path).Msg("Failed to write collection")
		return fmt.Errorf("%w: writing %s: %v", ErrUnavailable, name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		s.log.Error().Err(err).Str("file", path).Msg("Failed to replace collection")
		return fmt.Errorf("%w: replacing %s: %v", ErrUnavailable, name, err)
	}

	s.log.Debug().
		Str("file", name).
		Int("records", count).
		Msg("Collection saved")
	return nil
}
