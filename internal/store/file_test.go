package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmate/pkg/models"
)

func TestFileStore_RoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("customers", func(t *testing.T) {
		customers := []models.Customer{
			{ID: "c1", Name: "Acme", Phone: "98765", Address: "Market Road", CreatedAt: time.Now().Truncate(time.Second)},
			{ID: "c2", Name: "Bharat Metals"},
		}
		require.NoError(t, st.SaveCustomers(customers))

		got, err := st.LoadCustomers()
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c1", got[0].ID)
		assert.Equal(t, "Acme", got[0].Name)
		assert.Equal(t, "c2", got[1].ID)
	})

	t.Run("products keep decimal prices", func(t *testing.T) {
		products := []models.Product{
			{ID: "p1", Name: "Gold Chain", Price: decimal.RequireFromString("4520.50"), Unit: models.UnitKg},
		}
		require.NoError(t, st.SaveProducts(products))

		got, err := st.LoadProducts()
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, decimal.RequireFromString("4520.50").Equal(got[0].Price))
		assert.Equal(t, models.UnitKg, got[0].Unit)
	})

	t.Run("invoices with line items", func(t *testing.T) {
		invoices := []models.Invoice{
			{
				ID:           "INV-1",
				CustomerName: "Acme",
				Items: []models.InvoiceItem{
					{ProductID: "p1", Name: "Gold Chain", Quantity: 2, Price: decimal.NewFromInt(500), Total: decimal.NewFromInt(1000)},
				},
				SubTotal:      decimal.NewFromInt(1000),
				GrandTotal:    decimal.NewFromInt(1000),
				PaymentStatus: models.PaymentPending,
				Date:          time.Now().Truncate(time.Second),
			},
		}
		require.NoError(t, st.SaveInvoices(invoices))

		got, err := st.LoadInvoices()
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Items, 1)
		assert.True(t, decimal.NewFromInt(1000).Equal(got[0].SubTotal))
		assert.Equal(t, models.PaymentPending, got[0].PaymentStatus)
	})

	t.Run("empty sequence round-trips", func(t *testing.T) {
		require.NoError(t, st.SaveInvoices([]models.Invoice{}))
		got, err := st.LoadInvoices()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFileStore_MissingFileIsEmptyCollection(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	customers, err := st.LoadCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)

	invoices, err := st.LoadInvoices()
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestFileStore_CorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, invoicesFile), []byte("{not json"), 0o644))

	_, err = st.LoadInvoices()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFileStore_LegacyInvoiceRecord(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)

	// A record written by an older version: no returnItems, returnTotal,
	// amountPaid or balanceAmount fields.
	legacy := `[{"id":"INV-OLD","customerId":"c1","customerName":"Acme",` +
		`"items":[],"subTotal":0,"tax":0,"grandTotal":400,` +
		`"paymentStatus":"Pending","paymentMethod":"Cash",` +
		`"date":"2024-01-15T10:00:00Z"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, invoicesFile), []byte(legacy), 0o644))

	got, err := st.LoadInvoices()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].ReturnTotal.IsZero())
	assert.True(t, got[0].AmountPaid.IsZero())
	assert.True(t, decimal.NewFromInt(400).Equal(got[0].GrandTotal))
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	st := NewMemoryStore()

	require.NoError(t, st.SaveCustomers([]models.Customer{{ID: "c1", Name: "Acme"}}))

	got, err := st.LoadCustomers()
	require.NoError(t, err)
	got[0].Name = "Mutated"

	again, err := st.LoadCustomers()
	require.NoError(t, err)
	assert.Equal(t, "Acme", again[0].Name, "loaded slice must be a copy")
}
