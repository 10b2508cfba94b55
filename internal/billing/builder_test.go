package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmate/internal/store"
	"billmate/pkg/models"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()

	st := store.NewMemoryStore()
	svc, err := NewService(st)
	require.NoError(t, err)

	require.NoError(t, st.SaveCustomers([]models.Customer{
		{ID: "cust-1", Name: "Acme", Phone: "+91 98765-43210"},
	}))
	require.NoError(t, st.SaveProducts([]models.Product{
		{ID: "prod-1", Name: "Gold Chain", Price: decimal.NewFromInt(500), Unit: models.UnitPiece},
		{ID: "prod-2", Name: "Silver Ring", Price: decimal.NewFromInt(120), Unit: models.UnitPiece},
	}))
	return svc, st
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCreateInvoice_ReturnsAndPartialPayment(t *testing.T) {
	svc, st := newTestService(t)

	// Acme buys 2 units @ 500, returns 1 unit @ 500, pays 300.
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		CustomerID: "cust-1",
		Items:      []Line{{ProductID: "prod-1", Quantity: 2}},
		Returns:    []Line{{ProductID: "prod-1", Quantity: 1}},
		PaidAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assertAmount(t, "1000", invoice.SubTotal, "subTotal")
	assertAmount(t, "500", invoice.ReturnTotal, "returnTotal")
	assertAmount(t, "500", invoice.GrandTotal, "grandTotal")
	assertAmount(t, "200", invoice.BalanceAmount, "balanceAmount")
	assertAmount(t, "0", invoice.Tax, "tax")
	assert.Equal(t, models.PaymentPartial, invoice.PaymentStatus)
	assert.Equal(t, "Acme", invoice.CustomerName)
	assert.Equal(t, "+91 98765-43210", invoice.CustomerPhone)

	saved, err := st.LoadInvoices()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, invoice.ID, saved[0].ID)
}

func TestCreateInvoice_PaymentStatus(t *testing.T) {
	cases := []struct {
		name    string
		qty     int
		retQty  int
		paid    int64
		status  models.PaymentStatus
		grand   string
		balance string
	}{
		{"unpaid bill is pending", 2, 0, 0, models.PaymentPending, "1000", "1000"},
		{"partial payment", 2, 0, 600, models.PaymentPartial, "1000", "400"},
		{"exact payment", 2, 0, 1000, models.PaymentPaid, "1000", "0"},
		{"fully returned bill is paid", 1, 1, 0, models.PaymentPaid, "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			input := CreateInvoiceInput{
				CustomerID: "cust-1",
				Items:      []Line{{ProductID: "prod-1", Quantity: tc.qty}},
				PaidAmount: decimal.NewFromInt(tc.paid),
			}
			if tc.retQty > 0 {
				input.Returns = []Line{{ProductID: "prod-1", Quantity: tc.retQty}}
			}

			invoice, err := svc.CreateInvoice(input)
			require.NoError(t, err)
			assert.Equal(t, tc.status, invoice.PaymentStatus)
			assertAmount(t, tc.grand, invoice.GrandTotal, "grandTotal")
			assertAmount(t, tc.balance, invoice.BalanceAmount, "balanceAmount")
		})
	}
}

func TestCreateInvoice_TotalsNeverNegative(t *testing.T) {
	svc, _ := newTestService(t)

	// Returns worth more than the purchase: bill floors at zero instead
	// of inverting.
	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		CustomerID: "cust-1",
		Items:      []Line{{ProductID: "prod-2", Quantity: 1}},
		Returns:    []Line{{ProductID: "prod-1", Quantity: 3}},
		PaidAmount: decimal.Zero,
	})
	require.NoError(t, err)

	assertAmount(t, "120", invoice.SubTotal, "subTotal")
	assertAmount(t, "1500", invoice.ReturnTotal, "returnTotal")
	assertAmount(t, "0", invoice.GrandTotal, "grandTotal")
	assertAmount(t, "0", invoice.BalanceAmount, "balanceAmount")
	assert.Equal(t, models.PaymentPaid, invoice.PaymentStatus)
}

func TestCreateInvoice_DropsUnresolvableLines(t *testing.T) {
	svc, _ := newTestService(t)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		CustomerID: "cust-1",
		Items: []Line{
			{ProductID: "", Quantity: 1},
			{ProductID: "no-such-product", Quantity: 4},
			{ProductID: "prod-2", Quantity: 0},
			{ProductID: "prod-1", Quantity: 1},
		},
		PaidAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "prod-1", invoice.Items[0].ProductID)
	assertAmount(t, "500", invoice.GrandTotal, "grandTotal")
}

func TestCreateInvoice_Validation(t *testing.T) {
	t.Run("missing customer", func(t *testing.T) {
		svc, st := newTestService(t)

		_, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "nobody",
			Items:      []Line{{ProductID: "prod-1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrMissingCustomer)

		saved, loadErr := st.LoadInvoices()
		require.NoError(t, loadErr)
		assert.Empty(t, saved, "failed build must not persist anything")
	})

	t.Run("empty after filtering", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "cust-1",
			Items:      []Line{{ProductID: "no-such-product", Quantity: 2}},
		})
		assert.ErrorIs(t, err, ErrEmptyInvoice)
	})

	t.Run("negative payment", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "cust-1",
			Items:      []Line{{ProductID: "prod-1", Quantity: 1}},
			PaidAmount: decimal.NewFromInt(-10),
		})
		assert.ErrorIs(t, err, ErrNegativePayment)
	})
}

func TestCreateInvoice_DateHandling(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 45, 0, time.Local)

	t.Run("today gets the current clock time", func(t *testing.T) {
		svc, _ := newTestService(t)
		svc.now = func() time.Time { return now }

		invoice, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "cust-1",
			Items:      []Line{{ProductID: "prod-1", Quantity: 1}},
			Date:       time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local),
		})
		require.NoError(t, err)
		assert.True(t, invoice.Date.Equal(now), "want %s, got %s", now, invoice.Date)
	})

	t.Run("back-dated bill lands at midnight", func(t *testing.T) {
		svc, _ := newTestService(t)
		svc.now = func() time.Time { return now }

		invoice, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "cust-1",
			Items:      []Line{{ProductID: "prod-1", Quantity: 1}},
			Date:       time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local),
		})
		require.NoError(t, err)
		want := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
		assert.True(t, invoice.Date.Equal(want), "want %s, got %s", want, invoice.Date)
	})
}

func TestCreateInvoice_UniqueIDsUnderRapidCreation(t *testing.T) {
	svc, _ := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		invoice, err := svc.CreateInvoice(CreateInvoiceInput{
			CustomerID: "cust-1",
			Items:      []Line{{ProductID: "prod-2", Quantity: 1}},
			PaidAmount: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.False(t, seen[invoice.ID], "duplicate invoice id %s", invoice.ID)
		seen[invoice.ID] = true
	}
}

func TestDeleteInvoice(t *testing.T) {
	svc, st := newTestService(t)

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{
		CustomerID: "cust-1",
		Items:      []Line{{ProductID: "prod-1", Quantity: 1}},
		PaidAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(invoice.ID))

	saved, err := st.LoadInvoices()
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.ErrorIs(t, svc.DeleteInvoice(invoice.ID), ErrInvoiceNotFound)
}
