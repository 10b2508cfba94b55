package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitValid(t *testing.T) {
	for _, unit := range Units {
		assert.True(t, unit.Valid(), "%s should be valid", unit)
	}
	assert.False(t, Unit("dozen").Valid())
	assert.False(t, Unit("").Valid())
}

func TestInvoiceJSONFieldNames(t *testing.T) {
	// Field names must match the original data files so existing
	// collections load unchanged.
	inv := Invoice{
		ID:            "INV-1",
		CustomerName:  "Acme",
		GrandTotal:    decimal.NewFromInt(500),
		PaymentStatus: PaymentPartial,
	}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"id", "customerId", "customerName", "customerPhone", "items",
		"returnItems", "subTotal", "returnTotal", "tax", "grandTotal",
		"amountPaid", "balanceAmount", "paymentStatus", "paymentMethod", "date",
	} {
		assert.Contains(t, raw, key)
	}
}
