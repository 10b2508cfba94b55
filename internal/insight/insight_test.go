package insight

import (
	"context"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"billmate/pkg/models"
)

func someInvoices() []models.Invoice {
	return []models.Invoice{
		{ID: "INV-1", GrandTotal: decimal.NewFromInt(500), Date: time.Now()},
	}
}

func TestBusinessTip_EmptyHistory(t *testing.T) {
	svc := NewService("", "gpt-3.5-turbo")
	assert.Equal(t, FallbackEmpty, svc.BusinessTip(context.Background(), nil))
}

func TestBusinessTip_NoAPIKey(t *testing.T) {
	svc := NewService("", "gpt-3.5-turbo")
	assert.Equal(t, FallbackBusy, svc.BusinessTip(context.Background(), someInvoices()))
}

func TestBusinessTip_RequestFailureFallsBack(t *testing.T) {
	// Point the client at a dead endpoint; the call must degrade, never
	// error out.
	config := openai.DefaultConfig("test-key")
	config.BaseURL = "http://127.0.0.1:1/v1"
	svc := NewServiceWithClient(openai.NewClientWithConfig(config), "gpt-3.5-turbo")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Equal(t, FallbackBusy, svc.BusinessTip(ctx, someInvoices()))
}
