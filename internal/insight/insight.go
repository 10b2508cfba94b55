// Package insight asks a language model for a short business tip based on
// recent invoice activity. The call is best effort: any failure, a missing
// API key or an empty history degrades to fixed fallback text. It must
// never block or fail a billing operation.
package insight

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"billmate/internal/logger"
	"billmate/pkg/models"
)

// Fallback texts, mirroring the behavior the dashboard always had.
const (
	FallbackEmpty = "Create some invoices to see AI insights."
	FallbackBusy  = "AI Assistant is currently busy."
)

// recentCount is how many of the latest invoices feed the prompt.
const recentCount = 5

// Summary is the slice of an invoice the model sees.
type Summary struct {
	Date    time.Time       `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Returns decimal.Decimal `json:"returns"`
}

// Service produces business tips from invoice history.
type Service struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewService creates an insight service. An empty API key is allowed; the
// service then always answers with fallback text.
func NewService(apiKey, model string) *Service {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return NewServiceWithClient(client, model)
}

// NewServiceWithClient creates an insight service with an explicit client.
// A nil client is allowed.
func NewServiceWithClient(client *openai.Client, model string) *Service {
	return &Service{
		client: client,
		model:  model,
		log:    logger.WithComponent("insight"),
	}
}

// BusinessTip returns one short tip for the given invoice history. It
// never returns an error: every failure path resolves to fallback text.
func (s *Service) BusinessTip(ctx context.Context, invoices []models.Invoice) string {
	if len(invoices) == 0 {
		return FallbackEmpty
	}
	if s.client == nil {
		s.log.Debug().Msg("No API key configured, using fallback insight")
		return FallbackBusy
	}

	recent := invoices
	if len(recent) > recentCount {
		recent = recent[len(recent)-recentCount:]
	}
	summaries := make([]Summary, len(recent))
	for i, inv := range recent {
		summaries[i] = Summary{Date: inv.Date, Total: inv.GrandTotal, Returns: inv.ReturnTotal}
	}

	payload, err := json.Marshal(summaries)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode invoice summaries")
		return FallbackBusy
	}

	prompt := "Analyze these recent invoice summaries: " + string(payload) +
		". Give one short business strategy tip in 20 words regarding returns management or sales."

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Insight request failed, using fallback")
		return FallbackBusy
	}
	if len(resp.Choices) == 0 {
		return FallbackBusy
	}

	tip := strings.TrimSpace(resp.Choices[0].Message.Content)
	if tip == "" {
		return FallbackBusy
	}

	s.log.Debug().
		Int("summaries", len(summaries)).
		Msg("Insight generated")
	return tip
}
