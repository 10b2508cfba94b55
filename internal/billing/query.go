package billing

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billmate/pkg/models"
)

// WindowKind names the supported date restrictions.
type WindowKind string

const (
	// WindowAll applies no date restriction.
	WindowAll WindowKind = "all"
	// WindowDaily keeps invoices dated on the current calendar day.
	WindowDaily WindowKind = "daily"
	// WindowWeekly keeps invoices dated within the trailing 7 days,
	// inclusive at exactly 7 days.
	WindowWeekly WindowKind = "weekly"
	// WindowRange keeps invoices between From and To, inclusive of both
	// endpoints at day boundaries.
	WindowRange WindowKind = "range"
)

// Window is a named or explicit date range.
type Window struct {
	Kind WindowKind
	From time.Time // used when Kind == WindowRange
	To   time.Time // used when Kind == WindowRange
}

// Contains reports whether a moment falls inside the window, evaluated
// against now.
func (w Window) Contains(t, now time.Time) bool {
	switch w.Kind {
	case WindowDaily:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeekly:
		return !t.Before(now.AddDate(0, 0, -7))
	case WindowRange:
		start := startOfDay(w.From)
		end := endOfDay(w.To)
		return !t.Before(start) && !t.After(end)
	default:
		return true
	}
}

// Query filters the invoice history by free text and a date window.
type Query struct {
	// Search matches case-insensitively against the customer name, or as
	// a plain substring against the invoice id. Empty matches everything.
	Search string
	Window Window
}

// Filter reduces the full invoice collection to the invoices matching the
// query, most recent first. It is pure and recomputed on every call.
func Filter(all []models.Invoice, q Query, now time.Time) []models.Invoice {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]models.Invoice, 0, len(all))
	for _, inv := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(inv.CustomerName), search) &&
			!strings.Contains(inv.ID, q.Search) {
			continue
		}
		if !q.Window.Contains(inv.Date, now) {
			continue
		}
		matched = append(matched, inv)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched
}

// ForCustomer reduces the invoice collection to one customer's invoices
// inside an explicit [from, to] day range, most recent first. This is the
// statement-scoped filter.
func ForCustomer(all []models.Invoice, customerID string, from, to time.Time, now time.Time) []models.Invoice {
	matched := make([]models.Invoice, 0)
	window := Window{Kind: WindowRange, From: from, To: to}
	for _, inv := range all {
		if inv.CustomerID != customerID {
			continue
		}
		if !window.Contains(inv.Date, now) {
			continue
		}
		matched = append(matched, inv)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched
}

// Aggregate reduces a filtered invoice set into summary statistics.
// Records written before a field existed carry decimal zero values and
// aggregate as zero; a zero subTotal falls back to the grand total.
func Aggregate(invoices []models.Invoice) models.Stats {
	stats := models.Stats{
		GrossSales:   decimal.Zero,
		TotalReturns: decimal.Zero,
		NetBilled:    decimal.Zero,
		Paid:         decimal.Zero,
		Balance:      decimal.Zero,
	}
	for _, inv := range invoices {
		gross := inv.SubTotal
		if gross.IsZero() {
			gross = inv.GrandTotal
		}
		stats.GrossSales = stats.GrossSales.Add(gross)
		stats.TotalReturns = stats.TotalReturns.Add(inv.ReturnTotal)
		stats.NetBilled = stats.NetBilled.Add(inv.GrandTotal)
		stats.Paid = stats.Paid.Add(inv.AmountPaid)
		stats.Balance = stats.Balance.Add(inv.BalanceAmount)
	}
	return stats
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
