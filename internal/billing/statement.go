package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"billmate/internal/logger"
	"billmate/pkg/models"
)

const divider = "--------------------------"

// Formatter renders the outbound bill and statement texts. Purely a
// projection: all figures come in already computed, formatted to two
// decimal places.
type Formatter struct {
	CompanyName string
	Currency    string

	log zerolog.Logger
}

// NewFormatter creates a formatter for the given company identity.
func NewFormatter(companyName, currency string) *Formatter {
	return &Formatter{
		CompanyName: companyName,
		Currency:    currency,
		log:         logger.WithComponent("statement"),
	}
}

// Bill renders the short confirmation message for a freshly created bill.
// The returns line is omitted when nothing was returned.
func (f *Formatter) Bill(inv models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*BILL GENERATED: %s*\n", inv.ID)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Customer: %s\n", inv.CustomerName)
	fmt.Fprintf(&b, "Items Total: %s%s\n", f.Currency, inv.SubTotal.StringFixed(2))
	if inv.ReturnTotal.IsPositive() {
		fmt.Fprintf(&b, "Returns Ded: -%s%s\n", f.Currency, inv.ReturnTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "*Grand Total: %s%s*\n", f.Currency, inv.GrandTotal.StringFixed(2))
	fmt.Fprintf(&b, "*Paid: %s%s*\n", f.Currency, inv.AmountPaid.StringFixed(2))
	fmt.Fprintf(&b, "*Bal: %s%s*\n", f.Currency, inv.BalanceAmount.StringFixed(2))
	b.WriteString(divider + "\n")
	b.WriteString("Thank you!")
	return b.String()
}

// Invoice renders the full invoice message with one line per purchased
// item.
func (f *Formatter) Invoice(inv models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*INVOICE %s*\n", inv.ID)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Date: %s\n", inv.Date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Customer: %s\n", inv.CustomerName)
	b.WriteString("Items:\n")
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "- %s (x%d): %s%s\n", item.Name, item.Quantity, f.Currency, item.Total.StringFixed(2))
	}
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "*GRAND TOTAL: %s%s*\n", f.Currency, inv.GrandTotal.StringFixed(2))
	fmt.Fprintf(&b, "*PAID: %s%s*\n", f.Currency, inv.AmountPaid.StringFixed(2))
	fmt.Fprintf(&b, "*BALANCE: %s%s*\n", f.Currency, inv.BalanceAmount.StringFixed(2))
	b.WriteString("\n_Thank you!_")
	return b.String()
}

// Statement renders the period summary for one customer.
func (f *Formatter) Statement(customer models.Customer, from, to time.Time, stats models.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s STATEMENT SUMMARY*\n", strings.ToUpper(f.CompanyName))
	fmt.Fprintf(&b, "Client: %s\n", customer.Name)
	fmt.Fprintf(&b, "Period: %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Total Sales: %s%s\n", f.Currency, stats.GrossSales.StringFixed(2))
	fmt.Fprintf(&b, "Total Returns: -%s%s\n", f.Currency, stats.TotalReturns.StringFixed(2))
	fmt.Fprintf(&b, "*Net Billed: %s%s*\n", f.Currency, stats.NetBilled.StringFixed(2))
	fmt.Fprintf(&b, "*Total Received: %s%s*\n", f.Currency, stats.Paid.StringFixed(2))
	fmt.Fprintf(&b, "*Balance Due: %s%s*\n", f.Currency, stats.Balance.StringFixed(2))
	b.WriteString(divider + "\n")
	b.WriteString("Thank you!")
	return b.String()
}

// Normalize recomputes the derived fields of an invoice from its stored
// line items. Exported statements aggregate normalized records so stale
// derived fields cannot leak into what the customer sees; drift between
// stored and recomputed values is logged, not repaired in place.
//
// Legacy records without line items keep their stored totals.
func (f *Formatter) Normalize(inv models.Invoice) models.Invoice {
	if len(inv.Items) == 0 && len(inv.ReturnItems) == 0 {
		return inv
	}

	out := inv
	out.SubTotal = sumTotals(inv.Items)
	out.ReturnTotal = sumTotals(inv.ReturnItems)
	out.GrandTotal = decimal.Max(decimal.Zero, out.SubTotal.Sub(out.ReturnTotal))
	out.BalanceAmount = decimal.Max(decimal.Zero, out.GrandTotal.Sub(out.AmountPaid))

	out.PaymentStatus = models.PaymentPaid
	if out.AmountPaid.IsZero() && out.GrandTotal.IsPositive() {
		out.PaymentStatus = models.PaymentPending
	} else if out.AmountPaid.LessThan(out.GrandTotal) {
		out.PaymentStatus = models.PaymentPartial
	}

	if !out.GrandTotal.Equal(inv.GrandTotal) || !out.BalanceAmount.Equal(inv.BalanceAmount) ||
		out.PaymentStatus != inv.PaymentStatus {
		f.log.Warn().
			Str("invoice_id", inv.ID).
			Str("stored_grand_total", inv.GrandTotal.String()).
			Str("recomputed_grand_total", out.GrandTotal.String()).
			Msg("Stored derived fields drift from line items")
	}
	return out
}

// NormalizeAll applies Normalize to a whole invoice set.
func (f *Formatter) NormalizeAll(invoices []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = f.Normalize(inv)
	}
	return out
}
