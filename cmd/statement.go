package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"billmate/internal/billing"
	"billmate/internal/logger"
	"billmate/internal/share"
)

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Render a period statement for one customer",
	Long: `Aggregate a customer's invoices over a date range into a settlement
summary: gross sales, returns deducted, net billed, amount received and
balance due.

Derived figures are recomputed from the stored line items before
aggregation, so a statement never repeats a stale stored total. The range
defaults to the trailing 7 days and is inclusive at day boundaries.`,
	Example: `  # Weekly statement (default range)
  billmate statement --customer 4f6f...

  # Explicit period with a WhatsApp share link
  billmate statement --customer 4f6f... --from 2026-08-01 --to 2026-08-28 --share`,
	RunE: runStatement,
}

func init() {
	rootCmd.AddCommand(statementCmd)

	statementCmd.Flags().String("customer", "", "Customer id (required)")
	statementCmd.Flags().String("from", "", "Range start as YYYY-MM-DD (default: 7 days ago)")
	statementCmd.Flags().String("to", "", "Range end as YYYY-MM-DD (default: today)")
	statementCmd.Flags().Bool("share", false, "Print a WhatsApp share link for the statement")
	_ = statementCmd.MarkFlagRequired("customer")
}

func runStatement(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("statement")

	customerID, _ := cmd.Flags().GetString("customer")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	shareLink, _ := cmd.Flags().GetBool("share")

	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now
	var err error
	if fromStr != "" {
		from, err = time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --from %q: %w", fromStr, err)
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --to %q: %w", toStr, err)
		}
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	customers, err := svc.ListCustomers()
	if err != nil {
		return err
	}
	idx := -1
	for i := range customers {
		if customers[i].ID == customerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("customer %s: %w", customerID, billing.ErrCustomerNotFound)
	}

	all, err := svc.ListInvoices()
	if err != nil {
		return err
	}

	formatter := newFormatter()
	filtered := billing.ForCustomer(all, customerID, from, to, now)
	stats := billing.Aggregate(formatter.NormalizeAll(filtered))

	log.Debug().
		Str("customer_id", customerID).
		Int("invoices", len(filtered)).
		Msg("Statement aggregated")

	text := formatter.Statement(customers[idx], from, to, stats)
	fmt.Println(text)

	if shareLink {
		fmt.Printf("\nShare: %s\n", share.WhatsAppLink(customers[idx].Phone, text))
	}
	return nil
}
