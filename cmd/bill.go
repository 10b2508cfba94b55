package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billmate/internal/billing"
	"billmate/internal/logger"
	"billmate/internal/share"
	"billmate/pkg/models"
)

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Create a new bill for a customer",
	Long: `Build an invoice from purchased and returned items, derive totals and
payment status, and append it to the invoice history.

Each --item and --return takes a product-id:quantity pair and snapshots the
product's current name and price. Lines that reference an unknown product
are dropped before totals are computed. Returns are deducted from the bill
but can never turn it negative.

When --date is today (or omitted), the current time of day is attached so
same-day bills keep their creation order; back-dated bills are taken at
midnight.`,
	Example: `  # Two units purchased, one returned, partially paid
  billmate bill --customer 4f6f... --item 9a2b...:2 --return 9a2b...:1 --paid 300

  # Back-dated cash bill with a WhatsApp share link
  billmate bill --customer 4f6f... --item 9a2b...:1 --date 2026-08-20 --share`,
	RunE: runBill,
}

func init() {
	rootCmd.AddCommand(billCmd)

	billCmd.Flags().String("customer", "", "Customer id (required)")
	billCmd.Flags().StringArray("item", nil, "Purchased line as product-id:quantity (repeatable)")
	billCmd.Flags().StringArray("return", nil, "Returned line as product-id:quantity (repeatable)")
	billCmd.Flags().String("paid", "0", "Amount received")
	billCmd.Flags().String("method", string(models.MethodCash), "Payment method: Cash, UPI, Card or Transfer")
	billCmd.Flags().String("date", "", "Bill date as YYYY-MM-DD (default: today)")
	billCmd.Flags().Bool("share", false, "Print a WhatsApp share link for the bill")
	_ = billCmd.MarkFlagRequired("customer")
}

func runBill(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("bill")

	customerID, _ := cmd.Flags().GetString("customer")
	itemSpecs, _ := cmd.Flags().GetStringArray("item")
	returnSpecs, _ := cmd.Flags().GetStringArray("return")
	paidStr, _ := cmd.Flags().GetString("paid")
	method, _ := cmd.Flags().GetString("method")
	dateStr, _ := cmd.Flags().GetString("date")
	shareLink, _ := cmd.Flags().GetBool("share")

	paid, err := decimal.NewFromString(paidStr)
	if err != nil {
		return fmt.Errorf("invalid paid amount %q: %w", paidStr, err)
	}

	items, err := parseLines(itemSpecs)
	if err != nil {
		return err
	}
	returns, err := parseLines(returnSpecs)
	if err != nil {
		return err
	}

	date := time.Now()
	if dateStr != "" {
		date, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
		}
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	invoice, err := svc.CreateInvoice(billing.CreateInvoiceInput{
		CustomerID: customerID,
		Items:      items,
		Returns:    returns,
		PaidAmount: paid,
		Method:     models.PaymentMethod(method),
		Date:       date,
	})
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to create bill")
		return err
	}

	formatter := newFormatter()
	fmt.Println(formatter.Bill(*invoice))

	if shareLink {
		fmt.Printf("\nShare: %s\n", share.WhatsAppLink(invoice.CustomerPhone, formatter.Bill(*invoice)))
	}
	return nil
}

// parseLines converts product-id:quantity pairs into builder lines.
func parseLines(pairs []string) ([]billing.Line, error) {
	lines := make([]billing.Line, 0, len(pairs))
	for _, pair := range pairs {
		idx := strings.LastIndex(pair, ":")
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("invalid line %q, expected product-id:quantity", pair)
		}
		qty, err := strconv.Atoi(pair[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in line %q: %w", pair, err)
		}
		lines = append(lines, billing.Line{ProductID: pair[:idx], Quantity: qty})
	}
	return lines, nil
}
