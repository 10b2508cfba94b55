package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"billmate/internal/billing"
	"billmate/internal/logger"
	"billmate/internal/share"
	"billmate/pkg/models"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Browse the invoice history",
	Long: `List, show, share and delete invoices.

The list can be narrowed by free text (customer name or invoice id) and by
a date window: all, daily (today), weekly (trailing 7 days) or an explicit
--from/--to range inclusive at day boundaries. Results come back most
recent first.`,
	Example: `  # Today's invoices
  billmate invoices list --window daily

  # Everything for a customer name fragment inside an explicit range
  billmate invoices list --search acme --from 2026-08-01 --to 2026-08-28`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices matching a search and window",
	RunE:  runInvoicesList,
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [invoice-id]",
	Short: "Print the full invoice message",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesShow,
}

var invoicesShareCmd = &cobra.Command{
	Use:   "share [invoice-id]",
	Short: "Print a WhatsApp share link for an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesShare,
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [invoice-id]",
	Short: "Delete one invoice record",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesDelete,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd, invoicesShowCmd, invoicesShareCmd, invoicesDeleteCmd)

	invoicesListCmd.Flags().String("search", "", "Match against customer name or invoice id")
	invoicesListCmd.Flags().String("window", "all", "Date window: all, daily or weekly")
	invoicesListCmd.Flags().String("from", "", "Range start as YYYY-MM-DD (overrides --window)")
	invoicesListCmd.Flags().String("to", "", "Range end as YYYY-MM-DD (overrides --window)")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	windowName, _ := cmd.Flags().GetString("window")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	window, err := parseWindow(windowName, fromStr, toStr)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	all, err := svc.ListInvoices()
	if err != nil {
		return err
	}

	filtered := billing.Filter(all, billing.Query{Search: search, Window: window}, time.Now())
	if len(filtered) == 0 {
		fmt.Println("No invoices match.")
		return nil
	}

	for _, inv := range filtered {
		fmt.Printf("%-16s  %s  %-24s  %s%10s  %s%10s paid  %s\n",
			inv.ID,
			inv.Date.Format("2006-01-02 15:04"),
			inv.CustomerName,
			cfg.CurrencySymbol, inv.GrandTotal.StringFixed(2),
			cfg.CurrencySymbol, inv.AmountPaid.StringFixed(2),
			inv.PaymentStatus)
	}

	stats := billing.Aggregate(filtered)
	fmt.Printf("\n%d invoices  net %s%s  received %s%s  balance %s%s\n",
		len(filtered),
		cfg.CurrencySymbol, stats.NetBilled.StringFixed(2),
		cfg.CurrencySymbol, stats.Paid.StringFixed(2),
		cfg.CurrencySymbol, stats.Balance.StringFixed(2))
	return nil
}

func runInvoicesShow(cmd *cobra.Command, args []string) error {
	invoice, err := findInvoice(args[0])
	if err != nil {
		return err
	}
	fmt.Println(newFormatter().Invoice(*invoice))
	return nil
}

func runInvoicesShare(cmd *cobra.Command, args []string) error {
	invoice, err := findInvoice(args[0])
	if err != nil {
		return err
	}
	text := newFormatter().Invoice(*invoice)
	fmt.Println(share.WhatsAppLink(invoice.CustomerPhone, text))
	return nil
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices")

	svc, err := newService()
	if err != nil {
		return err
	}
	if err := svc.DeleteInvoice(args[0]); err != nil {
		log.Error().Err(err).Str("invoice_id", args[0]).Msg("Failed to delete invoice")
		return err
	}

	fmt.Printf("Invoice %s deleted.\n", args[0])
	return nil
}

func findInvoice(id string) (*models.Invoice, error) {
	svc, err := newService()
	if err != nil {
		return nil, err
	}
	all, err := svc.ListInvoices()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("invoice %s: %w", id, billing.ErrInvoiceNotFound)
}

// parseWindow resolves the flag combination into a window. An explicit
// from/to pair wins over the named windows.
func parseWindow(name, fromStr, toStr string) (billing.Window, error) {
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			return billing.Window{}, fmt.Errorf("both --from and --to are required for a range")
		}
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return billing.Window{}, fmt.Errorf("invalid --from %q: %w", fromStr, err)
		}
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return billing.Window{}, fmt.Errorf("invalid --to %q: %w", toStr, err)
		}
		return billing.Window{Kind: billing.WindowRange, From: from, To: to}, nil
	}

	switch billing.WindowKind(name) {
	case billing.WindowAll, billing.WindowDaily, billing.WindowWeekly:
		return billing.Window{Kind: billing.WindowKind(name)}, nil
	default:
		return billing.Window{}, fmt.Errorf("unknown window %q, expected all, daily or weekly", name)
	}
}
