package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billmate/internal/billing"
	"billmate/internal/config"
	"billmate/internal/logger"
	"billmate/internal/store"
)

var version = "1.0.0"

// cfg is loaded once in main before Execute runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "billmate",
	Short: "Billmate - billing and statements for a small business",
	Long: `Billmate records customers, products and invoices (including
line-item returns and partial payments), keeps them in local JSON
collections, and renders dashboards, invoice lists and per-customer
statements.

All data lives under the data directory (BILLMATE_DATA_DIR, default
./data). Bills and statements can be exported as WhatsApp share links.`,
	Version: version,
}

// Execute runs the root command with the given configuration.
func Execute(c *config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService wires the billing service over the configured file store.
func newService() (*billing.Service, error) {
	st, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return billing.NewService(st)
}

// newFormatter builds the statement formatter from the configured identity.
func newFormatter() *billing.Formatter {
	return billing.NewFormatter(cfg.CompanyName, cfg.CurrencySymbol)
}
