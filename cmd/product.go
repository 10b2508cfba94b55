package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billmate/internal/logger"
	"billmate/pkg/models"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalogue",
	Long: `Add, list and remove catalogue entries.

A product's price is a point-in-time value: invoices snapshot it when a
line item is created, so later price changes never touch past bills.`,
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new product",
	Example: `  # Add a product priced per kilogram
  billmate product add --name "Gold Chain 22k" --price 4520.50 --unit kg

  # Valid units: pcs, kg, ltr, box
  billmate product add --name "Gift Box" --price 150 --unit box`,
	RunE: runProductAdd,
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE:  runProductList,
}

var productRemoveCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove a product from the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductRemove,
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productAddCmd, productListCmd, productRemoveCmd)

	productAddCmd.Flags().String("name", "", "Product name (required)")
	productAddCmd.Flags().String("price", "0", "Unit price, e.g. 4520.50")
	productAddCmd.Flags().String("unit", "pcs", "Sale unit: pcs, kg, ltr or box")
	_ = productAddCmd.MarkFlagRequired("name")
}

func runProductAdd(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("product")

	name, _ := cmd.Flags().GetString("name")
	priceStr, _ := cmd.Flags().GetString("price")
	unit, _ := cmd.Flags().GetString("unit")

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", priceStr, err)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	product, err := svc.AddProduct(name, price, models.Unit(unit))
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to add product")
		return err
	}

	fmt.Printf("Product added: %s @ %s%s per %s (%s)\n",
		product.Name, cfg.CurrencySymbol, product.Price.StringFixed(2), product.Unit, product.ID)
	return nil
}

func runProductList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	products, err := svc.ListProducts()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("No products in the catalogue.")
		return nil
	}

	for _, p := range products {
		fmt.Printf("%s  %-28s  %s%s / %s\n",
			p.ID, p.Name, cfg.CurrencySymbol, p.Price.StringFixed(2), p.Unit)
	}
	return nil
}

func runProductRemove(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("product")

	svc, err := newService()
	if err != nil {
		return err
	}

	if err := svc.DeleteProduct(args[0]); err != nil {
		log.Error().Err(err).Str("product_id", args[0]).Msg("Failed to remove product")
		return err
	}

	fmt.Printf("Product %s removed. Invoices keep their snapshotted prices.\n", args[0])
	return nil
}
