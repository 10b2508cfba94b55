package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"billmate/internal/logger"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customer records",
	Long: `Add, list and remove customer records.

Customers are immutable once created. Removing a customer does not touch
existing invoices: they keep their own snapshot of the customer's name and
phone number.`,
}

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new customer",
	Example: `  # Add a customer with full contact details
  billmate customer add --name "Acme Traders" --phone "+91 98765 43210" --address "12 Market Road"`,
	RunE: runCustomerAdd,
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	RunE:  runCustomerList,
}

var customerRemoveCmd = &cobra.Command{
	Use:   "remove [customer-id]",
	Short: "Remove a customer record",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerRemove,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerAddCmd, customerListCmd, customerRemoveCmd)

	customerAddCmd.Flags().String("name", "", "Customer name (required)")
	customerAddCmd.Flags().String("phone", "", "Customer phone number")
	customerAddCmd.Flags().String("address", "", "Customer billing address")
	_ = customerAddCmd.MarkFlagRequired("name")
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("customer")

	name, _ := cmd.Flags().GetString("name")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")

	svc, err := newService()
	if err != nil {
		return err
	}

	customer, err := svc.AddCustomer(name, phone, address)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to add customer")
		return err
	}

	fmt.Printf("Customer added: %s (%s)\n", customer.Name, customer.ID)
	return nil
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	customers, err := svc.ListCustomers()
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		fmt.Println("No customers recorded.")
		return nil
	}

	for _, c := range customers {
		fmt.Printf("%s  %-24s  %-16s  %s\n", c.ID, c.Name, c.Phone, c.Address)
	}
	return nil
}

func runCustomerRemove(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("customer")

	svc, err := newService()
	if err != nil {
		return err
	}

	if err := svc.DeleteCustomer(args[0]); err != nil {
		log.Error().Err(err).Str("customer_id", args[0]).Msg("Failed to remove customer")
		return err
	}

	fmt.Printf("Customer %s removed. Existing invoices are unaffected.\n", args[0])
	return nil
}
