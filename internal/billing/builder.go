package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billmate/pkg/models"
)

// Line is one requested invoice line: a product reference and a quantity.
// Resolution against the current catalogue happens at build time.
type Line struct {
	ProductID string
	Quantity  int
}

// CreateInvoiceInput carries everything needed to build one invoice.
type CreateInvoiceInput struct {
	CustomerID string
	Items      []Line
	Returns    []Line
	PaidAmount decimal.Decimal
	Method     models.PaymentMethod
	// Date is the calendar day of the bill. When it is today, the current
	// time of day is attached so intra-day invoices keep creation order;
	// back-dated entries are taken at midnight.
	Date time.Time
}

// CreateInvoice builds an invoice from the input, derives totals and
// payment status, and appends it to the invoice collection. Either a
// complete invoice is persisted or nothing changes.
//
// Lines whose product id does not resolve, or whose quantity is not a
// positive integer, are dropped before totals are computed.
func (s *Service) CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error) {
	const op = "CreateInvoice"

	customers, err := s.store.LoadCustomers()
	if err != nil {
		return nil, wrapErr(op, err, "")
	}

	var customer *models.Customer
	for i := range customers {
		if customers[i].ID == input.CustomerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return nil, wrapErr(op, ErrMissingCustomer, input.CustomerID)
	}

	if input.PaidAmount.IsNegative() {
		return nil, wrapErr(op, ErrNegativePayment, input.PaidAmount.String())
	}

	products, err := s.store.LoadProducts()
	if err != nil {
		return nil, wrapErr(op, err, "")
	}

	items := resolveLines(input.Items, products)
	returnItems := resolveLines(input.Returns, products)
	if len(items) == 0 && len(returnItems) == 0 {
		return nil, wrapErr(op, ErrEmptyInvoice, "")
	}

	subTotal := sumTotals(items)
	returnTotal := sumTotals(returnItems)

	// Returns can fully offset a bill but never invert it.
	grandTotal := decimal.Max(decimal.Zero, subTotal.Sub(returnTotal))
	balance := decimal.Max(decimal.Zero, grandTotal.Sub(input.PaidAmount))

	status := models.PaymentPaid
	if input.PaidAmount.IsZero() && grandTotal.IsPositive() {
		status = models.PaymentPending
	} else if input.PaidAmount.LessThan(grandTotal) {
		status = models.PaymentPartial
	}

	method := input.Method
	if method == "" {
		method = models.MethodCash
	}

	invoice := models.Invoice{
		ID:            s.nextInvoiceID(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Items:         items,
		ReturnItems:   returnItems,
		SubTotal:      subTotal,
		ReturnTotal:   returnTotal,
		Tax:           decimal.Zero,
		GrandTotal:    grandTotal,
		AmountPaid:    input.PaidAmount,
		BalanceAmount: balance,
		PaymentStatus: status,
		PaymentMethod: method,
		Date:          s.invoiceDate(input.Date),
	}

	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return nil, wrapErr(op, err, "")
	}
	if err := s.store.SaveInvoices(append(invoices, invoice)); err != nil {
		return nil, wrapErr(op, err, "")
	}

	s.log.Info().
		Str("invoice_id", invoice.ID).
		Str("customer", invoice.CustomerName).
		Str("grand_total", invoice.GrandTotal.String()).
		Str("status", string(invoice.PaymentStatus)).
		Msg("Invoice created")
	return &invoice, nil
}

// DeleteInvoice removes one invoice record wholesale.
func (s *Service) DeleteInvoice(id string) error {
	const op = "DeleteInvoice"

	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return wrapErr(op, err, "")
	}

	kept := invoices[:0]
	found := false
	for _, inv := range invoices {
		if inv.ID == id {
			found = true
			continue
		}
		kept = append(kept, inv)
	}
	if !found {
		return wrapErr(op, ErrInvoiceNotFound, id)
	}

	if err := s.store.SaveInvoices(kept); err != nil {
		return wrapErr(op, err, "")
	}

	s.log.Info().Str("invoice_id", id).Msg("Invoice deleted")
	return nil
}

// resolveLines snapshots product name and unit price onto each resolvable
// line and drops the rest.
func resolveLines(lines []Line, products []models.Product) []models.InvoiceItem {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok || line.Quantity < 1 {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, models.InvoiceItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Total:     product.Price.Mul(qty),
		})
	}
	return items
}

func sumTotals(items []models.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total)
	}
	return sum
}

// nextInvoiceID generates a time-ordered, collision-resistant invoice id.
func (s *Service) nextInvoiceID() string {
	return fmt.Sprintf("INV-%s", strings.ToUpper(s.node.Generate().Base36()))
}

// invoiceDate attaches the current time of day when the bill is for today,
// and midnight otherwise. Back-dated entries have no known exact time.
func (s *Service) invoiceDate(day time.Time) time.Time {
	now := s.now()
	if day.IsZero() {
		return now
	}
	y, m, d := day.Date()
	ny, nm, nd := now.Date()
	if y == ny && m == nm && d == nd {
		return now
	}
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
