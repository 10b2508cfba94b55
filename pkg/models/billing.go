package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived settlement state of an invoice.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPending PaymentStatus = "Pending"
)

// PaymentMethod records how the customer paid.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Cash"
	MethodUPI      PaymentMethod = "UPI"
	MethodCard     PaymentMethod = "Card"
	MethodTransfer PaymentMethod = "Transfer"
)

// Unit is the sale unit of a product.
type Unit string

const (
	UnitPiece Unit = "pcs"
	UnitKg    Unit = "kg"
	UnitLitre Unit = "ltr"
	UnitBox   Unit = "box"
)

// Units lists every valid product unit.
var Units = []Unit{UnitPiece, UnitKg, UnitLitre, UnitBox}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Customer is a billing account. Immutable after creation; deletion does not
// cascade to invoices, which carry their own name/phone snapshots.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is a catalogue entry. Price is a point-in-time value: invoices
// snapshot it at line-item creation, so later edits never touch old bills.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  Unit            `json:"unit"`
}

// InvoiceItem is one line of an invoice, purchased or returned. Name and
// price are snapshots taken when the line was built.
type InvoiceItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice is a complete billing record for one customer transaction.
// Derived fields (SubTotal, ReturnTotal, GrandTotal, BalanceAmount,
// PaymentStatus) are persisted alongside their sources so old records stay
// readable as written. GrandTotal and BalanceAmount are never negative.
//
// Invoices are immutable once created; the only mutation in scope is
// whole-record deletion.
type Invoice struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []InvoiceItem   `json:"items"`
	ReturnItems   []InvoiceItem   `json:"returnItems"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	ReturnTotal   decimal.Decimal `json:"returnTotal"`
	Tax           decimal.Decimal `json:"tax"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          time.Time       `json:"date"`
}

// Stats is the reduction of a filtered invoice set.
type Stats struct {
	GrossSales   decimal.Decimal `json:"grossSales"`
	TotalReturns decimal.Decimal `json:"totalReturns"`
	NetBilled    decimal.Decimal `json:"netBilled"`
	Paid         decimal.Decimal `json:"paid"`
	Balance      decimal.Decimal `json:"balance"`
}
