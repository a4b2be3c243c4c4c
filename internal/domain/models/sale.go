package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the lifecycle state of a sale or purchase document.
type DocumentStatus string

const (
	DocumentCompleted DocumentStatus = "COMPLETADO"
	DocumentPending   DocumentStatus = "PENDIENTE"
	DocumentCancelled DocumentStatus = "CANCELADO"
)

// PaymentStatus tracks how much of a purchase has been paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDIENTE"
	PaymentPaid    PaymentStatus = "PAGADO"
	PaymentPartial PaymentStatus = "PARCIAL"
	PaymentOverdue PaymentStatus = "VENCIDO"
)

// Valid reports whether s is one of the known document statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentCompleted, DocumentPending, DocumentCancelled:
		return true
	}
	return false
}

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentOverdue:
		return true
	}
	return false
}

// LineItem is a product line of a sale or purchase.
type LineItem struct {
	ID         int64           `bson:"id" json:"id"`
	ProductID  int64           `bson:"product_id" json:"productId"`
	Quantity   int             `bson:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `bson:"unit_price" json:"unitPrice"`
	TotalPrice decimal.Decimal `bson:"total_price" json:"totalPrice"`
}

// LineTotal multiplies a quantity by its unit price.
func LineTotal(qty int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// SumLines adds the totals of all lines.
func SumLines(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice)
	}
	return total
}

// StockLines projects line items onto product quantities.
func StockLines(lines []LineItem) []StockLine {
	out := make([]StockLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, StockLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// Sale is a point-of-sale transaction.
type Sale struct {
	ID             int64           `bson:"_id" json:"id"`
	CustomerID     int64           `bson:"customer_id" json:"customerId"`
	UserID         int64           `bson:"user_id" json:"userId"`
	BranchID       int64           `bson:"branch_id" json:"branchId"`
	SaleDate       time.Time       `bson:"sale_date" json:"saleDate"`
	TotalAmount    decimal.Decimal `bson:"total_amount" json:"totalAmount"`
	DocumentStatus DocumentStatus  `bson:"document_status" json:"documentStatus"`
	Details        []LineItem      `bson:"details" json:"saleDetails"`
}

// SaleView adds the customer contact fields shown on receipts.
type SaleView struct {
	Sale
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// LineInput is a requested sale or purchase line. UnitPrice and TotalPrice
// are optional.
type LineInput struct {
	ProductID  int64            `json:"productId" binding:"required"`
	Quantity   int              `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unitPrice"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
}

// SaleInput is the create payload for sales.
type SaleInput struct {
	BranchID      int64            `json:"branchId" binding:"required"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerPhone string           `json:"customerPhone"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	Details       []LineInput      `json:"saleDetails"`
}

// StockLines projects the requested lines onto product quantities.
func (in SaleInput) StockLines() []StockLine {
	out := make([]StockLine, 0, len(in.Details))
	for _, d := range in.Details {
		out = append(out, StockLine{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return out
}
