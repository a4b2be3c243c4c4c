package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a supplier delivery into a branch.
type Purchase struct {
	ID             int64           `bson:"_id" json:"id"`
	SupplierID     int64           `bson:"supplier_id" json:"supplierId"`
	UserID         int64           `bson:"user_id" json:"userId"`
	BranchID       int64           `bson:"branch_id" json:"branchId"`
	PurchaseDate   time.Time       `bson:"purchase_date" json:"purchaseDate"`
	TotalAmount    decimal.Decimal `bson:"total_amount" json:"totalAmount"`
	DocumentStatus DocumentStatus  `bson:"document_status" json:"documentStatus"`
	PaymentStatus  PaymentStatus   `bson:"payment_status" json:"paymentStatus"`
	Details        []LineItem      `bson:"details" json:"purchaseDetails"`
}

// PurchaseView embeds the supplier and branch.
type PurchaseView struct {
	Purchase
	Supplier *Supplier `json:"supplier,omitempty"`
	Branch   *Branch   `json:"branch,omitempty"`
}

// PurchaseInput is the create payload for purchases. When SupplierID is
// absent a supplier is created from the Supplier* fields.
type PurchaseInput struct {
	SupplierID      *int64           `json:"supplierId"`
	SupplierName    string           `json:"supplierName"`
	SupplierContact string           `json:"supplierContact"`
	SupplierPhone   string           `json:"supplierPhone"`
	SupplierEmail   string           `json:"supplierEmail"`
	BranchID        int64            `json:"branchId" binding:"required"`
	PurchaseDate    *time.Time       `json:"purchaseDate"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	DocumentStatus  DocumentStatus   `json:"documentStatus"`
	PaymentStatus   PaymentStatus    `json:"paymentStatus"`
	Details         []LineInput      `json:"purchaseDetails"`
}
