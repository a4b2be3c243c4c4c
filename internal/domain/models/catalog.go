package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, matching what the POS screens expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Brand is a footwear manufacturer label.
type Brand struct {
	ID    int64  `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name" binding:"required"`
	State bool   `bson:"state" json:"state"`
}

// Category groups products by usage (sport, casual, formal...).
type Category struct {
	ID    int64  `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name" binding:"required"`
	State bool   `bson:"state" json:"state"`
}

// Size is a shoe size label such as "38".
type Size struct {
	ID    int64  `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name" binding:"required"`
	State bool   `bson:"state" json:"state"`
}

// Product is the persisted catalogue entry.
type Product struct {
	ID            int64           `bson:"_id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Description   string          `bson:"description" json:"description"`
	BrandID       int64           `bson:"brand_id" json:"brandId"`
	CategoryID    int64           `bson:"category_id" json:"categoryId"`
	SizeIDs       []int64         `bson:"size_ids" json:"sizeIds"`
	PurchasePrice decimal.Decimal `bson:"purchase_price" json:"purchasePrice"`
	SalePrice     decimal.Decimal `bson:"sale_price" json:"salePrice"`
	State         bool            `bson:"state" json:"state"`
}

// Ref is the compact {id, name} form embedded in views.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductView is the product as served by the API, with its relations resolved
// and its stock summed across every branch.
type ProductView struct {
	Product
	Brand    *Ref  `json:"brand,omitempty"`
	Category *Ref  `json:"category,omitempty"`
	Sizes    []Ref `json:"sizes"`
	Stock    int   `json:"stock"`
}

// ProductInput is the create/update payload for products. Pointer fields are
// optional on update.
type ProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	BrandID       *int64          `json:"brandId"`
	CategoryID    *int64          `json:"categoryId"`
	SizeIDs       []int64         `json:"sizeIds"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	State         *bool           `json:"state"`
}
