// Package repository declares the persistence contracts shared by the Mongo
// and in-memory stores.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwc/pos/internal/domain/models"
)

var (
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInsufficientStock is returned when a decrement would take a stock
	// row below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// BranchRepository persists branches.
type BranchRepository interface {
	CreateBranch(ctx context.Context, branch *models.Branch) error
	GetBranch(ctx context.Context, id int64) (models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	UpdateBranch(ctx context.Context, branch models.Branch) error
	DeleteBranch(ctx context.Context, id int64) error
}

// CatalogRepository persists products and their classification entities.
type CatalogRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrand(ctx context.Context, id int64) (models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateSize(ctx context.Context, size *models.Size) error
	GetSize(ctx context.Context, id int64) (models.Size, error)
	ListSizes(ctx context.Context) ([]models.Size, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// UserRepository persists users. Usernames are unique.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// PartyRepository persists customers and suppliers.
type PartyRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)

	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplier(ctx context.Context, id int64) (models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

// StockRepository persists stock levels and the movement ledger.
type StockRepository interface {
	GetStock(ctx context.Context, productID, branchID int64) (models.Stock, error)
	ListStock(ctx context.Context) ([]models.Stock, error)
	ListStockByBranch(ctx context.Context, branchID int64) ([]models.Stock, error)
	ListStockByProduct(ctx context.Context, productID int64) ([]models.Stock, error)
	// AdjustStock adds delta to the (product, branch) row, creating it when
	// delta is positive. A result below zero fails with ErrInsufficientStock
	// and leaves the row untouched.
	AdjustStock(ctx context.Context, productID, branchID int64, delta int) (models.Stock, error)

	CreateMovement(ctx context.Context, movement *models.InventoryMovement) error
	DeleteMovement(ctx context.Context, id int64) error
	// ListMovements returns movements newest first. limit <= 0 returns all.
	ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error)
}

// SaleRepository persists sales.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	GetSale(ctx context.Context, id int64) (models.Sale, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
	// ListSalesBetween returns sales with from <= date < to.
	ListSalesBetween(ctx context.Context, from, to time.Time) ([]models.Sale, error)
	DeleteSale(ctx context.Context, id int64) error
}

// PurchaseRepository persists purchases.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	GetPurchase(ctx context.Context, id int64) (models.Purchase, error)
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	// ListPurchasesBetween returns purchases with from <= date < to.
	ListPurchasesBetween(ctx context.Context, from, to time.Time) ([]models.Purchase, error)
	DeletePurchase(ctx context.Context, id int64) error
	// RestorePurchase puts a deleted purchase back under its original id.
	RestorePurchase(ctx context.Context, purchase models.Purchase) error
}

// ReportRepository persists daily reports, one per date.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	GetDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	BranchRepository
	CatalogRepository
	UserRepository
	PartyRepository
	StockRepository
	SaleRepository
	PurchaseRepository
	ReportRepository
	Close(ctx context.Context) error
}
