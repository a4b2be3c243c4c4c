// Package memory is an in-process implementation of repository.Store used by
// tests and local demos.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
)

// Store keeps every collection in maps guarded by one RWMutex.
type Store struct {
	mu sync.RWMutex

	branches   *table[models.Branch]
	brands     *table[models.Brand]
	categories *table[models.Category]
	sizes      *table[models.Size]
	products   *table[models.Product]
	users      *table[models.User]
	customers  *table[models.Customer]
	suppliers  *table[models.Supplier]
	stock      *table[models.Stock]
	movements  *table[models.InventoryMovement]
	sales      *table[models.Sale]
	purchases  *table[models.Purchase]
	reports    map[string]models.DailyReport
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		branches:   newTable[models.Branch]("branch", nil),
		brands:     newTable[models.Brand]("brand", nil),
		categories: newTable[models.Category]("category", nil),
		sizes:      newTable[models.Size]("size", nil),
		products: newTable("product", func(p models.Product) models.Product {
			p.SizeIDs = slices.Clone(p.SizeIDs)
			return p
		}),
		users: newTable("user", func(u models.User) models.User {
			u.Roles = slices.Clone(u.Roles)
			u.BranchIDs = slices.Clone(u.BranchIDs)
			return u
		}),
		customers: newTable[models.Customer]("customer", nil),
		suppliers: newTable[models.Supplier]("supplier", nil),
		stock:     newTable[models.Stock]("stock", nil),
		movements: newTable[models.InventoryMovement]("movement", nil),
		sales: newTable("sale", func(s models.Sale) models.Sale {
			s.Details = slices.Clone(s.Details)
			return s
		}),
		purchases: newTable("purchase", func(p models.Purchase) models.Purchase {
			p.Details = slices.Clone(p.Details)
			return p
		}),
		reports: make(map[string]models.DailyReport),
	}
}

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// Branches

func (s *Store) CreateBranch(_ context.Context, branch *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	branch.ID = s.branches.next()
	s.branches.put(branch.ID, *branch)
	return nil
}

func (s *Store) GetBranch(_ context.Context, id int64) (models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches.get(id)
}

func (s *Store) ListBranches(context.Context) ([]models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches.all(nil), nil
}

func (s *Store) UpdateBranch(_ context.Context, branch models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branches.replace(branch.ID, branch)
}

func (s *Store) DeleteBranch(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branches.remove(id)
}

// Catalog

func (s *Store) CreateBrand(_ context.Context, brand *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	brand.ID = s.brands.next()
	s.brands.put(brand.ID, *brand)
	return nil
}

func (s *Store) GetBrand(_ context.Context, id int64) (models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brands.get(id)
}

func (s *Store) ListBrands(context.Context) ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brands.all(nil), nil
}

func (s *Store) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.categories.next()
	s.categories.put(category.ID, *category)
	return nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.get(id)
}

func (s *Store) ListCategories(context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.all(nil), nil
}

func (s *Store) CreateSize(_ context.Context, size *models.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	size.ID = s.sizes.next()
	s.sizes.put(size.ID, *size)
	return nil
}

func (s *Store) GetSize(_ context.Context, id int64) (models.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sizes.get(id)
}

func (s *Store) ListSizes(context.Context) ([]models.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sizes.all(nil), nil
}

func (s *Store) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.products.next()
	s.products.put(product.ID, *product)
	return nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id)
}

func (s *Store) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.all(nil), nil
}

func (s *Store) UpdateProduct(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.replace(product.ID, product)
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.remove(id)
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTaken(user.Username, 0) {
		return fmt.Errorf("username %q: %w", user.Username, repository.ErrDuplicate)
	}
	user.ID = s.users.next()
	s.users.put(user.ID, *user)
	return nil
}

func (s *Store) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := s.users.all(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
	if len(matches) == 0 {
		return models.User{}, fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
	}
	return matches[0], nil
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.all(nil), nil
}

func (s *Store) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTaken(user.Username, user.ID) {
		return fmt.Errorf("username %q: %w", user.Username, repository.ErrDuplicate)
	}
	return s.users.replace(user.ID, user)
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.remove(id)
}

func (s *Store) usernameTaken(username string, except int64) bool {
	for id, u := range s.users.rows {
		if id != except && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

// Parties

func (s *Store) CreateCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer.ID = s.customers.next()
	s.customers.put(customer.ID, *customer)
	return nil
}

func (s *Store) GetCustomer(_ context.Context, id int64) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.get(id)
}

func (s *Store) ListCustomers(context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.all(nil), nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier *models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	supplier.ID = s.suppliers.next()
	s.suppliers.put(supplier.ID, *supplier)
	return nil
}

func (s *Store) GetSupplier(_ context.Context, id int64) (models.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.get(id)
}

func (s *Store) ListSuppliers(context.Context) ([]models.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.all(nil), nil
}

// Stock

func (s *Store) GetStock(_ context.Context, productID, branchID int64) (models.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.findStock(productID, branchID)
	if !ok {
		return models.Stock{}, fmt.Errorf("stock for product %d in branch %d: %w", productID, branchID, repository.ErrNotFound)
	}
	return row, nil
}

func (s *Store) ListStock(context.Context) ([]models.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock.all(nil), nil
}

func (s *Store) ListStockByBranch(_ context.Context, branchID int64) ([]models.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock.all(func(row models.Stock) bool { return row.BranchID == branchID }), nil
}

func (s *Store) ListStockByProduct(_ context.Context, productID int64) ([]models.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock.all(func(row models.Stock) bool { return row.ProductID == productID }), nil
}

func (s *Store) AdjustStock(_ context.Context, productID, branchID int64, delta int) (models.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.findStock(productID, branchID)
	if !ok {
		if delta < 0 {
			return models.Stock{}, fmt.Errorf("product %d in branch %d: %w", productID, branchID, repository.ErrInsufficientStock)
		}
		row = models.Stock{ID: s.stock.next(), ProductID: productID, BranchID: branchID}
	}

	if row.Quantity+delta < 0 {
		return models.Stock{}, fmt.Errorf("product %d in branch %d has %d: %w", productID, branchID, row.Quantity, repository.ErrInsufficientStock)
	}
	row.Quantity += delta
	s.stock.put(row.ID, row)
	return row, nil
}

func (s *Store) findStock(productID, branchID int64) (models.Stock, bool) {
	for _, row := range s.stock.rows {
		if row.ProductID == productID && row.BranchID == branchID {
			return row, true
		}
	}
	return models.Stock{}, false
}

func (s *Store) CreateMovement(_ context.Context, movement *models.InventoryMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	movement.ID = s.movements.next()
	s.movements.put(movement.ID, *movement)
	return nil
}

func (s *Store) DeleteMovement(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movements.remove(id)
}

func (s *Store) ListMovements(_ context.Context, limit int) ([]models.InventoryMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movements := s.movements.all(nil)
	sort.SliceStable(movements, func(i, j int) bool {
		if movements[i].Date.Equal(movements[j].Date) {
			return movements[i].ID > movements[j].ID
		}
		return movements[i].Date.After(movements[j].Date)
	})
	if limit > 0 && len(movements) > limit {
		movements = movements[:limit]
	}
	return movements, nil
}

// Sales

func (s *Store) CreateSale(_ context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = s.sales.next()
	numberLines(sale.Details)
	s.sales.put(sale.ID, *sale)
	return nil
}

func (s *Store) GetSale(_ context.Context, id int64) (models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sales.get(id)
}

func (s *Store) ListSales(context.Context) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sales.all(nil), nil
}

func (s *Store) ListSalesBetween(_ context.Context, from, to time.Time) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sales.all(func(sale models.Sale) bool { return inRange(sale.SaleDate, from, to) }), nil
}

func (s *Store) DeleteSale(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sales.remove(id)
}

// Purchases

func (s *Store) CreatePurchase(_ context.Context, purchase *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	purchase.ID = s.purchases.next()
	numberLines(purchase.Details)
	s.purchases.put(purchase.ID, *purchase)
	return nil
}

func (s *Store) GetPurchase(_ context.Context, id int64) (models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchases.get(id)
}

func (s *Store) ListPurchases(context.Context) ([]models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchases.all(nil), nil
}

func (s *Store) ListPurchasesBetween(_ context.Context, from, to time.Time) ([]models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchases.all(func(p models.Purchase) bool { return inRange(p.PurchaseDate, from, to) }), nil
}

func (s *Store) DeletePurchase(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purchases.remove(id)
}

func (s *Store) RestorePurchase(_ context.Context, purchase models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.purchases.get(purchase.ID); err == nil {
		return fmt.Errorf("purchase %d: %w", purchase.ID, repository.ErrDuplicate)
	}
	s.purchases.put(purchase.ID, purchase)
	return nil
}

// Reports

func (s *Store) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[reportKey(report.Date)] = report
	return nil
}

func (s *Store) GetDailyReport(_ context.Context, date time.Time) (models.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[reportKey(date)]
	if !ok {
		return models.DailyReport{}, fmt.Errorf("daily report %s: %w", reportKey(date), repository.ErrNotFound)
	}
	return report, nil
}

func reportKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func numberLines(lines []models.LineItem) {
	for i := range lines {
		lines[i].ID = int64(i + 1)
	}
}
