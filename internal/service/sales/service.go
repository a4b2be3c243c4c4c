// Package sales records point-of-sale transactions against branch stock.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service"
)

// Store is the persistence the sales flow needs.
type Store interface {
	repository.SaleRepository
	repository.PartyRepository
	repository.BranchRepository
	repository.CatalogRepository
	repository.StockRepository
}

// InsufficientStockError lists every product a sale asked too much of.
type InsufficientStockError struct {
	Shortages []models.Shortage
	names     map[int64]string
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := e.names[s.ProductID]
		if name == "" {
			name = fmt.Sprintf("#%d", s.ProductID)
		}
		parts = append(parts, fmt.Sprintf("%s (available %d, required %d)", name, s.Available, s.Required))
	}
	return "insufficient stock for " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error {
	return repository.ErrInsufficientStock
}

// Service records and voids sales.
type Service struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new sales service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, now: time.Now, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]models.SaleView, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SaleView, 0, len(sales))
	for _, sale := range sales {
		out = append(out, view(sale, customers[sale.CustomerID]))
	}
	return out, nil
}

// ListCustomers returns every customer, the general one included.
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.SaleView, error) {
	sale, err := s.store.GetSale(ctx, id)
	if err != nil {
		return models.SaleView{}, err
	}
	customer, err := s.store.GetCustomer(ctx, sale.CustomerID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return models.SaleView{}, err
	}
	return view(sale, customer), nil
}

// Create validates the request against branch stock, takes the goods out of
// the branch and persists the sale with one SALIDA movement per line.
func (s *Service) Create(ctx context.Context, userID int64, in models.SaleInput) (models.SaleView, error) {
	if len(in.Details) == 0 {
		return models.SaleView{}, service.Invalid("a sale needs at least one detail")
	}
	if _, err := s.store.GetBranch(ctx, in.BranchID); err != nil {
		return models.SaleView{}, fmt.Errorf("branch %d: %w", in.BranchID, err)
	}

	lines, names, err := s.buildLines(ctx, in.Details)
	if err != nil {
		return models.SaleView{}, err
	}

	rows, err := s.store.ListStockByBranch(ctx, in.BranchID)
	if err != nil {
		return models.SaleView{}, err
	}
	if shortages := models.CheckAvailability(models.StockLevels(rows), models.StockLines(lines)); len(shortages) > 0 {
		return models.SaleView{}, &InsufficientStockError{Shortages: shortages, names: names}
	}

	if err := s.take(ctx, in.BranchID, lines, names); err != nil {
		return models.SaleView{}, err
	}

	customer, err := s.resolveCustomer(ctx, in)
	if err != nil {
		s.put(ctx, in.BranchID, lines)
		return models.SaleView{}, err
	}

	total := models.SumLines(lines)
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}
	sale := models.Sale{
		CustomerID:     customer.ID,
		UserID:         userID,
		BranchID:       in.BranchID,
		SaleDate:       s.now().UTC(),
		TotalAmount:    total,
		DocumentStatus: models.DocumentCompleted,
		Details:        lines,
	}
	if err := s.store.CreateSale(ctx, &sale); err != nil {
		s.put(ctx, in.BranchID, lines)
		return models.SaleView{}, fmt.Errorf("persist sale: %w", err)
	}

	s.record(ctx, sale, models.MovementOut, fmt.Sprintf("Venta #%d", sale.ID))

	s.logger.Info("sale created",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("branch_id", sale.BranchID),
		zap.Int64("user_id", userID),
		zap.String("total", sale.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(sale.Details)))

	return view(sale, customer), nil
}

// Delete voids a sale, putting its goods back into the branch. Only the
// caller that actually removes the sale returns the goods.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	sale, err := s.store.GetSale(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSale(ctx, id); err != nil {
		return err
	}

	s.put(ctx, sale.BranchID, sale.Details)
	sale.UserID = userID
	s.record(ctx, sale, models.MovementAdjustUp, fmt.Sprintf("Venta #%d anulada", sale.ID))

	s.logger.Info("sale voided", zap.Int64("sale_id", id), zap.Int64("user_id", userID))
	return nil
}

func (s *Service) buildLines(ctx context.Context, details []models.LineInput) ([]models.LineItem, map[int64]string, error) {
	lines := make([]models.LineItem, 0, len(details))
	names := make(map[int64]string, len(details))
	for i, d := range details {
		if d.Quantity <= 0 {
			return nil, nil, service.Invalid("detail %d: quantity must be positive", i+1)
		}
		product, err := s.store.GetProduct(ctx, d.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("detail %d: product %d: %w", i+1, d.ProductID, err)
		}
		names[product.ID] = product.Name

		unit := product.SalePrice
		if d.UnitPrice != nil {
			unit = *d.UnitPrice
		}
		if unit.IsNegative() {
			return nil, nil, service.Invalid("detail %d: unit price must not be negative", i+1)
		}
		lineTotal := models.LineTotal(d.Quantity, unit)
		if d.TotalPrice != nil {
			lineTotal = *d.TotalPrice
		}
		lines = append(lines, models.LineItem{ProductID: product.ID, Quantity: d.Quantity, UnitPrice: unit, TotalPrice: lineTotal})
	}
	return lines, names, nil
}

func (s *Service) resolveCustomer(ctx context.Context, in models.SaleInput) (models.Customer, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		customer, err := s.store.GetCustomer(ctx, models.GeneralCustomerID)
		if err != nil {
			return models.Customer{}, fmt.Errorf("general customer: %w", err)
		}
		return customer, nil
	}

	first, last, _ := strings.Cut(name, " ")
	customer := models.Customer{
		FirstName: first,
		LastName:  strings.TrimSpace(last),
		Email:     strings.TrimSpace(in.CustomerEmail),
		Phone:     strings.TrimSpace(in.CustomerPhone),
	}
	if err := s.store.CreateCustomer(ctx, &customer); err != nil {
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// take decrements stock line by line. When a line loses a race with another
// sale, the lines already taken are put back.
func (s *Service) take(ctx context.Context, branchID int64, lines []models.LineItem, names map[int64]string) error {
	for i, line := range lines {
		if _, err := s.store.AdjustStock(ctx, line.ProductID, branchID, -line.Quantity); err != nil {
			s.put(ctx, branchID, lines[:i])
			if !errors.Is(err, repository.ErrInsufficientStock) {
				return err
			}
			current, _ := s.store.GetStock(ctx, line.ProductID, branchID)
			return &InsufficientStockError{
				Shortages: []models.Shortage{{ProductID: line.ProductID, Available: current.Quantity, Required: line.Quantity}},
				names:     names,
			}
		}
	}
	return nil
}

func (s *Service) put(ctx context.Context, branchID int64, lines []models.LineItem) {
	for _, line := range lines {
		if _, err := s.store.AdjustStock(ctx, line.ProductID, branchID, line.Quantity); err != nil {
			s.logger.Error("failed to return stock",
				zap.Int64("product_id", line.ProductID),
				zap.Int64("branch_id", branchID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}

func (s *Service) record(ctx context.Context, sale models.Sale, mt models.MovementType, description string) {
	now := s.now().UTC()
	for _, line := range sale.Details {
		movement := models.InventoryMovement{
			ProductID:   line.ProductID,
			BranchID:    sale.BranchID,
			Type:        mt,
			Quantity:    line.Quantity,
			Date:        now,
			UserID:      sale.UserID,
			Description: description,
		}
		if err := s.store.CreateMovement(ctx, &movement); err != nil {
			s.logger.Error("failed to record movement", zap.Int64("sale_id", sale.ID), zap.Error(err))
		}
	}
}

func (s *Service) customerIndex(ctx context.Context) (map[int64]models.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Customer, len(customers))
	for _, c := range customers {
		out[c.ID] = c
	}
	return out, nil
}

func view(sale models.Sale, customer models.Customer) models.SaleView {
	return models.SaleView{
		Sale:          sale,
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	}
}
