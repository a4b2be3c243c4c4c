// Package purchases records supplier deliveries into branch stock.
package purchases

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

// Store is the persistence purchases need.
type Store interface {
	repository.PurchaseRepository
	repository.PartyRepository
	repository.BranchRepository
	repository.CatalogRepository
	repository.StockRepository
}

// Service records and reverses purchases.
type Service struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new purchase service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, now: time.Now, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]models.PurchaseView, error) {
	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := s.store.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	supplierByID := make(map[int64]models.Supplier, len(suppliers))
	for _, sp := range suppliers {
		supplierByID[sp.ID] = sp
	}
	branchByID := make(map[int64]models.Branch, len(branches))
	for _, b := range branches {
		branchByID[b.ID] = b
	}

	out := make([]models.PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		v := models.PurchaseView{Purchase: p}
		if sp, ok := supplierByID[p.SupplierID]; ok {
			v.Supplier = &sp
		}
		if b, ok := branchByID[p.BranchID]; ok {
			v.Branch = &b
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.PurchaseView, error) {
	p, err := s.store.GetPurchase(ctx, id)
	if err != nil {
		return models.PurchaseView{}, err
	}
	return s.view(ctx, p)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.store.ListSuppliers(ctx)
}

// Create persists the purchase, adds its goods to the branch and records one
// ENTRADA movement per line.
func (s *Service) Create(ctx context.Context, userID int64, in models.PurchaseInput) (models.PurchaseView, error) {
	if len(in.Details) == 0 {
		return models.PurchaseView{}, service.Invalid("a purchase needs at least one detail")
	}

	docStatus := in.DocumentStatus
	if docStatus == "" {
		docStatus = models.DocumentCompleted
	}
	if !docStatus.Valid() {
		return models.PurchaseView{}, service.Invalid("unknown document status %q", docStatus)
	}
	payStatus := in.PaymentStatus
	if payStatus == "" {
		payStatus = models.PaymentPending
	}
	if !payStatus.Valid() {
		return models.PurchaseView{}, service.Invalid("unknown payment status %q", payStatus)
	}

	if _, err := s.store.GetBranch(ctx, in.BranchID); err != nil {
		return models.PurchaseView{}, fmt.Errorf("branch %d: %w", in.BranchID, err)
	}

	lines, err := s.buildLines(ctx, in.Details)
	if err != nil {
		return models.PurchaseView{}, err
	}

	supplier, err := s.resolveSupplier(ctx, in)
	if err != nil {
		return models.PurchaseView{}, err
	}

	date := s.now().UTC()
	if in.PurchaseDate != nil {
		date = in.PurchaseDate.UTC()
	}
	total := models.SumLines(lines)
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}

	purchase := models.Purchase{
		SupplierID:     supplier.ID,
		UserID:         userID,
		BranchID:       in.BranchID,
		PurchaseDate:   date,
		TotalAmount:    total,
		DocumentStatus: docStatus,
		PaymentStatus:  payStatus,
		Details:        lines,
	}
	if err := s.store.CreatePurchase(ctx, &purchase); err != nil {
		return models.PurchaseView{}, fmt.Errorf("persist purchase: %w", err)
	}

	for i, line := range purchase.Details {
		if _, err := s.store.AdjustStock(ctx, line.ProductID, purchase.BranchID, line.Quantity); err != nil {
			s.adjust(ctx, purchase.BranchID, purchase.Details[:i], -1)
			if derr := s.store.DeletePurchase(ctx, purchase.ID); derr != nil {
				s.logger.Error("failed to drop unreceived purchase", zap.Int64("purchase_id", purchase.ID), zap.Error(derr))
			}
			return models.PurchaseView{}, fmt.Errorf("receive product %d: %w", line.ProductID, err)
		}
	}

	description := fmt.Sprintf("Compra #%d", purchase.ID)
	for _, line := range purchase.Details {
		s.record(ctx, purchase.BranchID, userID, line, models.MovementIn, description)
	}

	s.logger.Info("purchase created",
		zap.Int64("purchase_id", purchase.ID),
		zap.Int64("supplier_id", supplier.ID),
		zap.Int64("branch_id", purchase.BranchID),
		zap.String("total", purchase.TotalAmount.StringFixed(2)))

	return s.view(ctx, purchase)
}

// Delete reverses the stock a purchase brought in. It fails with a conflict
// when some of those goods have already left the branch, in which case the
// purchase is put back untouched.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	purchase, err := s.store.GetPurchase(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeletePurchase(ctx, id); err != nil {
		return err
	}

	for i, line := range purchase.Details {
		if _, err := s.store.AdjustStock(ctx, line.ProductID, purchase.BranchID, -line.Quantity); err != nil {
			s.adjust(ctx, purchase.BranchID, purchase.Details[:i], 1)
			if rerr := s.store.RestorePurchase(ctx, purchase); rerr != nil {
				s.logger.Error("failed to restore purchase", zap.Int64("purchase_id", id), zap.Error(rerr))
			}
			if errors.Is(err, repository.ErrInsufficientStock) {
				return fmt.Errorf("purchase %d: product %d was already sold or moved: %w", id, line.ProductID, repository.ErrInsufficientStock)
			}
			return err
		}
	}

	description := fmt.Sprintf("Compra #%d anulada", purchase.ID)
	for _, line := range purchase.Details {
		s.record(ctx, purchase.BranchID, userID, line, models.MovementAdjustDown, description)
	}

	s.logger.Info("purchase reversed", zap.Int64("purchase_id", id), zap.Int64("user_id", userID))
	return nil
}

// adjust applies sign * quantity for each line, undoing the lines a failed
// loop had already applied.
func (s *Service) adjust(ctx context.Context, branchID int64, lines []models.LineItem, sign int) {
	for _, line := range lines {
		if _, err := s.store.AdjustStock(ctx, line.ProductID, branchID, sign*line.Quantity); err != nil {
			s.logger.Error("failed to restore stock",
				zap.Int64("product_id", line.ProductID),
				zap.Int64("branch_id", branchID),
				zap.Int("delta", sign*line.Quantity),
				zap.Error(err))
		}
	}
}

func (s *Service) buildLines(ctx context.Context, details []models.LineInput) ([]models.LineItem, error) {
	lines := make([]models.LineItem, 0, len(details))
	for i, d := range details {
		if d.Quantity <= 0 {
			return nil, service.Invalid("detail %d: quantity must be positive", i+1)
		}
		product, err := s.store.GetProduct(ctx, d.ProductID)
		if err != nil {
			return nil, fmt.Errorf("detail %d: product %d: %w", i+1, d.ProductID, err)
		}

		unit := product.PurchasePrice
		if d.UnitPrice != nil {
			unit = *d.UnitPrice
		}
		if unit.IsNegative() {
			return nil, service.Invalid("detail %d: unit price must not be negative", i+1)
		}
		lineTotal := models.LineTotal(d.Quantity, unit)
		if d.TotalPrice != nil {
			lineTotal = *d.TotalPrice
		}
		lines = append(lines, models.LineItem{ProductID: product.ID, Quantity: d.Quantity, UnitPrice: unit, TotalPrice: lineTotal})
	}
	return lines, nil
}

func (s *Service) resolveSupplier(ctx context.Context, in models.PurchaseInput) (models.Supplier, error) {
	if in.SupplierID != nil {
		supplier, err := s.store.GetSupplier(ctx, *in.SupplierID)
		if err != nil {
			return models.Supplier{}, fmt.Errorf("supplier %d: %w", *in.SupplierID, err)
		}
		return supplier, nil
	}

	name := strings.TrimSpace(in.SupplierName)
	if name == "" {
		return models.Supplier{}, service.Invalid("supplierId or supplierName is required")
	}
	supplier := models.Supplier{
		Name:        name,
		ContactName: strings.TrimSpace(in.SupplierContact),
		Phone:       strings.TrimSpace(in.SupplierPhone),
		Email:       strings.TrimSpace(in.SupplierEmail),
	}
	if err := s.store.CreateSupplier(ctx, &supplier); err != nil {
		return models.Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *Service) record(ctx context.Context, branchID, userID int64, line models.LineItem, mt models.MovementType, description string) {
	movement := models.InventoryMovement{
		ProductID:   line.ProductID,
		BranchID:    branchID,
		Type:        mt,
		Quantity:    line.Quantity,
		Date:        s.now().UTC(),
		UserID:      userID,
		Description: description,
	}
	if err := s.store.CreateMovement(ctx, &movement); err != nil {
		s.logger.Error("failed to record movement", zap.String("description", description), zap.Error(err))
	}
}

func (s *Service) view(ctx context.Context, p models.Purchase) (models.PurchaseView, error) {
	v := models.PurchaseView{Purchase: p}
	supplier, err := s.store.GetSupplier(ctx, p.SupplierID)
	switch {
	case err == nil:
		v.Supplier = &supplier
	case !errors.Is(err, repository.ErrNotFound):
		return models.PurchaseView{}, err
	}
	branch, err := s.store.GetBranch(ctx, p.BranchID)
	switch {
	case err == nil:
		v.Branch = &branch
	case !errors.Is(err, repository.ErrNotFound):
		return models.PurchaseView{}, err
	}
	return v, nil
}
