// Package inventory exposes branch stock and the movement ledger.
package inventory

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
	"github.com/bwc/pos/internal/service/catalog"
)

// Store is the persistence inventory needs.
type Store interface {
	repository.StockRepository
	repository.BranchRepository
	repository.CatalogRepository
}

// Service reads stock and records manual movements and transfers.
type Service struct {
	store   Store
	catalog *catalog.Service
	now     func() time.Time
	logger  *zap.Logger
}

// NewService wires a new inventory service.
func NewService(store Store, catalogSvc *catalog.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, catalog: catalogSvc, now: time.Now, logger: logger}
}

// Stock returns the row for a product in a branch. A product the branch has
// never held comes back with quantity zero.
func (s *Service) Stock(ctx context.Context, productID, branchID int64) (models.StockView, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return models.StockView{}, err
	}
	if _, err := s.store.GetBranch(ctx, branchID); err != nil {
		return models.StockView{}, err
	}

	row, err := s.store.GetStock(ctx, productID, branchID)
	if errors.Is(err, repository.ErrNotFound) {
		row = models.Stock{ProductID: productID, BranchID: branchID}
	} else if err != nil {
		return models.StockView{}, err
	}

	views, err := s.stockViews(ctx, []models.Stock{row})
	if err != nil {
		return models.StockView{}, err
	}
	return views[0], nil
}

// StockByBranch lists every stock row of a branch.
func (s *Service) StockByBranch(ctx context.Context, branchID int64) ([]models.StockView, error) {
	if _, err := s.store.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}
	rows, err := s.store.ListStockByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return s.stockViews(ctx, rows)
}

// StockByProduct lists the stock of a product across branches.
func (s *Service) StockByProduct(ctx context.Context, productID int64) ([]models.StockView, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.store.ListStockByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.stockViews(ctx, rows)
}

// Movements lists the ledger newest first. limit <= 0 returns everything.
func (s *Service) Movements(ctx context.Context, limit int) ([]models.MovementView, error) {
	movements, err := s.store.ListMovements(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.MovementViews(ctx, movements)
}

// RecordMovement applies a manual movement to stock and writes it to the
// ledger on behalf of userID.
func (s *Service) RecordMovement(ctx context.Context, userID int64, in models.MovementInput) (models.MovementView, error) {
	mt, err := resolveType(in)
	if err != nil {
		return models.MovementView{}, err
	}
	if in.Quantity <= 0 {
		return models.MovementView{}, service.Invalid("quantity must be positive")
	}
	if _, err := s.store.GetProduct(ctx, in.ProductID); err != nil {
		return models.MovementView{}, err
	}
	if _, err := s.store.GetBranch(ctx, in.BranchID); err != nil {
		return models.MovementView{}, err
	}

	delta := mt.Sign() * in.Quantity
	if _, err := s.store.AdjustStock(ctx, in.ProductID, in.BranchID, delta); err != nil {
		return models.MovementView{}, err
	}

	movement := models.InventoryMovement{
		ProductID:   in.ProductID,
		BranchID:    in.BranchID,
		Type:        mt,
		Quantity:    in.Quantity,
		Date:        s.now().UTC(),
		UserID:      userID,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.store.CreateMovement(ctx, &movement); err != nil {
		s.restore(ctx, in.ProductID, in.BranchID, -delta)
		return models.MovementView{}, err
	}

	s.logger.Info("inventory movement recorded",
		zap.Int64("movement_id", movement.ID),
		zap.String("type", string(mt)),
		zap.Int64("product_id", in.ProductID),
		zap.Int64("branch_id", in.BranchID),
		zap.Int("quantity", in.Quantity))

	views, err := s.MovementViews(ctx, []models.InventoryMovement{movement})
	if err != nil {
		return models.MovementView{}, err
	}
	return views[0], nil
}

// Transfer moves stock from one branch to another and records the outgoing
// and incoming legs.
func (s *Service) Transfer(ctx context.Context, userID int64, in models.TransferInput) ([]models.MovementView, error) {
	if in.Quantity <= 0 {
		return nil, service.Invalid("quantity must be positive")
	}
	if in.FromBranchID == in.ToBranchID {
		return nil, service.Invalid("source and destination branch must differ")
	}
	if _, err := s.store.GetProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	from, err := s.store.GetBranch(ctx, in.FromBranchID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetBranch(ctx, in.ToBranchID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.AdjustStock(ctx, in.ProductID, from.ID, -in.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.store.AdjustStock(ctx, in.ProductID, to.ID, in.Quantity); err != nil {
		s.restore(ctx, in.ProductID, from.ID, in.Quantity)
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = fmt.Sprintf("Transferencia %s -> %s", from.Name, to.Name)
	}
	now := s.now().UTC()
	legs := []models.InventoryMovement{
		{ProductID: in.ProductID, BranchID: from.ID, Type: models.MovementTransferOut, Quantity: in.Quantity, Date: now, UserID: userID, Description: description},
		{ProductID: in.ProductID, BranchID: to.ID, Type: models.MovementTransferIn, Quantity: in.Quantity, Date: now, UserID: userID, Description: description},
	}
	for i := range legs {
		if err := s.store.CreateMovement(ctx, &legs[i]); err != nil {
			for _, done := range legs[:i] {
				if derr := s.store.DeleteMovement(ctx, done.ID); derr != nil {
					s.logger.Error("failed to drop transfer movement", zap.Int64("movement_id", done.ID), zap.Error(derr))
				}
			}
			s.restore(ctx, in.ProductID, to.ID, -in.Quantity)
			s.restore(ctx, in.ProductID, from.ID, in.Quantity)
			return nil, fmt.Errorf("record transfer movement: %w", err)
		}
	}

	s.logger.Info("stock transferred",
		zap.Int64("product_id", in.ProductID),
		zap.Int64("from_branch_id", from.ID),
		zap.Int64("to_branch_id", to.ID),
		zap.Int("quantity", in.Quantity))

	return s.MovementViews(ctx, legs)
}

// restore undoes a stock adjustment after a later step failed.
func (s *Service) restore(ctx context.Context, productID, branchID int64, delta int) {
	if _, err := s.store.AdjustStock(ctx, productID, branchID, delta); err != nil {
		s.logger.Error("failed to restore stock",
			zap.Int64("product_id", productID),
			zap.Int64("branch_id", branchID),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}

func resolveType(in models.MovementInput) (models.MovementType, error) {
	if in.MovementTypeID != 0 {
		mt, ok := models.MovementTypeByID(in.MovementTypeID)
		if !ok {
			return "", service.Invalid("unknown movement type id %d", in.MovementTypeID)
		}
		return mt, nil
	}
	mt, ok := models.ParseMovementType(in.Type)
	if !ok {
		return "", service.Invalid("unknown movement type %q", in.Type)
	}
	return mt, nil
}
