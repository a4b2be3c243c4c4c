package branches

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service"
)

// Store is the persistence branches need. Stock is read to keep branches
// that still hold goods.
type Store interface {
	repository.BranchRepository
	repository.StockRepository
}

// Service manages branches.
type Service struct {
	repo   Store
	logger *zap.Logger
}

// NewService wires a new branch service.
func NewService(repo Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]models.Branch, error) {
	return s.repo.ListBranches(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.Branch, error) {
	return s.repo.GetBranch(ctx, id)
}

// Create stores a new branch. State defaults to active.
func (s *Service) Create(ctx context.Context, in models.BranchInput) (models.Branch, error) {
	branch := models.Branch{State: true}
	if err := apply(&branch, in); err != nil {
		return models.Branch{}, err
	}
	if err := s.repo.CreateBranch(ctx, &branch); err != nil {
		return models.Branch{}, err
	}
	s.logger.Info("branch created", zap.Int64("branch_id", branch.ID), zap.String("name", branch.Name))
	return branch, nil
}

// Update replaces the branch fields. State is kept when omitted.
func (s *Service) Update(ctx context.Context, id int64, in models.BranchInput) (models.Branch, error) {
	branch, err := s.repo.GetBranch(ctx, id)
	if err != nil {
		return models.Branch{}, err
	}
	if err := apply(&branch, in); err != nil {
		return models.Branch{}, err
	}
	if err := s.repo.UpdateBranch(ctx, branch); err != nil {
		return models.Branch{}, err
	}
	return branch, nil
}

// Delete removes a branch. A branch with units in stock is refused.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetBranch(ctx, id); err != nil {
		return err
	}
	rows, err := s.repo.ListStockByBranch(ctx, id)
	if err != nil {
		return err
	}
	var units int
	for _, row := range rows {
		units += row.Quantity
	}
	if units > 0 {
		return fmt.Errorf("branch %d still holds %d units in stock: %w", id, units, service.ErrConflict)
	}

	if err := s.repo.DeleteBranch(ctx, id); err != nil {
		return err
	}
	s.logger.Info("branch deleted", zap.Int64("branch_id", id))
	return nil
}

func apply(branch *models.Branch, in models.BranchInput) error {
	name, address := strings.TrimSpace(in.Name), strings.TrimSpace(in.Address)
	if name == "" {
		return service.Invalid("branch name is required")
	}
	if address == "" {
		return service.Invalid("branch address is required")
	}
	branch.Name = name
	branch.Address = address
	branch.Phone = strings.TrimSpace(in.Phone)
	if in.State != nil {
		branch.State = *in.State
	}
	return nil
}
