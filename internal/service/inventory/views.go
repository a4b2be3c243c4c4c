package inventory

import (
	"context"

	"github.com/bwc/pos/internal/domain/models"
)

func (s *Service) branchIndex(ctx context.Context) (map[int64]models.Branch, error) {
	branches, err := s.store.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Branch, len(branches))
	for _, b := range branches {
		out[b.ID] = b
	}
	return out, nil
}

func (s *Service) stockViews(ctx context.Context, rows []models.Stock) ([]models.StockView, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := s.catalog.ViewsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	branches, err := s.branchIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.StockView, 0, len(rows))
	for _, row := range rows {
		v := models.StockView{Stock: row}
		if p, ok := products[row.ProductID]; ok {
			v.Product = &p
		}
		if b, ok := branches[row.BranchID]; ok {
			v.Branch = &b
		}
		out = append(out, v)
	}
	return out, nil
}

// MovementViews resolves the product and branch of each movement.
func (s *Service) MovementViews(ctx context.Context, movements []models.InventoryMovement) ([]models.MovementView, error) {
	ids := make([]int64, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.ProductID)
	}
	products, err := s.catalog.ViewsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	branches, err := s.branchIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.MovementView, 0, len(movements))
	for _, m := range movements {
		v := models.MovementView{InventoryMovement: m, MovementTypeID: m.Type.ID()}
		if p, ok := products[m.ProductID]; ok {
			v.Product = &p
		}
		if b, ok := branches[m.BranchID]; ok {
			v.Branch = &b
		}
		out = append(out, v)
	}
	return out, nil
}
