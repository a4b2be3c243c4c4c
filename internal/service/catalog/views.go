package catalog

import (
	"context"

	"github.com/bwc/pos/internal/domain/models"
)

// lookups caches the small classification tables while building views.
type lookups struct {
	brands     map[int64]string
	categories map[int64]string
	sizes      map[int64]string
}

func (s *Service) loadLookups(ctx context.Context) (lookups, error) {
	brands, err := s.store.ListBrands(ctx)
	if err != nil {
		return lookups{}, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return lookups{}, err
	}
	sizes, err := s.store.ListSizes(ctx)
	if err != nil {
		return lookups{}, err
	}

	l := lookups{
		brands:     make(map[int64]string, len(brands)),
		categories: make(map[int64]string, len(categories)),
		sizes:      make(map[int64]string, len(sizes)),
	}
	for _, b := range brands {
		l.brands[b.ID] = b.Name
	}
	for _, c := range categories {
		l.categories[c.ID] = c.Name
	}
	for _, sz := range sizes {
		l.sizes[sz.ID] = sz.Name
	}
	return l, nil
}

func (l lookups) view(p models.Product, stock int) models.ProductView {
	v := models.ProductView{Product: p, Sizes: make([]models.Ref, 0, len(p.SizeIDs)), Stock: stock}
	if name, ok := l.brands[p.BrandID]; ok {
		v.Brand = &models.Ref{ID: p.BrandID, Name: name}
	}
	if name, ok := l.categories[p.CategoryID]; ok {
		v.Category = &models.Ref{ID: p.CategoryID, Name: name}
	}
	for _, id := range p.SizeIDs {
		if name, ok := l.sizes[id]; ok {
			v.Sizes = append(v.Sizes, models.Ref{ID: id, Name: name})
		}
	}
	return v
}

// Views resolves relations and sums stock across branches for products.
func (s *Service) Views(ctx context.Context, products []models.Product) ([]models.ProductView, error) {
	l, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	totals := models.StockLevels(rows)

	out := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, l.view(p, totals[p.ID]))
	}
	return out, nil
}

// View resolves a single product.
func (s *Service) View(ctx context.Context, p models.Product) (models.ProductView, error) {
	l, err := s.loadLookups(ctx)
	if err != nil {
		return models.ProductView{}, err
	}
	rows, err := s.store.ListStockByProduct(ctx, p.ID)
	if err != nil {
		return models.ProductView{}, err
	}
	return l.view(p, models.StockLevels(rows)[p.ID]), nil
}

// ViewsByID resolves the products with the given ids, skipping ids that no
// longer exist.
func (s *Service) ViewsByID(ctx context.Context, ids []int64) (map[int64]models.ProductView, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	selected := make([]models.Product, 0, len(wanted))
	for _, p := range products {
		if wanted[p.ID] {
			selected = append(selected, p)
		}
	}

	views, err := s.Views(ctx, selected)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.ProductView, len(views))
	for _, v := range views {
		out[v.ID] = v
	}
	return out, nil
}
