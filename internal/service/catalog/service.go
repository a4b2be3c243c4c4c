// Package catalog manages products and their brands, categories and sizes.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service"
)

// Store is the persistence the catalog needs.
type Store interface {
	repository.CatalogRepository
	repository.StockRepository
}

// Service manages the product catalogue.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new catalog service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.store.ListBrands(ctx)
}

func (s *Service) CreateBrand(ctx context.Context, in models.Brand) (models.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Brand{}, service.Invalid("brand name is required")
	}
	brand := models.Brand{Name: name, State: true}
	if err := s.store.CreateBrand(ctx, &brand); err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, in models.Category) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Category{}, service.Invalid("category name is required")
	}
	category := models.Category{Name: name, State: true}
	if err := s.store.CreateCategory(ctx, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *Service) ListSizes(ctx context.Context) ([]models.Size, error) {
	return s.store.ListSizes(ctx)
}

func (s *Service) GetSize(ctx context.Context, id int64) (models.Size, error) {
	return s.store.GetSize(ctx, id)
}

func (s *Service) CreateSize(ctx context.Context, in models.Size) (models.Size, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Size{}, service.Invalid("size name is required")
	}
	size := models.Size{Name: name, State: true}
	if err := s.store.CreateSize(ctx, &size); err != nil {
		return models.Size{}, err
	}
	return size, nil
}

// ListProducts returns every product with relations and total stock.
func (s *Service) ListProducts(ctx context.Context) ([]models.ProductView, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.Views(ctx, products)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (models.ProductView, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return models.ProductView{}, err
	}
	return s.View(ctx, product)
}

// CreateProduct stores a new product. State defaults to active.
func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (models.ProductView, error) {
	product := models.Product{State: true, SizeIDs: []int64{}}
	if err := s.apply(ctx, &product, in); err != nil {
		return models.ProductView{}, err
	}
	if err := s.store.CreateProduct(ctx, &product); err != nil {
		return models.ProductView{}, err
	}
	s.logger.Info("product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return s.View(ctx, product)
}

// UpdateProduct replaces name, description, prices and state. Brand,
// category and sizes change only when supplied.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (models.ProductView, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return models.ProductView{}, err
	}
	if err := s.apply(ctx, &product, in); err != nil {
		return models.ProductView{}, err
	}
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return models.ProductView{}, err
	}
	return s.View(ctx, product)
}

// DeleteProduct removes a product that holds no stock in any branch.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return err
	}
	rows, err := s.store.ListStockByProduct(ctx, id)
	if err != nil {
		return err
	}
	if total := models.StockLevels(rows)[id]; total > 0 {
		return fmt.Errorf("product %d still has %d units in stock: %w", id, total, service.ErrConflict)
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *Service) apply(ctx context.Context, product *models.Product, in models.ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return service.Invalid("product name is required")
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return service.Invalid("prices must not be negative")
	}

	if in.BrandID != nil {
		if _, err := s.store.GetBrand(ctx, *in.BrandID); err != nil {
			return fmt.Errorf("brand %d: %w", *in.BrandID, err)
		}
		product.BrandID = *in.BrandID
	}
	if in.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *in.CategoryID); err != nil {
			return fmt.Errorf("category %d: %w", *in.CategoryID, err)
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SizeIDs != nil {
		for _, id := range in.SizeIDs {
			if _, err := s.store.GetSize(ctx, id); err != nil {
				return fmt.Errorf("size %d: %w", id, err)
			}
		}
		product.SizeIDs = in.SizeIDs
	}

	product.Name = name
	product.Description = strings.TrimSpace(in.Description)
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	if in.State != nil {
		product.State = *in.State
	}
	return nil
}
