package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/repository/memory"
	"github.com/bwc/pos/internal/service"
)

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, models.Brand{Name: "Nike"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, models.Category{Name: "Deportivo"})
	require.NoError(t, err)
	for _, name := range []string{"38", "39", "40"} {
		_, err = svc.CreateSize(ctx, models.Size{Name: name})
		require.NoError(t, err)
	}
	return svc, store
}

func TestCreateProduct_ResolvesRelations(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, models.ProductInput{
		Name:          "Air Max 90",
		BrandID:       ptr(int64(1)),
		CategoryID:    ptr(int64(1)),
		SizeIDs:       []int64{1, 3},
		PurchasePrice: decimal.RequireFromString("450"),
		SalePrice:     decimal.RequireFromString("899.90"),
	})
	require.NoError(t, err)

	assert.True(t, view.State)
	require.NotNil(t, view.Brand)
	assert.Equal(t, "Nike", view.Brand.Name)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Deportivo", view.Category.Name)
	assert.Equal(t, []models.Ref{{ID: 1, Name: "38"}, {ID: 3, Name: "40"}}, view.Sizes)
	assert.Equal(t, 0, view.Stock)

	_, err = store.AdjustStock(ctx, view.ID, 1, 4)
	require.NoError(t, err)
	_, err = store.AdjustStock(ctx, view.ID, 2, 3)
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].Stock)
}

func TestUpdateProduct_KeepsRelationsWhenOmitted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, models.ProductInput{
		Name:       "Air Max 90",
		BrandID:    ptr(int64(1)),
		CategoryID: ptr(int64(1)),
		SizeIDs:    []int64{2},
		SalePrice:  decimal.NewFromInt(900),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, view.ID, models.ProductInput{
		Name:      "Air Max 95",
		SalePrice: decimal.NewFromInt(950),
		State:     ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Air Max 95", updated.Name)
	assert.False(t, updated.State)
	assert.True(t, updated.SalePrice.Equal(decimal.NewFromInt(950)))
	assert.Equal(t, int64(1), updated.BrandID)
	assert.Equal(t, []int64{2}, updated.SizeIDs)
}

func TestProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, models.ProductInput{Name: " "})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "X", SalePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "X", BrandID: ptr(int64(42))})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "X", SizeIDs: []int64{99}})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateBrand(ctx, models.Brand{})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeleteProduct_RefusesWithStock(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, models.ProductInput{Name: "Chuck Taylor"})
	require.NoError(t, err)
	_, err = store.AdjustStock(ctx, view.ID, 1, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, view.ID), service.ErrConflict)

	_, err = store.AdjustStock(ctx, view.ID, 1, -2)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, view.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, view.ID), repository.ErrNotFound)
}

func TestViewsByID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateProduct(ctx, models.ProductInput{Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: "B"})
	require.NoError(t, err)

	views, err := svc.ViewsByID(ctx, []int64{a.ID, 77})
	require.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "A", views[a.ID].Name)
}
