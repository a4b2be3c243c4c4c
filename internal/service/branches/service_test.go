package branches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/repository/memory"
	"github.com/bwc/pos/internal/service"
)

func TestCreateAndUpdate(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	branch, err := svc.Create(ctx, models.BranchInput{Name: " Centro ", Address: "6a Avenida 10-20, Zona 1"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", branch.Name)
	assert.True(t, branch.State)

	inactive := false
	branch, err = svc.Update(ctx, branch.ID, models.BranchInput{Name: "Centro", Address: "Zona 1", Phone: "2222-3333", State: &inactive})
	require.NoError(t, err)
	assert.False(t, branch.State)
	assert.Equal(t, "2222-3333", branch.Phone)

	branch, err = svc.Update(ctx, branch.ID, models.BranchInput{Name: "Centro", Address: "Zona 1"})
	require.NoError(t, err)
	assert.False(t, branch.State, "state is kept when omitted")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestValidation(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.BranchInput{Name: "  ", Address: "Zona 1"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Create(ctx, models.BranchInput{Name: "Norte"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Update(ctx, 7, models.BranchInput{Name: "Norte", Address: "Zona 18"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 7), repository.ErrNotFound)
}

func TestDelete_RefusesBranchWithStock(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	branch, err := svc.Create(ctx, models.BranchInput{Name: "Centro", Address: "Zona 1"})
	require.NoError(t, err)
	_, err = store.AdjustStock(ctx, 1, branch.ID, 4)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, branch.ID), service.ErrConflict)
	_, err = svc.Get(ctx, branch.ID)
	require.NoError(t, err)

	_, err = store.AdjustStock(ctx, 1, branch.ID, -4)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, branch.ID), "an emptied branch can go")

	_, err = svc.Get(ctx, branch.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
