package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/repository/memory"
	"github.com/bwc/pos/internal/service"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.CreateBranch(context.Background(), &models.Branch{Name: "Centro", Address: "Zona 1", State: true}))

	svc := NewService(store, zap.NewNop())
	svc.cost = bcrypt.MinCost
	return svc, store
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.SignUpRequest{
		Username: " maria ",
		Email:    "maria@bwc.gt",
		Password: "secreto1",
		Roles:    []string{"admin", "almacenista", "admin"},
		Branches: []int64{1},
	})
	require.NoError(t, err)

	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, []models.Role{models.RoleAdmin, models.RoleWarehouse}, user.Roles)
	assert.Equal(t, []int64{1}, user.BranchIDs)
	assert.NotEqual(t, "secreto1", user.PasswordHash)
	assert.True(t, CheckPassword("secreto1", user.PasswordHash))
}

func TestCreate_DefaultsToSeller(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Create(context.Background(), models.SignUpRequest{Username: "pedro", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleSeller}, user.Roles)
	assert.Empty(t, user.BranchIDs)
}

func TestCreate_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.SignUpRequest{Username: "maria", Password: "secreto1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  models.SignUpRequest
		want error
	}{
		{"duplicate username", models.SignUpRequest{Username: "MARIA", Password: "secreto1"}, repository.ErrDuplicate},
		{"unknown branch", models.SignUpRequest{Username: "ana", Password: "secreto1", Branches: []int64{9}}, repository.ErrNotFound},
		{"short username", models.SignUpRequest{Username: "al", Password: "secreto1"}, service.ErrValidation},
		{"short password", models.SignUpRequest{Username: "ana", Password: "123"}, service.ErrValidation},
		{"bad email", models.SignUpRequest{Username: "ana", Password: "secreto1", Email: "nope"}, service.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.SignUpRequest{Username: "maria", Password: "secreto1", Email: "m@bwc.gt"})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	email := "maria@bwc.gt"
	updated, err := svc.Update(ctx, user.ID, models.UserUpdate{Email: &email, Roles: []string{"admin"}})
	require.NoError(t, err)
	assert.Equal(t, "maria", updated.Username)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, []models.Role{models.RoleAdmin}, updated.Roles)
	assert.Equal(t, oldHash, updated.PasswordHash)

	updated, err = svc.Update(ctx, user.ID, models.UserUpdate{Password: "otraclave"})
	require.NoError(t, err)
	assert.True(t, CheckPassword("otraclave", updated.PasswordHash))

	_, err = svc.Update(ctx, 99, models.UserUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.SignUpRequest{Username: "maria", Password: "secreto1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "Maria", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)

	_, err = svc.Authenticate(ctx, "maria", "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody", "secreto1")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.SignUpRequest{Username: "maria", Password: "secreto1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), repository.ErrNotFound)
}
