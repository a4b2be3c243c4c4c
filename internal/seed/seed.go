// Package seed fills an empty store with the reference data the shop starts
// from.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service/users"
)

const (
	firstSize = 20
	lastSize  = 45
)

var (
	defaultBranches = []models.Branch{
		{Name: "Sucursal Principal", Address: "Avenida Principal 123, Ciudad", Phone: "2222-1111", State: true},
		{Name: "Sucursal Secundaria", Address: "Calle Secundaria 456, Ciudad", Phone: "2222-2222", State: true},
	}
	defaultBrands     = []string{"Nike", "Adidas", "Puma", "Reebok", "Converse"}
	defaultCategories = []string{"Deportivo", "Casual", "Formal", "Infantil"}
)

// Seeder creates reference data group by group, skipping groups that
// already hold data.
type Seeder struct {
	store   repository.Store
	userSvc *users.Service
	cfg     config.SeedConfig
	logger  *zap.Logger
}

// New wires a seeder.
func New(store repository.Store, userSvc *users.Service, cfg config.SeedConfig, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{store: store, userSvc: userSvc, cfg: cfg, logger: logger}
}

// Run seeds every missing group.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"branches", s.branches},
		{"brands", s.brands},
		{"categories", s.categories},
		{"sizes", s.sizes},
		{"customers", s.customers},
		{"users", s.accounts},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func (s *Seeder) branches(ctx context.Context) error {
	existing, err := s.store.ListBranches(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	for _, b := range defaultBranches {
		branch := b
		if err := s.store.CreateBranch(ctx, &branch); err != nil {
			return err
		}
	}
	s.logger.Info("seeded branches", zap.Int("count", len(defaultBranches)))
	return nil
}

func (s *Seeder) brands(ctx context.Context) error {
	existing, err := s.store.ListBrands(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	for _, name := range defaultBrands {
		if err := s.store.CreateBrand(ctx, &models.Brand{Name: name, State: true}); err != nil {
			return err
		}
	}
	s.logger.Info("seeded brands", zap.Int("count", len(defaultBrands)))
	return nil
}

func (s *Seeder) categories(ctx context.Context) error {
	existing, err := s.store.ListCategories(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	for _, name := range defaultCategories {
		if err := s.store.CreateCategory(ctx, &models.Category{Name: name, State: true}); err != nil {
			return err
		}
	}
	s.logger.Info("seeded categories", zap.Int("count", len(defaultCategories)))
	return nil
}

func (s *Seeder) sizes(ctx context.Context) error {
	existing, err := s.store.ListSizes(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}
	for n := firstSize; n <= lastSize; n++ {
		if err := s.store.CreateSize(ctx, &models.Size{Name: strconv.Itoa(n), State: true}); err != nil {
			return err
		}
	}
	s.logger.Info("seeded sizes", zap.Int("count", lastSize-firstSize+1))
	return nil
}

func (s *Seeder) customers(ctx context.Context) error {
	_, err := s.store.GetCustomer(ctx, models.GeneralCustomerID)
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	general := models.Customer{FirstName: "Cliente", LastName: "General", Address: "Ciudad"}
	if err := s.store.CreateCustomer(ctx, &general); err != nil {
		return err
	}
	if general.ID != models.GeneralCustomerID {
		s.logger.Warn("general customer got an unexpected id", zap.Int64("customer_id", general.ID))
	}
	return nil
}

func (s *Seeder) accounts(ctx context.Context) error {
	accounts := []models.SignUpRequest{
		{Username: "admin", Email: "admin@bwc.com", Password: s.cfg.AdminPassword, Roles: []string{"admin"}, Branches: []int64{1}},
		{Username: "vendedor", Email: "vendedor@bwc.com", Password: s.cfg.SellerPassword, Roles: []string{"vendedor"}, Branches: []int64{1}},
	}
	for _, acc := range accounts {
		_, err := s.store.GetUserByUsername(ctx, acc.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := s.userSvc.Create(ctx, acc); err != nil {
			return err
		}
		s.logger.Info("seeded user", zap.String("username", acc.Username))
	}
	return nil
}
