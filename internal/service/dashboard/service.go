// Package dashboard computes the figures shown on the home screen.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/service/catalog"
	"github.com/bwc/pos/internal/service/inventory"
)

const recentMovements = 5

var dayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// Store is the persistence the dashboard reads.
type Store interface {
	repository.SaleRepository
	repository.StockRepository
	repository.CatalogRepository
}

// Service assembles DashboardStats.
type Service struct {
	store     Store
	catalog   *catalog.Service
	inventory *inventory.Service
	loc       *time.Location
	threshold int
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new dashboard service. Days are cut in loc and products
// at or below threshold count as low stock.
func NewService(store Store, catalogSvc *catalog.Service, inventorySvc *inventory.Service, loc *time.Location, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:     store,
		catalog:   catalogSvc,
		inventory: inventorySvc,
		loc:       loc,
		threshold: threshold,
		now:       time.Now,
		logger:    logger,
	}
}

// Stats returns total sales, low stock products, the latest movements and
// the last seven days of sales.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
	}

	lowStock, err := s.LowStock(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	recent, err := s.inventory.Movements(ctx, recentMovements)
	if err != nil {
		return models.DashboardStats{}, err
	}

	weekly, err := s.WeeklySales(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	return models.DashboardStats{
		TotalSales:       total.Round(2).InexactFloat64(),
		LowStockProducts: lowStock,
		RecentMovements:  recent,
		WeeklySales:      weekly,
	}, nil
}

// LowStock lists products whose stock summed over every branch is at or
// below the threshold, lowest first.
func (s *Service) LowStock(ctx context.Context) ([]models.ProductView, error) {
	rows, err := s.store.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	ids := models.LowStock(models.StockLevels(rows), s.threshold)

	views, err := s.catalog.ViewsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProductView, 0, len(ids))
	for _, id := range ids {
		if v, ok := views[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// WeeklySales returns one point per day for the seven days ending today,
// oldest first. Days without sales report zero.
func (s *Service) WeeklySales(ctx context.Context) ([]models.SalesChartPoint, error) {
	today := s.now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day()-6, 0, 0, 0, 0, s.loc)
	days := make([]time.Time, 8)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	sales, err := s.store.ListSalesBetween(ctx, days[0], days[7])
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, 7)
	for _, sale := range sales {
		at := sale.SaleDate.In(s.loc)
		for i := 0; i < 7; i++ {
			if !at.Before(days[i]) && at.Before(days[i+1]) {
				amounts[i] = amounts[i].Add(sale.TotalAmount)
				break
			}
		}
	}

	points := make([]models.SalesChartPoint, 0, 7)
	for i := 0; i < 7; i++ {
		points = append(points, models.SalesChartPoint{
			Day:    dayNames[days[i].Weekday()],
			Amount: amounts[i].Round(2).InexactFloat64(),
		})
	}
	return points, nil
}
