package reporting

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/repository/sheets"
)

const (
	dateLayout      = "2006-01-02"
	reportDataRange = "Reportes!A:H"
	reportDateRange = "Reportes!A:A"
)

// Store is the persistence the reports read and write.
type Store interface {
	repository.SaleRepository
	repository.PurchaseRepository
	repository.StockRepository
	repository.ReportRepository
}

// Service builds the end-of-day report.
type Service struct {
	store     Store
	sheet     sheets.Repository
	loc       *time.Location
	threshold int
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. sheet may be nil when
// the spreadsheet export is not configured.
func NewService(store Store, sheet sheets.Repository, loc *time.Location, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, sheet: sheet, loc: loc, threshold: threshold, now: time.Now, logger: logger}
}

// GenerateDailyReport aggregates the sales and purchases of the day containing
// day, counts low stock products, saves the report and exports it.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyReport, error) {
	local := day.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	report := models.DailyReport{
		Date:            start.UTC(),
		SalesAmount:     decimal.Zero,
		PurchasesAmount: decimal.Zero,
		CreatedAt:       s.now().UTC(),
	}

	sales, err := s.store.ListSalesBetween(ctx, start, end)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load sales: %w", err)
	}
	for _, sale := range sales {
		report.SalesCount++
		report.SalesAmount = report.SalesAmount.Add(sale.TotalAmount)
		for _, line := range sale.Details {
			report.UnitsSold += line.Quantity
		}
	}

	purchases, err := s.store.ListPurchasesBetween(ctx, start, end)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load purchases: %w", err)
	}
	for _, p := range purchases {
		report.PurchasesCount++
		report.PurchasesAmount = report.PurchasesAmount.Add(p.TotalAmount)
	}

	rows, err := s.store.ListStock(ctx)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load stock: %w", err)
	}
	report.LowStockCount = len(models.LowStock(models.StockLevels(rows), s.threshold))

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		return models.DailyReport{}, err
	}
	s.logger.Info("daily report saved",
		zap.String("date", start.Format(dateLayout)),
		zap.Int("sales", report.SalesCount),
		zap.String("sales_amount", report.SalesAmount.StringFixed(2)))

	if s.sheet != nil {
		if err := s.export(ctx, start, report); err != nil {
			s.logger.Error("failed to export daily report", zap.String("date", start.Format(dateLayout)), zap.Error(err))
		}
	}

	return report, nil
}

// export appends the report row unless the sheet already has that date.
func (s *Service) export(ctx context.Context, day time.Time, report models.DailyReport) error {
	date := day.Format(dateLayout)

	existing, err := s.sheet.ReadColumn(ctx, reportDateRange)
	if err != nil {
		return err
	}
	if slices.Contains(existing, date) {
		s.logger.Debug("daily report already exported", zap.String("date", date))
		return nil
	}

	row := []any{
		date,
		report.SalesCount,
		report.SalesAmount.StringFixed(2),
		report.UnitsSold,
		report.PurchasesCount,
		report.PurchasesAmount.StringFixed(2),
		report.LowStockCount,
		report.CreatedAt.In(s.loc).Format(time.RFC3339),
	}
	return s.sheet.AppendRow(ctx, reportDataRange, row)
}

// FormatDailyReport renders the report as a short text message.
func (s *Service) FormatDailyReport(report models.DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reporte diario %s\n", report.Date.In(s.loc).Format(dateLayout))
	fmt.Fprintf(&b, "Ventas: %d (Q %s)\n", report.SalesCount, report.SalesAmount.StringFixed(2))
	fmt.Fprintf(&b, "Unidades vendidas: %d\n", report.UnitsSold)
	fmt.Fprintf(&b, "Compras: %d (Q %s)\n", report.PurchasesCount, report.PurchasesAmount.StringFixed(2))
	fmt.Fprintf(&b, "Productos con stock bajo: %d", report.LowStockCount)
	return b.String()
}
