package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository/memory"
)

var guatemala = time.FixedZone("CST", -6*60*60)

type fakeSheet struct {
	dates    []string
	appended [][]any
	readErr  error
}

func (f *fakeSheet) AppendRow(_ context.Context, sheetRange string, values []any) error {
	if sheetRange != reportDataRange {
		return errors.New("unexpected range " + sheetRange)
	}
	f.appended = append(f.appended, values)
	f.dates = append(f.dates, values[0].(string))
	return nil
}

func (f *fakeSheet) ReadColumn(_ context.Context, _ string) ([]string, error) {
	return f.dates, f.readErr
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	sales := []models.Sale{
		{SaleDate: time.Date(2024, 5, 1, 9, 0, 0, 0, guatemala), TotalAmount: decimal.NewFromInt(300), Details: []models.LineItem{{ProductID: 1, Quantity: 2}}},
		{SaleDate: time.Date(2024, 5, 1, 20, 0, 0, 0, guatemala), TotalAmount: decimal.RequireFromString("125.50"), Details: []models.LineItem{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 1}}},
		{SaleDate: time.Date(2024, 5, 2, 1, 0, 0, 0, guatemala), TotalAmount: decimal.NewFromInt(80), Details: []models.LineItem{{ProductID: 1, Quantity: 1}}},
	}
	for i := range sales {
		require.NoError(t, store.CreateSale(ctx, &sales[i]))
	}
	purchase := models.Purchase{PurchaseDate: time.Date(2024, 5, 1, 11, 0, 0, 0, guatemala), TotalAmount: decimal.NewFromInt(1000)}
	require.NoError(t, store.CreatePurchase(ctx, &purchase))

	_, err := store.AdjustStock(ctx, 1, 1, 3)
	require.NoError(t, err)
	_, err = store.AdjustStock(ctx, 2, 1, 50)
	require.NoError(t, err)
	return store
}

func newTestService(store Store, sheet *fakeSheet) *Service {
	var svc *Service
	if sheet == nil {
		svc = NewService(store, nil, guatemala, 10, nil)
	} else {
		svc = NewService(store, sheet, guatemala, 10, nil)
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 21, 0, 0, 0, guatemala) }
	return svc
}

func TestGenerateDailyReport(t *testing.T) {
	store := seed(t)
	svc := newTestService(store, nil)
	ctx := context.Background()

	report, err := svc.GenerateDailyReport(ctx, time.Date(2024, 5, 1, 21, 0, 0, 0, guatemala))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC), report.Date)
	assert.Equal(t, 2, report.SalesCount)
	assert.True(t, report.SalesAmount.Equal(decimal.RequireFromString("425.50")), report.SalesAmount.String())
	assert.Equal(t, 4, report.UnitsSold)
	assert.Equal(t, 1, report.PurchasesCount)
	assert.True(t, report.PurchasesAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, report.LowStockCount)

	saved, err := store.GetDailyReport(ctx, report.Date)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.SalesCount)
}

func TestGenerateDailyReport_ExportsOncePerDay(t *testing.T) {
	store := seed(t)
	sheet := &fakeSheet{dates: []string{"Fecha"}}
	svc := newTestService(store, sheet)
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, guatemala)

	_, err := svc.GenerateDailyReport(ctx, day)
	require.NoError(t, err)
	_, err = svc.GenerateDailyReport(ctx, day)
	require.NoError(t, err)

	require.Len(t, sheet.appended, 1)
	row := sheet.appended[0]
	assert.Equal(t, "2024-05-01", row[0])
	assert.Equal(t, 2, row[1])
	assert.Equal(t, "425.50", row[2])
	assert.Len(t, row, 8)
}

func TestGenerateDailyReport_ExportFailureIsNotFatal(t *testing.T) {
	store := seed(t)
	svc := newTestService(store, &fakeSheet{readErr: errors.New("quota exceeded")})

	report, err := svc.GenerateDailyReport(context.Background(), time.Date(2024, 5, 1, 12, 0, 0, 0, guatemala))
	require.NoError(t, err)
	assert.Equal(t, 2, report.SalesCount)
}

func TestFormatDailyReport(t *testing.T) {
	svc := newTestService(memory.NewStore(), nil)

	text := svc.FormatDailyReport(models.DailyReport{
		Date:            time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC),
		SalesCount:      2,
		SalesAmount:     decimal.RequireFromString("425.5"),
		UnitsSold:       4,
		PurchasesCount:  1,
		PurchasesAmount: decimal.NewFromInt(1000),
		LowStockCount:   1,
	})

	assert.Equal(t, "Reporte diario 2024-05-01\n"+
		"Ventas: 2 (Q 425.50)\n"+
		"Unidades vendidas: 4\n"+
		"Compras: 1 (Q 1000.00)\n"+
		"Productos con stock bajo: 1", text)
}
