package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwc/pos/internal/domain/models"
)

// ShortageError stops a sale before it is sent because the branch does not
// hold enough units.
type ShortageError struct {
	BranchID  int64
	Shortages []models.Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("branch %d lacks stock: %s", e.BranchID, strings.Join(parts, "; "))
}

// CreateSaleChecked fetches the branch stock, refuses to submit on any
// shortage and otherwise posts the sale. The server checks again, so a
// concurrent sale still surfaces as an *APIError with status 409.
func (c *Client) CreateSaleChecked(ctx context.Context, in models.SaleInput) (models.SaleView, error) {
	rows, err := c.StockByBranch(ctx, in.BranchID)
	if err != nil {
		return models.SaleView{}, fmt.Errorf("load branch stock: %w", err)
	}

	stock := make([]models.Stock, 0, len(rows))
	for _, row := range rows {
		stock = append(stock, row.Stock)
	}
	if shortages := models.CheckAvailability(models.StockLevels(stock), in.StockLines()); len(shortages) > 0 {
		return models.SaleView{}, &ShortageError{BranchID: in.BranchID, Shortages: shortages}
	}
	return c.CreateSale(ctx, in)
}
