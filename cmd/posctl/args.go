package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bwc/pos/internal/domain/models"
)

func parseID(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return v, nil
}

// parseLines turns "productId:quantity[:unitPrice]" items into line inputs.
func parseLines(items []string) ([]models.LineInput, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}
	lines := make([]models.LineInput, 0, len(items))
	for _, item := range items {
		parts := strings.Split(item, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("item %q: want productId:quantity[:unitPrice]", item)
		}
		productID, err := parseID(parts[0])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item, err)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("item %q: quantity must be a positive integer", item)
		}
		line := models.LineInput{ProductID: productID, Quantity: qty}
		if len(parts) == 3 {
			price, err := decimal.NewFromString(parts[2])
			if err != nil {
				return nil, fmt.Errorf("item %q: unit price: %w", item, err)
			}
			line.UnitPrice = &price
		}
		lines = append(lines, line)
	}
	return lines, nil
}
