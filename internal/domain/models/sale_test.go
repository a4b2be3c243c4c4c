package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotals(t *testing.T) {
	lines := []LineItem{
		{Quantity: 2, TotalPrice: LineTotal(2, decimal.RequireFromString("49.90"))},
		{Quantity: 1, TotalPrice: LineTotal(1, decimal.RequireFromString("10.10"))},
	}
	assert.True(t, decimal.RequireFromString("109.90").Equal(SumLines(lines)))
}

func TestPricesEncodeAsNumbers(t *testing.T) {
	raw, err := json.Marshal(LineItem{ProductID: 3, Quantity: 1, UnitPrice: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"unitPrice":12.5`)
}
