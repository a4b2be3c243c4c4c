package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport represents the aggregated daily data to be stored in MongoDB.
type DailyReport struct {
	Date            time.Time       `bson:"date" json:"date"`
	SalesCount      int             `bson:"sales_count" json:"salesCount"`
	SalesAmount     decimal.Decimal `bson:"sales_amount" json:"salesAmount"`
	UnitsSold       int             `bson:"units_sold" json:"unitsSold"`
	PurchasesCount  int             `bson:"purchases_count" json:"purchasesCount"`
	PurchasesAmount decimal.Decimal `bson:"purchases_amount" json:"purchasesAmount"`
	LowStockCount   int             `bson:"low_stock_count" json:"lowStockCount"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
}

// SalesChartPoint is one day of the weekly sales chart.
type SalesChartPoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// DashboardStats feeds the dashboard screen.
type DashboardStats struct {
	TotalSales       float64           `json:"totalSales"`
	LowStockProducts []ProductView     `json:"lowStockProducts"`
	RecentMovements  []MovementView    `json:"recentMovements"`
	WeeklySales      []SalesChartPoint `json:"weeklySales"`
}
