package report

import "time"

const (
	KindDailySales   = "daily_sales"
	KindRevenueRange = "revenue_range"
)

type DailySalesReport struct {
	Date     string `json:"date"`
	Orders   int64  `json:"orders"`
	Revenue  string `json:"revenue"`
	Currency string `json:"currency"`
}

type RevenueAggregation struct {
	From         string             `json:"from"`
	To           string             `json:"to"`
	TotalOrders  int64              `json:"total_orders"`
	TotalRevenue string             `json:"total_revenue"`
	Currency     string             `json:"currency"`
	Days         []DailySalesReport `json:"days"`
}

// ReportDto wraps exactly one of Daily or Revenue, named by Kind.
type ReportDto struct {
	Kind        string              `json:"kind"`
	GeneratedAt time.Time           `json:"generated_at"`
	Daily       *DailySalesReport   `json:"daily,omitempty"`
	Revenue     *RevenueAggregation `json:"revenue,omitempty"`
}
