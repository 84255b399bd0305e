package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats are the admin dashboard aggregates
type DashboardStats struct {
	TotalOrders        int     `json:"total_orders"`
	TodayOrders        int     `json:"today_orders"`
	WeekRevenue        float64 `json:"week_revenue"`
	AvailableProducts  int     `json:"available_products"`
	PendingOrders      int     `json:"pending_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	PromotedProducts   int     `json:"promoted_products"`
	OutOfStockProducts int     `json:"out_of_stock_products"`
	TotalProducts      int     `json:"total_products"`
}

const dateLayout = "2006-01-02"

// ComputeStats derives the dashboard aggregates as of now. Day boundaries use
// now's location. Week revenue covers orders created at or after now minus
// seven days.
func ComputeStats(products []Product, orders []Order, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalOrders:   len(orders),
		TotalProducts: len(products),
	}
	today := now.Format(dateLayout)
	weekAgo := now.AddDate(0, 0, -7)
	week := decimal.Zero
	lifetime := decimal.Zero
	for _, o := range orders {
		total := decimal.NewFromFloat(o.Total)
		lifetime = lifetime.Add(total)
		if o.CreatedAt.In(now.Location()).Format(dateLayout) == today {
			stats.TodayOrders++
		}
		if !o.CreatedAt.Before(weekAgo) {
			week = week.Add(total)
		}
		if o.Status == StatusNew {
			stats.PendingOrders++
		}
	}
	stats.WeekRevenue = week.InexactFloat64()
	stats.TotalRevenue = lifetime.InexactFloat64()

	for _, p := range products {
		if p.Purchasable() {
			stats.AvailableProducts++
		}
		if p.Promoted() {
			stats.PromotedProducts++
		}
		if p.Stock <= 0 {
			stats.OutOfStockProducts++
		}
	}
	return stats
}
