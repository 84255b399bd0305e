package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	orders := []Order{
		{ID: 1, Total: 100, Status: StatusNew, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, Total: 50, Status: StatusProcessing, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: 3, Total: 70, Status: StatusNew, CreatedAt: now.AddDate(0, 0, -7)},
		{ID: 4, Total: 30, Status: StatusCompleted, CreatedAt: now.AddDate(0, 0, -8)},
	}
	products := []Product{
		{ID: 1, Available: true, Stock: 2, IsNew: true},
		{ID: 2, Available: false, Stock: 2, IsPopular: true},
		{ID: 3, Available: true, Stock: 0},
	}

	stats := ComputeStats(products, orders, now)

	assert.Equal(t, DashboardStats{
		TotalOrders:        4,
		TodayOrders:        1,
		WeekRevenue:        220,
		AvailableProducts:  1,
		PendingOrders:      2,
		TotalRevenue:       250,
		PromotedProducts:   2,
		OutOfStockProducts: 1,
		TotalProducts:      3,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now())
	assert.Equal(t, DashboardStats{}, stats)
}
