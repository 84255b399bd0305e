package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-2026-0007", OrderNumber(2026, 7))
	assert.Equal(t, "ORD-2026-12345", OrderNumber(2026, 12345))
}

func TestNewOrder_Totals(t *testing.T) {
	cart := Cart{
		{ProductID: 1, Name: "Amber", Price: 95, Quantity: 2, Stock: 5},
		{ProductID: 2, Name: "Musk", Price: 45, Quantity: 1, Stock: 5},
	}
	settings := DefaultSettings()
	settings.DeliveryFee = 30
	settings.FreeShippingThreshold = 0

	order := NewOrder(Customer{Name: "Sara", Phone: "0500000000"}, "", "", cart, settings)

	assert.Equal(t, 235.0, order.Subtotal)
	assert.Equal(t, 30.0, order.DeliveryFee)
	assert.Equal(t, 265.0, order.Total)
	assert.Equal(t, PaymentCashOnDelivery, order.PaymentMethod)
	assert.Equal(t, []LineItem{
		{ProductID: 1, Name: "Amber", Price: 95, Quantity: 2},
		{ProductID: 2, Name: "Musk", Price: 45, Quantity: 1},
	}, order.Items)
}

func TestNewOrder_SnapshotIsDetachedFromCart(t *testing.T) {
	cart := Cart{{ProductID: 1, Name: "Amber", Price: 95, Quantity: 1, Stock: 5}}
	order := NewOrder(Customer{Name: "Sara", Phone: "1"}, PaymentCard, "", cart, DefaultSettings())

	cart[0].Price = 10
	cart[0].Name = "Renamed"
	assert.Equal(t, 95.0, order.Items[0].Price)
	assert.Equal(t, "Amber", order.Items[0].Name)
}

func TestDeliveryFeeFor(t *testing.T) {
	settings := Settings{DeliveryFee: 30, FreeShippingThreshold: 200}
	assert.Equal(t, 30.0, DeliveryFeeFor(199, settings))
	assert.Equal(t, 0.0, DeliveryFeeFor(200, settings))

	settings.FreeShippingThreshold = 0
	assert.Equal(t, 30.0, DeliveryFeeFor(10000, settings))
}

func TestFilterOrdersByStatus(t *testing.T) {
	orders := []Order{{ID: 1, Status: StatusNew}, {ID: 2, Status: StatusCompleted}}
	assert.Len(t, FilterOrdersByStatus(orders, ""), 2)
	assert.Equal(t, []Order{{ID: 2, Status: StatusCompleted}}, FilterOrdersByStatus(orders, StatusCompleted))
}

func TestRecentOrders(t *testing.T) {
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	orders := []Order{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(time.Hour)},
		{ID: 4, CreatedAt: base.Add(2 * time.Hour)},
	}
	ids := func(os []Order) []int {
		out := []int{}
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []int{4, 2, 3, 1}, ids(RecentOrders(orders, 0)))
	assert.Equal(t, []int{4, 2}, ids(RecentOrders(orders, 2)))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(orders))
}
