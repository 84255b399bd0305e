package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Status is not constrained to these values.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Customer holds the contact fields captured at checkout
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// LineItem is a snapshot of a product taken when the order was placed.
type LineItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order represents a submitted order
type Order struct {
	ID            int        `json:"id"`
	OrderNumber   string     `json:"order_number"`
	Customer      Customer   `json:"customer"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	DeliveryFee   float64    `json:"delivery_fee"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// OrderNumber formats the human readable number, e.g. ORD-2026-0007.
func OrderNumber(year, id int) string {
	return fmt.Sprintf("ORD-%d-%04d", year, id)
}

// NextOrderID returns max(existing ids)+1, or 1 when there are no orders.
func NextOrderID(orders []Order) int {
	max := 0
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}

// FilterOrdersByStatus returns orders with the given status, or all of them
// when status is empty.
func FilterOrdersByStatus(orders []Order, status string) []Order {
	if status == "" {
		return orders
	}
	out := []Order{}
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// DeliveryFeeFor returns the fee charged for subtotal under settings. The fee
// is waived once the subtotal reaches a positive free-shipping threshold.
func DeliveryFeeFor(subtotal float64, settings Settings) float64 {
	if settings.FreeShippingThreshold > 0 && subtotal >= settings.FreeShippingThreshold {
		return 0
	}
	return settings.DeliveryFee
}

// NewOrder builds an unsaved order from the cart contents. Id, number, status
// and creation time are assigned by storage.
func NewOrder(customer Customer, paymentMethod, notes string, cart Cart, settings Settings) Order {
	items := make([]LineItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	if paymentMethod == "" {
		paymentMethod = PaymentCashOnDelivery
	}
	subtotal := cart.Total()
	fee := DeliveryFeeFor(subtotal, settings)
	return Order{
		Customer:      customer,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(fee)).InexactFloat64(),
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}
}

// RecentOrders returns a copy of orders sorted newest first, limited to n
// entries when n > 0.
func RecentOrders(orders []Order, n int) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
