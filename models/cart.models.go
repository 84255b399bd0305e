package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnavailable is returned when adding a product that cannot be bought.
	ErrUnavailable = errors.New("product is out of stock")
	// ErrStockLimit is returned when a quantity would exceed the cached stock.
	ErrStockLimit = errors.New("no more stock available for this product")
	// ErrNotInCart is returned when changing a line that is not in the cart.
	ErrNotInCart = errors.New("product is not in the cart")
)

// CartItem represents an item in the cart
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
}

// Cart is an ordered list of lines, one per product.
type Cart []CartItem

func (c Cart) index(productID int) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p into the cart. The stock snapshot is refreshed from
// p on every add and the line quantity never exceeds it.
func (c Cart) Add(p Product) (Cart, error) {
	if !p.Purchasable() {
		return c, ErrUnavailable
	}
	i := c.index(p.ID)
	if i < 0 {
		return append(c, CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  1,
			Stock:     p.Stock,
		}), nil
	}
	c[i].Stock = p.Stock
	if c[i].Quantity >= p.Stock {
		return c, ErrStockLimit
	}
	c[i].Quantity++
	return c, nil
}

// SetQuantity changes the quantity of a line. A quantity of zero or less
// removes it.
func (c Cart) SetQuantity(productID, quantity int) (Cart, error) {
	i := c.index(productID)
	if i < 0 {
		return c, ErrNotInCart
	}
	if quantity <= 0 {
		return c.Remove(productID), nil
	}
	if quantity > c[i].Stock {
		return c, ErrStockLimit
	}
	c[i].Quantity = quantity
	return c, nil
}

// Remove deletes the line for productID, if any.
func (c Cart) Remove(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// Count is the number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

// Total is the sum of price * quantity over all lines.
func (c Cart) Total() float64 {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.InexactFloat64()
}
