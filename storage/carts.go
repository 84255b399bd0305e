package storage

import (
	"context"

	"go-storefront/models"
)

// Carts persists one cart per browser session. Cart writes are private to
// the session and do not advance the shared last-update timestamp.
type Carts struct {
	shared *Shared
}

func cartKey(session string) string { return cartKeyPrefix + session }

// Get returns the session's cart, empty if none was saved.
func (c *Carts) Get(ctx context.Context, session string) models.Cart {
	var cart models.Cart
	if !c.shared.load(ctx, cartKey(session), &cart) || cart == nil {
		return models.Cart{}
	}
	return cart
}

func (c *Carts) Save(ctx context.Context, session string, cart models.Cart) error {
	return c.shared.store(ctx, cartKey(session), cart)
}

func (c *Carts) Clear(ctx context.Context, session string) error {
	return c.shared.kv.Delete(ctx, cartKey(session))
}
