package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CartCookieName identifies the browser's cart.
const CartCookieName = "cart_id"

const cartContextKey = contextKey("cart")

const cartCookieMaxAge = 90 * 24 * time.Hour

// CartSession makes sure every request carries a cart id, issuing a cookie
// on first visit.
func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CartCookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CartCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cartCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), cartContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartIDFromContext returns the cart id set by CartSession.
func CartIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cartContextKey).(string)
	return id, ok && id != ""
}
