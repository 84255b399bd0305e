package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/storage"
	"go-storefront/utils"
)

// CartController handles cart-related requests
type CartController struct {
	Store *storage.Shared
	Carts *storage.Carts
}

// NewCartController creates a new CartController
func NewCartController(store *storage.Shared) *CartController {
	return &CartController{
		Store: store,
		Carts: store.Carts(),
	}
}

type cartResponse struct {
	Items        models.Cart          `json:"items"`
	Count        int                  `json:"count"`
	Total        float64              `json:"total"`
	Notification *models.Notification `json:"notification,omitempty"`
}

func newCartResponse(cart models.Cart, n *models.Notification) cartResponse {
	return cartResponse{Items: cart, Count: cart.Count(), Total: cart.Total(), Notification: n}
}

func cartSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.CartIDFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "Cart session missing", nil)
	}
	return id, ok
}

// cartRefusal answers a refused cart change with a warning notification.
func cartRefusal(w http.ResponseWriter, err error, name string) bool {
	switch {
	case errors.Is(err, models.ErrUnavailable):
		utils.JSONNotify(w, http.StatusConflict, models.LevelWarning, name+" is out of stock", nil)
	case errors.Is(err, models.ErrStockLimit):
		utils.JSONNotify(w, http.StatusConflict, models.LevelWarning, "No more stock available for "+name, nil)
	case errors.Is(err, models.ErrNotInCart):
		utils.JSONNotify(w, http.StatusNotFound, models.LevelWarning, name+" is not in the cart", nil)
	default:
		return false
	}
	return true
}

// GetCart retrieves the browser's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	utils.JSON(w, http.StatusOK, newCartResponse(cc.Carts.Get(ctx, session), nil))
}

// AddToCart adds one unit of a product to the cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	var body struct {
		ProductID int `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	product, found := cc.Store.GetProduct(ctx, body.ProductID)
	if !found {
		utils.JSONNotify(w, http.StatusNotFound, models.LevelError, "Product not found", nil)
		return
	}

	cart, err := cc.Carts.Get(ctx, session).Add(product)
	if cartRefusal(w, err, product.Name) {
		return
	}
	if err := cc.Carts.Save(ctx, session, cart); err != nil {
		log.Printf("save cart: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error updating cart", nil)
		return
	}
	utils.JSON(w, http.StatusOK, newCartResponse(cart, &models.Notification{
		Level:   models.LevelInfo,
		Message: product.Name + " added to cart",
	}))
}

// UpdateCartItem sets the quantity of a cart line; zero removes it
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r, "product_id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	current := cc.Carts.Get(ctx, session)
	name := "Product"
	for _, item := range current {
		if item.ProductID == productID {
			name = item.Name
		}
	}
	cart, err := current.SetQuantity(productID, body.Quantity)
	if cartRefusal(w, err, name) {
		return
	}
	if err := cc.Carts.Save(ctx, session, cart); err != nil {
		log.Printf("save cart: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error updating cart", nil)
		return
	}
	utils.JSON(w, http.StatusOK, newCartResponse(cart, nil))
}

// RemoveFromCart removes a product from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	productID, err := pathID(r, "product_id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	cart := cc.Carts.Get(ctx, session).Remove(productID)
	if err := cc.Carts.Save(ctx, session, cart); err != nil {
		log.Printf("save cart: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error updating cart", nil)
		return
	}
	utils.JSON(w, http.StatusOK, newCartResponse(cart, &models.Notification{
		Level:   models.LevelInfo,
		Message: "Item removed from cart",
	}))
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.Clear(ctx, session); err != nil {
		log.Printf("clear cart: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error clearing cart", nil)
		return
	}
	utils.JSON(w, http.StatusOK, newCartResponse(models.Cart{}, nil))
}
