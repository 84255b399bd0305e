// controllers/order.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"go-storefront/models"
	"go-storefront/storage"
	"go-storefront/utils"
)

// OrderController handles checkout and order administration
type OrderController struct {
	Store        *storage.Shared
	Carts        *storage.Carts
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController. emailService may be nil.
func NewOrderController(store *storage.Shared, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Store:        store,
		Carts:        store.Carts(),
		EmailService: emailService,
	}
}

type checkoutRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type checkoutResponse struct {
	Order        models.Order        `json:"order"`
	Message      string              `json:"message"`
	WhatsAppURL  string              `json:"whatsapp_url"`
	Notification models.Notification `json:"notification"`
}

// Checkout turns the browser's cart into an order
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	session, ok := cartSession(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	v := make(utils.Violations)
	utils.Required("name", req.Name, v)
	utils.Required("phone", req.Phone, v)
	if !v.Empty() {
		utils.JSONNotify(w, http.StatusBadRequest, models.LevelError, "Please enter your name and phone number", v)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	cart := oc.Carts.Get(ctx, session)
	if len(cart) == 0 {
		utils.JSONNotify(w, http.StatusBadRequest, models.LevelWarning, "Cart is empty", nil)
		return
	}

	settings := oc.Store.GetSettings(ctx)
	customer := models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	order, err := oc.Store.AddOrder(ctx, models.NewOrder(customer, req.PaymentMethod, strings.TrimSpace(req.Notes), cart, settings))
	if err != nil {
		log.Printf("add order: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create order", nil)
		return
	}

	if err := oc.Carts.Clear(ctx, session); err != nil {
		log.Printf("Failed to clear cart %s: %v", session, err)
	}

	// Owner notification is best effort
	go func(order models.Order, settings models.Settings) {
		if err := oc.EmailService.SendOrderNotification(order, settings); err != nil {
			log.Printf("Failed to send order notification for %s: %v", order.OrderNumber, err)
		}
	}(order, settings)

	message := utils.OrderMessage(order, settings)
	utils.JSON(w, http.StatusCreated, checkoutResponse{
		Order:       order,
		Message:     message,
		WhatsAppURL: utils.WhatsAppLink(settings.ContactNumber, message),
		Notification: models.Notification{
			Level:   models.LevelInfo,
			Message: "Order " + order.OrderNumber + " received",
		},
	})
}

// GetOrders lists orders, newest first, optionally filtered by ?status=
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	orders := models.FilterOrdersByStatus(oc.Store.GetOrders(ctx), r.URL.Query().Get("status"))
	utils.JSON(w, http.StatusOK, models.RecentOrders(orders, 0))
}

// GetOrderByID retrieves a single order
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid order ID", nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	order, ok := oc.Store.GetOrder(ctx, id)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Order not found", nil)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// UpdateOrderStatus allows admin to set any status on an order
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid order ID", nil)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid order status", utils.Violations{"status": "required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	ok, err := oc.Store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		log.Printf("update order %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to update order status", nil)
		return
	}
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Order not found", nil)
		return
	}
	order, _ := oc.Store.GetOrder(ctx, id)
	utils.JSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order (Admin only)
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid order ID", nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	ok, err := oc.Store.DeleteOrder(ctx, id)
	if err != nil {
		log.Printf("delete order %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Failed to delete order", nil)
		return
	}
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Order not found", nil)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}
