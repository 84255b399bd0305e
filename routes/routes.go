// routes/routes.go
package routes

import (
	"go-storefront/controllers"
	"go-storefront/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController, settingsController *controllers.SettingsController, adminController *controllers.AdminController, updatesController *controllers.UpdatesController) {
	api := router.PathPrefix("/api").Subrouter()

	// Public storefront routes
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", productController.GetProductByID).Methods("GET")
	api.HandleFunc("/settings", settingsController.GetSettings).Methods("GET")
	api.HandleFunc("/updates", updatesController.GetUpdates).Methods("GET")
	api.HandleFunc("/admin/login", adminController.Login).Methods("POST")

	// Cart routes, keyed by the browser's cart cookie
	shop := api.NewRoute().Subrouter()
	shop.Use(middleware.CartSession)
	shop.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	shop.HandleFunc("/cart", cartController.ClearCart).Methods("DELETE")
	shop.HandleFunc("/cart/items", cartController.AddToCart).Methods("POST")
	shop.HandleFunc("/cart/items/{product_id:[0-9]+}", cartController.UpdateCartItem).Methods("PUT")
	shop.HandleFunc("/cart/items/{product_id:[0-9]+}", cartController.RemoveFromCart).Methods("DELETE")
	shop.HandleFunc("/checkout", orderController.Checkout).Methods("POST")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/dashboard", adminController.Dashboard).Methods("GET")
	admin.HandleFunc("/products", productController.GetProducts).Methods("GET")
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id:[0-9]+}", productController.UpdateProduct).Methods("PATCH")
	admin.HandleFunc("/products/{id:[0-9]+}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id:[0-9]+}", orderController.GetOrderByID).Methods("GET")
	admin.HandleFunc("/orders/{id:[0-9]+}/status", orderController.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id:[0-9]+}", orderController.DeleteOrder).Methods("DELETE")
	admin.HandleFunc("/settings", settingsController.UpdateSettings).Methods("PUT")
}
