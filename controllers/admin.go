package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"go-storefront/models"
	"go-storefront/storage"
	"go-storefront/utils"
)

const recentOrdersOnDashboard = 5

// AdminController handles admin sign-in and the dashboard
type AdminController struct {
	Store        *storage.Shared
	Username     string
	PasswordHash string
}

// NewAdminController creates an AdminController. An empty passwordHash
// disables sign-in.
func NewAdminController(store *storage.Shared, username, passwordHash string) *AdminController {
	return &AdminController{
		Store:        store,
		Username:     username,
		PasswordHash: passwordHash,
	}
}

// Login exchanges the admin credentials for a JWT
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}
	if ac.PasswordHash == "" {
		utils.JSONError(w, http.StatusServiceUnavailable, "Admin sign-in is not configured", nil)
		return
	}
	if creds.Username != ac.Username || !utils.CheckPassword(ac.PasswordHash, creds.Password) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}

	token, err := utils.GenerateJWT(ac.Username, utils.RoleAdmin)
	if err != nil {
		log.Printf("generate token: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error generating token", nil)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"token": token})
}

type dashboardResponse struct {
	Stats        models.DashboardStats `json:"stats"`
	RecentOrders []models.Order        `json:"recent_orders"`
	LastUpdate   int64                 `json:"last_update"`
}

// Dashboard reloads every collection and recomputes the aggregates
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	lastUpdate := ac.Store.LastUpdate(ctx)
	products := ac.Store.GetProducts(ctx)
	orders := ac.Store.GetOrders(ctx)
	utils.JSON(w, http.StatusOK, dashboardResponse{
		Stats:        models.ComputeStats(products, orders, ac.Store.Now()),
		RecentOrders: models.RecentOrders(orders, recentOrdersOnDashboard),
		LastUpdate:   lastUpdate,
	})
}
