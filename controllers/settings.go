package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"go-storefront/models"
	"go-storefront/storage"
	"go-storefront/utils"
)

// SettingsController reads and replaces the store settings
type SettingsController struct {
	Store *storage.Shared
}

func NewSettingsController(store *storage.Shared) *SettingsController {
	return &SettingsController{Store: store}
}

// GetSettings returns the current settings (defaults until first saved)
func (sc *SettingsController) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	utils.JSON(w, http.StatusOK, sc.Store.GetSettings(ctx))
}

// UpdateSettings replaces the settings record (Admin only)
func (sc *SettingsController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	v := make(utils.Violations)
	utils.NonNegativeFloat("delivery_fee", settings.DeliveryFee, v)
	utils.NonNegativeFloat("free_shipping_threshold", settings.FreeShippingThreshold, v)
	if !v.Empty() {
		utils.JSONNotify(w, http.StatusBadRequest, models.LevelError, "Please fix the highlighted fields", v)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := sc.Store.SetSettings(ctx, settings); err != nil {
		log.Printf("set settings: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error saving settings", nil)
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}
