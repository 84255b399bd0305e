package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"go-storefront/models"
	"go-storefront/storage"
	"go-storefront/utils"
)

// ProductController handles product-related requests
type ProductController struct {
	Store *storage.Shared
}

// NewProductController creates a new ProductController
func NewProductController(store *storage.Shared) *ProductController {
	return &ProductController{Store: store}
}

// GetProducts lists the catalog, optionally filtered by ?filter=
// (all, popular, new or a category tag)
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products := models.FilterProducts(pc.Store.GetProducts(ctx), r.URL.Query().Get("filter"))
	utils.JSON(w, http.StatusOK, models.ViewProducts(products))
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	product, ok := pc.Store.GetProduct(ctx, id)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	utils.JSON(w, http.StatusOK, models.ViewProducts([]models.Product{product})[0])
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	v := make(utils.Violations)
	utils.Required("name", product.Name, v)
	utils.NonNegativeFloat("price", product.Price, v)
	utils.NonNegativeFloat("original_price", product.OriginalPrice, v)
	utils.NonNegativeInt("stock", product.Stock, v)
	if !v.Empty() {
		utils.JSONNotify(w, http.StatusBadRequest, models.LevelError, "Please fix the highlighted fields", v)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	created, err := pc.Store.AddProduct(ctx, product)
	if err != nil {
		log.Printf("add product: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Error creating product", nil)
		return
	}
	utils.JSON(w, http.StatusCreated, models.ViewProducts([]models.Product{created})[0])
}

// UpdateProduct merges the given fields into a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	var patch models.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input", nil)
		return
	}

	v := make(utils.Violations)
	if patch.Name != nil {
		utils.Required("name", *patch.Name, v)
	}
	if patch.Price != nil {
		utils.NonNegativeFloat("price", *patch.Price, v)
	}
	if patch.OriginalPrice != nil {
		utils.NonNegativeFloat("original_price", *patch.OriginalPrice, v)
	}
	if patch.Stock != nil {
		utils.NonNegativeInt("stock", *patch.Stock, v)
	}
	if !v.Empty() {
		utils.JSONNotify(w, http.StatusBadRequest, models.LevelError, "Please fix the highlighted fields", v)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	ok, err := pc.Store.UpdateProduct(ctx, id, patch)
	if err != nil {
		log.Printf("update product %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Error updating product", nil)
		return
	}
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	product, _ := pc.Store.GetProduct(ctx, id)
	utils.JSON(w, http.StatusOK, models.ViewProducts([]models.Product{product})[0])
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	ok, err := pc.Store.DeleteProduct(ctx, id)
	if err != nil {
		log.Printf("delete product %d: %v", id, err)
		utils.JSONError(w, http.StatusInternalServerError, "Error deleting product", nil)
		return
	}
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
