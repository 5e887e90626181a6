package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/repository"
)

// ProductController handles HTTP requests for product records
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// mNumberFromPath extracts the product m_number from a URL path like
// /admin/products/{m_number}
func mNumberFromPath(path string) string {
	return strings.TrimSuffix(strings.TrimPrefix(path, "/admin/products/"), "/")
}

// ListProducts handles GET /admin/products
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	products, err := c.repository.GetAll(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list products: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// CreateProduct handles POST /admin/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if product.MNumber == "" {
		http.Error(w, "m_number is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if err := c.repository.Insert(ctx, &product); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create product: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// GetProduct handles GET /admin/products/{m_number}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	mNumber := mNumberFromPath(r.URL.Path)
	if mNumber == "" {
		http.Error(w, "m_number parameter is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	product, err := c.repository.GetByMNumber(ctx, mNumber)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get product: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(product); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// UpdateProduct handles PUT /admin/products/{m_number}
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mNumber := mNumberFromPath(r.URL.Path)
	if mNumber == "" {
		http.Error(w, "m_number parameter is required", http.StatusBadRequest)
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	product.MNumber = mNumber

	ctx := context.Background()
	if err := c.repository.Update(ctx, &product); err != nil {
		http.Error(w, fmt.Sprintf("Failed to update product: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(product); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// DeleteProduct handles DELETE /admin/products/{m_number}
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mNumber := mNumberFromPath(r.URL.Path)
	if mNumber == "" {
		http.Error(w, "m_number parameter is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if err := c.repository.Delete(ctx, mNumber); err != nil {
		http.Error(w, fmt.Sprintf("Failed to delete product: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
