package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/repository"
	"github.com/NBNEORIGIN/signmaker/service"
)

// ExportController handles HTTP requests for staff export packages
type ExportController struct {
	repository    repository.ProductRepositoryInterface
	exportService service.ExportServiceInterface
}

// NewExportController creates a new ExportController
func NewExportController(repo repository.ProductRepositoryInterface, exportService service.ExportServiceInterface) *ExportController {
	return &ExportController{
		repository:    repo,
		exportService: exportService,
	}
}

type exportRequest struct {
	MNumbers []string `json:"m_numbers"`
}

// ExportProducts handles POST /admin/products/export
// Renders the requested products (all products when m_numbers is empty) and
// streams back a ZIP in the staff folder layout.
func (c *ExportController) ExportProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if r.Body != nil {
		// Empty or absent body means export everything
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	ctx := context.Background()
	var (
		products []models.Product
		err      error
	)
	if len(req.MNumbers) == 0 {
		products, err = c.repository.GetAll(ctx)
	} else {
		products, err = c.repository.GetByMNumbers(ctx, req.MNumbers)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load products: %v", err), http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		http.Error(w, "No products to export", http.StatusNotFound)
		return
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}

	data, err := c.exportService.ExportProducts(refs)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build export: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("signmaker-export-%s.zip", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
