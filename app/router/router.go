package router

import (
	"net/http"
	"strings"

	"github.com/NBNEORIGIN/signmaker/app/controller"
)

type Controllers struct {
	Product *controller.ProductController
	Image   *controller.ImageController
	Export  *controller.ExportController
	Job     *controller.JobController
	Icon    *controller.IconController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Batch image generation (must be before the generic /admin/products/ route)
	http.HandleFunc("/admin/products/generate-images", controllers.Image.GenerateImages)

	// Staff export package
	http.HandleFunc("/admin/products/export", controllers.Export.ExportProducts)

	// Product collection - handles both GET (list) and POST (create)
	http.HandleFunc("/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Product.ListProducts(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Product.CreateProduct(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Product by m_number - GET, PUT, DELETE, plus the image preview suffix
	http.HandleFunc("/admin/products/", func(w http.ResponseWriter, r *http.Request) {
		// Check if this is the preview endpoint
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.Image.GetProductImage(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.Product.GetProduct(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Product.UpdateProduct(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Product.DeleteProduct(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Icon library sync
	http.HandleFunc("/admin/icons/sync", controllers.Icon.SyncIcons)

	// Job status routes
	http.HandleFunc("/admin/jobs", controllers.Job.ListJobs)
	http.HandleFunc("/admin/jobs/", controllers.Job.GetJob)
}
