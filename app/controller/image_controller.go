package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/NBNEORIGIN/signmaker/jobs"
	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/repository"
	"github.com/NBNEORIGIN/signmaker/service"
)

// ImageController handles HTTP requests for product image rendering
type ImageController struct {
	repository     repository.ProductRepositoryInterface
	imageService   service.ImageServiceInterface
	driveService   service.DriveServiceInterface
	jobManager     *jobs.Manager
	imagesFolderID string
}

// NewImageController creates a new ImageController.
// driveService may be nil when Drive credentials are not configured; batch
// generation then renders without uploading.
func NewImageController(repo repository.ProductRepositoryInterface, imageService service.ImageServiceInterface, driveService service.DriveServiceInterface, jobManager *jobs.Manager, imagesFolderID string) *ImageController {
	return &ImageController{
		repository:     repo,
		imageService:   imageService,
		driveService:   driveService,
		jobManager:     jobManager,
		imagesFolderID: imagesFolderID,
	}
}

// placeholderPNG renders a flat grey stand-in image so admin grid views keep
// working when a product cannot be rendered.
func placeholderPNG() []byte {
	img := imaging.New(300, 200, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// GetProductImage handles GET /admin/products/{m_number}/image?type=main
// Always responds 200 with a PNG: the rendered image when possible, otherwise
// a placeholder.
func (c *ImageController) GetProductImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /admin/products/{m_number}/image
	path := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	mNumber := strings.TrimSuffix(path, "/image")
	if mNumber == "" || mNumber == path {
		http.Error(w, "m_number parameter is required", http.StatusBadRequest)
		return
	}

	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "main"
	}

	ctx := context.Background()
	product, err := c.repository.GetByMNumber(ctx, mNumber)
	if err != nil {
		log.Printf("⚠️  Preview for unknown product %s: %v", mNumber, err)
		w.Header().Set("Content-Type", "image/png")
		w.Write(placeholderPNG())
		return
	}

	data, err := c.imageService.GenerateProductImage(product, kind)
	if err != nil {
		log.Printf("⚠️  Preview render failed for %s (%s): %v", mNumber, kind, err)
		w.Header().Set("Content-Type", "image/png")
		w.Write(placeholderPNG())
		return
	}

	if r.URL.Query().Get("size") == "thumb" {
		thumb, err := service.Thumbnail(data)
		if err != nil {
			log.Printf("⚠️  Thumbnail failed for %s (%s): %v", mNumber, kind, err)
		} else {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(thumb)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

type generateImagesRequest struct {
	MNumbers []string `json:"m_numbers"`
}

// GenerateImages handles POST /admin/products/generate-images
// Enqueues a background job that renders every requested product and, when
// Drive is configured, uploads the results. Responds with the job snapshot.
func (c *ImageController) GenerateImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.MNumbers) == 0 {
		http.Error(w, "m_numbers is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	products, err := c.repository.GetByMNumbers(ctx, req.MNumbers)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load products: %v", err), http.StatusInternalServerError)
		return
	}
	if len(products) == 0 {
		http.Error(w, "No matching products found", http.StatusNotFound)
		return
	}

	job := c.jobManager.Enqueue("generate-images", func(j *jobs.Job) (interface{}, error) {
		return c.runGeneration(j, products)
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(job.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// runGeneration is the job body for batch image generation
func (c *ImageController) runGeneration(j *jobs.Job, products []models.Product) (interface{}, error) {
	results := make(map[string]map[string]string)
	failed := 0

	for i := range products {
		product := &products[i]
		j.SetProgress(i, len(products), fmt.Sprintf("Rendering %s", product.MNumber))

		images := c.imageService.GenerateAllImages(product)
		if len(images) == 0 {
			log.Printf("❌ No images rendered for %s", product.MNumber)
			failed++
			continue
		}

		if c.driveService != nil {
			urls, err := c.driveService.UploadProductImages(product, images, c.imagesFolderID)
			if err != nil {
				log.Printf("❌ Upload failed for %s: %v", product.MNumber, err)
				failed++
				continue
			}
			results[product.MNumber] = urls
		} else {
			kinds := make(map[string]string, len(images))
			for kind := range images {
				kinds[kind] = "rendered"
			}
			results[product.MNumber] = kinds
		}
	}

	j.SetProgress(len(products), len(products), "Finished")
	if failed == len(products) {
		return nil, fmt.Errorf("all %d products failed", failed)
	}
	return results, nil
}
