package service

import (
	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/render"
)

// Renderer is the rasterization seam: satisfied by *render.Rasterizer in
// production and by fakes in tests.
type Renderer interface {
	Rasterize(svg []byte, opts render.Options) ([]byte, error)
}

// ImageServiceInterface defines the contract for product image generation
type ImageServiceInterface interface {
	GenerateProductImage(product *models.Product, kind string) ([]byte, error)
	GenerateAllImages(product *models.Product) map[string][]byte
	GenerateMasterSVG(product *models.Product) ([]byte, error)
}
