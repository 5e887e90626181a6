package service

import "github.com/NBNEORIGIN/signmaker/models"

// ExportServiceInterface defines the contract for staff export packages
type ExportServiceInterface interface {
	ExportProducts(products []*models.Product) ([]byte, error)
}
