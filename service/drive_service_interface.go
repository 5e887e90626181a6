package service

import "github.com/NBNEORIGIN/signmaker/models"

// DriveFile is a file entry returned from a Google Drive folder listing.
type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	GetOrCreateFolder(name string, parentID string) (string, error)
	UploadFile(name string, parentID string, mimeType string, data []byte) (string, error)
	UploadProductImages(product *models.Product, images map[string][]byte, parentID string) (map[string]string, error)
	ListFiles(folderID string) ([]DriveFile, error)
	DownloadFile(fileID string) ([]byte, error)
}
