package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/NBNEORIGIN/signmaker/models"
	"github.com/NBNEORIGIN/signmaker/utils"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	folderMimeType  = "application/vnd.google-apps.folder"
	imagesSubfolder = "002 Images"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// GetOrCreateFolder finds a folder by name under parentID, creating it when missing.
// Returns the folder's file ID.
func (ds *DriveService) GetOrCreateFolder(name string, parentID string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false",
		strings.ReplaceAll(name, "'", "\\'"), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	r, err := ds.client.Files.List().
		Q(query).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for folder %s: %w", name, err)
	}

	if len(r.Files) > 0 {
		return r.Files[0].Id, nil
	}

	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	folder, err := ds.client.Files.Create(meta).
		Fields("id").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}

	log.Printf("📁 Created Drive folder: %s (id: %s)", name, folder.Id)
	return folder.Id, nil
}

// UploadFile uploads data to a Drive folder and returns the public URL of the file
func (ds *DriveService) UploadFile(name string, parentID string, mimeType string, data []byte) (string, error) {
	meta := &drive.File{
		Name: name,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	file, err := ds.client.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	return fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id), nil
}

// UploadProductImages uploads the rendered images for a product into its Drive folder.
// The product folder is created under parentID using the staff naming convention, with
// an "002 Images" subfolder holding the PNG and flattened JPEG for each image kind.
// Returns a map of image kind to the PNG's public URL.
func (ds *DriveService) UploadProductImages(product *models.Product, images map[string][]byte, parentID string) (map[string]string, error) {
	folderName := utils.ExportFolderName(product.MNumber, product.Description, product.Color, product.Size, product.MountingType)

	productFolderID, err := ds.GetOrCreateFolder(folderName, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare product folder: %w", err)
	}

	imagesFolderID, err := ds.GetOrCreateFolder(imagesSubfolder, productFolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare images folder: %w", err)
	}

	urls := make(map[string]string)
	for _, kind := range utils.ImageKinds {
		pngData, ok := images[kind]
		if !ok {
			continue
		}

		baseName := fmt.Sprintf("%s - %s", product.MNumber, utils.ImageKindNumbers[kind])

		pngURL, err := ds.UploadFile(baseName+".png", imagesFolderID, "image/png", pngData)
		if err != nil {
			return urls, fmt.Errorf("failed to upload %s PNG for %s: %w", kind, product.MNumber, err)
		}
		urls[kind] = pngURL
		log.Printf("✓ Uploaded %s.png for %s", baseName, product.MNumber)

		jpegData, err := FlattenToJPEG(pngData)
		if err != nil {
			log.Printf("⚠️  Failed to flatten %s to JPEG for %s: %v", kind, product.MNumber, err)
			continue
		}
		if _, err := ds.UploadFile(baseName+".jpg", imagesFolderID, "image/jpeg", jpegData); err != nil {
			log.Printf("⚠️  Failed to upload %s JPEG for %s: %v", kind, product.MNumber, err)
		}
	}

	return urls, nil
}

// ListFiles lists all files in a Google Drive folder
func (ds *DriveService) ListFiles(folderID string) ([]DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var files []DriveFile
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, f := range r.Files {
			files = append(files, DriveFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}

// DownloadFile downloads the content of a Drive file by ID
func (ds *DriveService) DownloadFile(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).
		SupportsAllDrives(true).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	return data, nil
}
