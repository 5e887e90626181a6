package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// IconSyncService downloads the icon library from Google Drive into the local icons directory
// Implements IconSyncServiceInterface
type IconSyncService struct {
	driveService DriveServiceInterface
	iconsDir     string
}

// NewIconSyncService creates a new IconSyncService instance
func NewIconSyncService(driveService DriveServiceInterface, iconsDir string) *IconSyncService {
	return &IconSyncService{
		driveService: driveService,
		iconsDir:     iconsDir,
	}
}

// Ensure IconSyncService implements IconSyncServiceInterface
var _ IconSyncServiceInterface = (*IconSyncService)(nil)

var iconMimeTypes = map[string]bool{
	"image/svg+xml": true,
	"image/png":     true,
}

// SyncIcons downloads all icons from a Google Drive folder into the icons directory.
// Icons that already exist locally are skipped, as are duplicate file names within
// the same folder listing.
// Returns: total icons found, downloaded count, skipped count, list of errors, and error if fatal
func (s *IconSyncService) SyncIcons(folderID string) (int, int, int, []string, error) {
	log.Printf("🔄 Starting icon sync for folder: %s", folderID)

	if err := os.MkdirAll(s.iconsDir, 0755); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to create icons directory: %w", err)
	}

	files, err := s.driveService.ListFiles(folderID)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to list icons from Drive: %w", err)
	}

	var icons []DriveFile
	for _, f := range files {
		if iconMimeTypes[strings.ToLower(f.MimeType)] {
			icons = append(icons, f)
		}
	}

	log.Printf("📦 Found %d icons to sync", len(icons))

	total := len(icons)
	downloaded := 0
	skipped := 0
	var errors []string

	// Track used file names to avoid duplicates within one listing
	usedFileNames := make(map[string]bool)

	for _, icon := range icons {
		if usedFileNames[icon.Name] {
			log.Printf("⏭️  Skipping duplicate file name: %s", icon.Name)
			skipped++
			continue
		}
		usedFileNames[icon.Name] = true

		localPath := filepath.Join(s.iconsDir, icon.Name)
		if _, err := os.Stat(localPath); err == nil {
			log.Printf("⏭️  Skipping %s (already exists locally)", icon.Name)
			skipped++
			continue
		}

		data, err := s.driveService.DownloadFile(icon.ID)
		if err != nil {
			msg := fmt.Sprintf("failed to download %s: %v", icon.Name, err)
			log.Printf("❌ %s", msg)
			errors = append(errors, msg)
			continue
		}

		if err := os.WriteFile(localPath, data, 0644); err != nil {
			msg := fmt.Sprintf("failed to save %s: %v", icon.Name, err)
			log.Printf("❌ %s", msg)
			errors = append(errors, msg)
			continue
		}

		log.Printf("✓ Downloaded %s", icon.Name)
		downloaded++
	}

	log.Printf("🎉 Icon sync completed: %d downloaded, %d skipped, %d total", downloaded, skipped, total)
	return total, downloaded, skipped, errors, nil
}
