package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NBNEORIGIN/signmaker/models"
)

// fakeDriveService serves canned listings and file contents.
type fakeDriveService struct {
	files    []DriveFile
	contents map[string][]byte
	failIDs  map[string]bool
}

func (f *fakeDriveService) GetOrCreateFolder(name, parentID string) (string, error) {
	return "folder-" + name, nil
}

func (f *fakeDriveService) UploadFile(name, parentID, mimeType string, data []byte) (string, error) {
	return "https://drive.google.com/uc?id=fake", nil
}

func (f *fakeDriveService) UploadProductImages(product *models.Product, images map[string][]byte, parentID string) (map[string]string, error) {
	return nil, nil
}

func (f *fakeDriveService) ListFiles(folderID string) ([]DriveFile, error) {
	return f.files, nil
}

func (f *fakeDriveService) DownloadFile(fileID string) ([]byte, error) {
	if f.failIDs[fileID] {
		return nil, errors.New("download failed")
	}
	return f.contents[fileID], nil
}

func TestSyncIconsDownloadsNewFiles(t *testing.T) {
	iconsDir := t.TempDir()
	drive := &fakeDriveService{
		files: []DriveFile{
			{ID: "1", Name: "fire.svg", MimeType: "image/svg+xml"},
			{ID: "2", Name: "exit.png", MimeType: "image/png"},
			{ID: "3", Name: "notes.txt", MimeType: "text/plain"},
		},
		contents: map[string][]byte{
			"1": []byte("<svg/>"),
			"2": []byte("png-bytes"),
		},
	}

	sync := NewIconSyncService(drive, iconsDir)
	total, downloaded, skipped, errs, err := sync.SyncIcons("icons-folder")
	if err != nil {
		t.Fatalf("SyncIcons returned error: %v", err)
	}
	if total != 2 || downloaded != 2 || skipped != 0 {
		t.Errorf("total=%d downloaded=%d skipped=%d, want 2/2/0", total, downloaded, skipped)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	data, err := os.ReadFile(filepath.Join(iconsDir, "fire.svg"))
	if err != nil {
		t.Fatalf("fire.svg not written: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("fire.svg content = %q", string(data))
	}
	if _, err := os.Stat(filepath.Join(iconsDir, "notes.txt")); !os.IsNotExist(err) {
		t.Error("non-image file should not be downloaded")
	}
}

func TestSyncIconsSkipsExistingAndDuplicates(t *testing.T) {
	iconsDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(iconsDir, "fire.svg"), []byte("local"), 0644); err != nil {
		t.Fatal(err)
	}

	drive := &fakeDriveService{
		files: []DriveFile{
			{ID: "1", Name: "fire.svg", MimeType: "image/svg+xml"},
			{ID: "2", Name: "exit.png", MimeType: "image/png"},
			{ID: "3", Name: "exit.png", MimeType: "image/png"},
		},
		contents: map[string][]byte{
			"2": []byte("png-bytes"),
			"3": []byte("other-bytes"),
		},
	}

	sync := NewIconSyncService(drive, iconsDir)
	total, downloaded, skipped, _, err := sync.SyncIcons("icons-folder")
	if err != nil {
		t.Fatalf("SyncIcons returned error: %v", err)
	}
	if total != 3 || downloaded != 1 || skipped != 2 {
		t.Errorf("total=%d downloaded=%d skipped=%d, want 3/1/2", total, downloaded, skipped)
	}

	// The existing local file must not be overwritten
	data, _ := os.ReadFile(filepath.Join(iconsDir, "fire.svg"))
	if string(data) != "local" {
		t.Errorf("existing icon was overwritten: %q", string(data))
	}
}

func TestSyncIconsCollectsDownloadErrors(t *testing.T) {
	iconsDir := t.TempDir()
	drive := &fakeDriveService{
		files: []DriveFile{
			{ID: "1", Name: "fire.svg", MimeType: "image/svg+xml"},
			{ID: "2", Name: "exit.png", MimeType: "image/png"},
		},
		contents: map[string][]byte{"2": []byte("png-bytes")},
		failIDs:  map[string]bool{"1": true},
	}

	sync := NewIconSyncService(drive, iconsDir)
	total, downloaded, _, errs, err := sync.SyncIcons("icons-folder")
	if err != nil {
		t.Fatalf("SyncIcons returned error: %v", err)
	}
	if total != 2 || downloaded != 1 {
		t.Errorf("total=%d downloaded=%d, want 2/1", total, downloaded)
	}
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
}
