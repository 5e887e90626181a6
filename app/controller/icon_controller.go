package controller

import (
	"encoding/json"
	"net/http"

	"github.com/NBNEORIGIN/signmaker/jobs"
	"github.com/NBNEORIGIN/signmaker/service"
)

// IconController handles HTTP requests for the icon library
type IconController struct {
	syncService   service.IconSyncServiceInterface
	jobManager    *jobs.Manager
	iconsFolderID string
}

// NewIconController creates a new IconController
func NewIconController(syncService service.IconSyncServiceInterface, jobManager *jobs.Manager, iconsFolderID string) *IconController {
	return &IconController{
		syncService:   syncService,
		jobManager:    jobManager,
		iconsFolderID: iconsFolderID,
	}
}

type iconSyncResult struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// SyncIcons handles POST /admin/icons/sync
// Enqueues a background job that pulls the icon library from Google Drive.
func (c *IconController) SyncIcons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.syncService == nil {
		http.Error(w, "Google Drive is not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := c.iconsFolderID
	job := c.jobManager.Enqueue("icon-sync", func(j *jobs.Job) (interface{}, error) {
		total, downloaded, skipped, errs, err := c.syncService.SyncIcons(folderID)
		if err != nil {
			return nil, err
		}
		j.SetProgress(total, total, "Icon sync finished")
		return iconSyncResult{Total: total, Downloaded: downloaded, Skipped: skipped, Errors: errs}, nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(job.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
