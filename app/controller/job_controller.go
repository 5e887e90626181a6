package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/NBNEORIGIN/signmaker/jobs"
)

// JobController handles HTTP requests for background job status
type JobController struct {
	jobManager *jobs.Manager
}

// NewJobController creates a new JobController
func NewJobController(jobManager *jobs.Manager) *JobController {
	return &JobController{
		jobManager: jobManager,
	}
}

// ListJobs handles GET /admin/jobs
func (c *JobController) ListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.jobManager.List()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// GetJob handles GET /admin/jobs/{id}
func (c *JobController) GetJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/jobs/"), "/")
	if id == "" {
		http.Error(w, "job id is required", http.StatusBadRequest)
		return
	}

	job := c.jobManager.Get(id)
	if job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(job.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
