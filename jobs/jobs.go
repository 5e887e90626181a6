// Package jobs runs long-lived admin tasks (batch rendering, exports, icon
// sync) on a small background worker pool so HTTP handlers can return
// immediately with a job ID the frontend polls.
package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job statuses
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	workerCount = 2
	queueSize   = 64
)

// Job tracks the progress of one background task. Fields are guarded by mu;
// use Snapshot to read a consistent copy.
type Job struct {
	ID          string
	Name        string
	Status      string
	Progress    int
	Total       int
	Message     string
	Result      interface{}
	Error       string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	mu sync.Mutex
	fn func(*Job) (interface{}, error)
}

// Snapshot is a point-in-time copy of a job, safe to pass around and encode.
type Snapshot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Progress    int         `json:"progress"`
	Total       int         `json:"total"`
	Message     string      `json:"message"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// SetProgress updates the job's progress counters and message.
// Safe to call from the task function while the job is running.
func (j *Job) SetProgress(progress, total int, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress = progress
	j.Total = total
	j.Message = message
}

// Snapshot returns a copy of the job safe for JSON encoding.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Snapshot{
		ID:          j.ID,
		Name:        j.Name,
		Status:      j.Status,
		Progress:    j.Progress,
		Total:       j.Total,
		Message:     j.Message,
		Result:      j.Result,
		Error:       j.Error,
		CreatedAt:   j.CreatedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}

// Manager owns the job registry and the worker pool
type Manager struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	queue  chan *Job
	wg     sync.WaitGroup
	once   sync.Once
	closed bool
}

// NewManager creates a Manager with its workers started
func NewManager() *Manager {
	m := &Manager{
		jobs:  make(map[string]*Job),
		queue: make(chan *Job, queueSize),
	}
	for i := 0; i < workerCount; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

// Enqueue registers a new job and schedules fn on the worker pool.
// fn receives the job so it can report progress; its return value becomes
// the job result. After Shutdown the job is recorded as failed instead of
// scheduled.
func (m *Manager) Enqueue(name string, fn func(*Job) (interface{}, error)) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		fn:        fn,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	if m.closed {
		now := time.Now().UTC()
		job.Status = StatusFailed
		job.Error = "job manager is shut down"
		job.CompletedAt = &now
		m.mu.Unlock()
		log.Printf("❌ Rejected job %s (%s): manager is shut down", job.ID, name)
		return job
	}
	// Send while holding the lock so Shutdown cannot close the queue
	// between the closed check and the send. Workers receive without
	// taking the lock, so the queue keeps draining.
	m.queue <- job
	m.mu.Unlock()
	log.Printf("📋 Enqueued job %s (%s)", job.ID, name)
	return job
}

// Get returns the job with the given ID, or nil if unknown
func (m *Manager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// List returns snapshots of all jobs, newest first
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Snapshot, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j.Snapshot())
	}
	for i := 0; i < len(out); i++ {
		for k := i + 1; k < len(out); k++ {
			if out[k].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[k] = out[k], out[i]
			}
		}
	}
	return out
}

// Shutdown stops accepting jobs and waits for running workers to drain
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.queue)
	})
	m.wg.Wait()
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for job := range m.queue {
		m.run(job)
	}
}

func (m *Manager) run(job *Job) {
	now := time.Now().UTC()
	job.mu.Lock()
	job.Status = StatusRunning
	job.StartedAt = &now
	job.mu.Unlock()

	result, err := job.fn(job)

	done := time.Now().UTC()
	job.mu.Lock()
	job.CompletedAt = &done
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		job.mu.Unlock()
		log.Printf("❌ Job %s (%s) failed: %v", job.ID, job.Name, err)
		return
	}
	job.Status = StatusCompleted
	job.Result = result
	job.mu.Unlock()
	log.Printf("✓ Job %s (%s) completed", job.ID, job.Name)
}
