package jobs

import (
	"errors"
	"testing"
	"time"
)

func waitForStatus(t *testing.T, m *Manager, id string, want string) Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job := m.Get(id)
		if job == nil {
			t.Fatalf("job %s disappeared", id)
		}
		snap := job.Snapshot()
		if snap.Status == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", id, want)
	return Snapshot{}
}

func TestEnqueueRunsToCompletion(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	job := m.Enqueue("render", func(j *Job) (interface{}, error) {
		j.SetProgress(3, 3, "done rendering")
		return "ok", nil
	})

	if job.ID == "" {
		t.Fatal("expected a job ID")
	}

	snap := waitForStatus(t, m, job.ID, StatusCompleted)
	if snap.Result != "ok" {
		t.Errorf("result = %v, want ok", snap.Result)
	}
	if snap.Progress != 3 || snap.Total != 3 {
		t.Errorf("progress = %d/%d, want 3/3", snap.Progress, snap.Total)
	}
	if snap.Message != "done rendering" {
		t.Errorf("message = %q", snap.Message)
	}
	if snap.StartedAt == nil || snap.CompletedAt == nil {
		t.Error("expected start and completion timestamps")
	}
}

func TestFailedJobRecordsError(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	job := m.Enqueue("export", func(j *Job) (interface{}, error) {
		return nil, errors.New("chrome unavailable")
	})

	snap := waitForStatus(t, m, job.ID, StatusFailed)
	if snap.Error != "chrome unavailable" {
		t.Errorf("error = %q, want chrome unavailable", snap.Error)
	}
	if snap.Result != nil {
		t.Errorf("failed job should have no result, got %v", snap.Result)
	}
}

func TestEnqueueAfterShutdown(t *testing.T) {
	m := NewManager()
	m.Shutdown()

	ran := false
	job := m.Enqueue("late", func(j *Job) (interface{}, error) {
		ran = true
		return nil, nil
	})

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("status = %q, want %q", snap.Status, StatusFailed)
	}
	if snap.Error == "" {
		t.Error("expected an error message on the rejected job")
	}
	if snap.CompletedAt == nil {
		t.Error("rejected job should carry a completion timestamp")
	}
	if ran {
		t.Error("rejected job must not run")
	}
	if m.Get(job.ID) == nil {
		t.Error("rejected job should still be queryable")
	}
}

func TestGetUnknownJob(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	if job := m.Get("no-such-id"); job != nil {
		t.Errorf("expected nil for unknown job, got %+v", job)
	}
}

func TestListNewestFirst(t *testing.T) {
	m := NewManager()
	defer m.Shutdown()

	first := m.Enqueue("a", func(j *Job) (interface{}, error) { return nil, nil })
	time.Sleep(2 * time.Millisecond)
	second := m.Enqueue("b", func(j *Job) (interface{}, error) { return nil, nil })

	waitForStatus(t, m, first.ID, StatusCompleted)
	waitForStatus(t, m, second.ID, StatusCompleted)

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("expected newest job first, got %s", list[0].Name)
	}
}
