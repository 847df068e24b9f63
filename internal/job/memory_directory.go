package job

import (
	"context"
	"sync"
)

// MemoryDirectory is an in-memory job directory for tests and development.
type MemoryDirectory struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemoryDirectory builds an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{jobs: make(map[string]Job)}
}

// Put stores or replaces a job.
func (d *MemoryDirectory) Put(j Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs[j.ID] = j
}

// Close marks a job closed, mimicking the external lifecycle ending.
func (d *MemoryDirectory) Close(jobID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if j, ok := d.jobs[jobID]; ok {
		j.Status = StatusClosed
		d.jobs[jobID] = j
	}
}

// Lookup fetches a job by identifier.
func (d *MemoryDirectory) Lookup(_ context.Context, jobID string) (Job, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	j, ok := d.jobs[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}
