// Package job defines the narrow contract this core consumes from the job
// posting service. Jobs are owned and mutated elsewhere; the core only reads
// them to validate interest preconditions and to disclose contact details
// after a paid unlock.
package job

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the job does not exist.
	ErrNotFound = errors.New("job not found")
)

const (
	// StatusOpen means the job accepts new interest.
	StatusOpen = "open"
	// StatusClosed means the job lifecycle ended.
	StatusClosed = "closed"
)

// Contact holds the homeowner's private contact fields, disclosed only through
// a paid-access interest.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Job is the read-only projection of a posted job.
type Job struct {
	ID          string
	HomeownerID string
	Title       string
	Status      string
	Contact     Contact
}

// Open reports whether the job still accepts interest.
func (j Job) Open() bool {
	return j.Status == StatusOpen
}

// Directory resolves jobs by identifier.
type Directory interface {
	Lookup(ctx context.Context, jobID string) (Job, error)
}
