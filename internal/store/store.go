// Package store persists job postings and their discovered contacts.
package store

import (
	"context"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Store defines the persistence interface for the outreach pipeline.
// Contact rows are keyed by (job ID, normalized profile URL); writes are
// single-writer read-modify-write, so concurrent invocations against one
// job's contact set must be serialized by the caller.
type Store interface {
	// Jobs
	SaveJob(ctx context.Context, job model.JobPosting) (*model.JobPosting, error)
	UpdateJob(ctx context.Context, job model.JobPosting) error
	GetJob(ctx context.Context, jobID string) (*model.JobPosting, error)
	ListJobs(ctx context.Context) ([]model.JobPosting, error)

	// Contacts
	ReplaceContacts(ctx context.Context, jobID string, contacts []model.Contact) error
	ListContacts(ctx context.Context, jobID string) ([]model.Contact, error)
	UpdateContact(ctx context.Context, jobID string, c model.Contact) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
