// Package search implements the recruiter discovery cascade: an ordered
// list of queries executed against an ordered list of backends, with
// permanent per-call failover and profile-URL deduplication.
package search

import "context"

// Result is a single search hit from a backend.
type Result struct {
	URL   string
	Title string
}

// Provider is a search backend. A failed call returns a
// *resilience.BackendError; any failure kind removes the backend from the
// remainder of the cascade call.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
}
