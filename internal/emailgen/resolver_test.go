package emailgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/registry"
)

type fakeSearcher struct {
	results map[string][]WebResult
	err     error
}

func (s *fakeSearcher) WebSearch(_ context.Context, query string, _ int) ([]WebResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	for key, res := range s.results {
		if strings.Contains(query, key) {
			return res, nil
		}
	}
	return nil, nil
}

type fakeDirectory struct {
	byCompany DirectoryRecord
	byDomain  DirectoryRecord
	err       error
}

func (d *fakeDirectory) ByCompany(context.Context, string) (DirectoryRecord, error) {
	return d.byCompany, d.err
}

func (d *fakeDirectory) ByDomain(context.Context, string) (DirectoryRecord, error) {
	return d.byDomain, d.err
}

type fakeOrgSearch struct {
	domain string
	err    error
}

func (o *fakeOrgSearch) PrimaryDomain(context.Context, string) (string, error) {
	return o.domain, o.err
}

func TestRootDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.acme.com/careers", "acme.com"},
		{"https://jobs.acme.com/listing/1", "acme.com"},
		{"https://acme.co.uk", "co.uk"},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, RootDomain(tt.url))
		})
	}
}

func TestDiscoverDomainVoting(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]WebResult{
			"careers": {
				{URL: "https://www.acme.com/careers"},
				{URL: "https://boards.greenhouse.io/acme"},
				{URL: "https://acme.com/contact"},
				{URL: "https://othercorp.com/about"},
			},
		},
	}
	r := NewResolver(registry.Default(), searcher, nil, nil)

	domain := r.DiscoverDomain(context.Background(), "Acme")
	assert.Equal(t, "acme.com", domain)
}

func TestDiscoverDomainTieBreaksByFirstSeen(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]WebResult{
			"careers": {
				{URL: "https://first.com/a"},
				{URL: "https://second.com/b"},
			},
		},
	}
	r := NewResolver(registry.Default(), searcher, nil, nil)

	assert.Equal(t, "first.com", r.DiscoverDomain(context.Background(), "Acme"))
}

func TestDiscoverDomainFallsThroughTiers(t *testing.T) {
	searcher := &fakeSearcher{err: assert.AnError}
	directory := &fakeDirectory{byCompany: DirectoryRecord{Domain: "acme.com"}}
	r := NewResolver(registry.Default(), searcher, directory, nil)

	assert.Equal(t, "acme.com", r.DiscoverDomain(context.Background(), "Acme"))
}

func TestDiscoverDomainOrgSearchLastTier(t *testing.T) {
	searcher := &fakeSearcher{err: assert.AnError}
	directory := &fakeDirectory{err: assert.AnError}
	org := &fakeOrgSearch{domain: "acme.io"}
	r := NewResolver(registry.Default(), searcher, directory, org)

	assert.Equal(t, "acme.io", r.DiscoverDomain(context.Background(), "Acme"))
}

func TestDiscoverDomainAllTiersEmpty(t *testing.T) {
	r := NewResolver(registry.Default(), nil, nil, nil)
	assert.Empty(t, r.DiscoverDomain(context.Background(), "Acme"))
}

func TestDiscoverPatternMinesLocals(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]WebResult{
			"@acme.com": {
				{Title: "Contact jane.doe@acme.com for roles"},
				{Content: "or reach john.smith@acme.com"},
				{URL: "https://acme.com/staff/amy.jones@acme.com"},
			},
		},
	}
	r := NewResolver(registry.Default(), searcher, nil, nil)

	assert.Equal(t, "{first}.{last}", r.DiscoverPattern(context.Background(), "acme.com", "Acme"))
}

func TestDiscoverPatternRejectsNonCanonicalDirectoryAnswer(t *testing.T) {
	directory := &fakeDirectory{byDomain: DirectoryRecord{Pattern: "{last}.{first}"}}
	r := NewResolver(registry.Default(), nil, directory, nil)

	assert.Empty(t, r.DiscoverPattern(context.Background(), "acme.com", "Acme"))
}

func TestDiscoverPatternAcceptsCanonicalDirectoryAnswer(t *testing.T) {
	directory := &fakeDirectory{byDomain: DirectoryRecord{Pattern: "{f}{last}"}}
	r := NewResolver(registry.Default(), nil, directory, nil)

	assert.Equal(t, "{f}{last}", r.DiscoverPattern(context.Background(), "acme.com", "Acme"))
}

func TestFindEmailsEnrichesContacts(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]WebResult{
			"careers":   {{URL: "https://acme.com/careers"}},
			"@acme.com": {{Title: "jane.doe@acme.com"}},
		},
	}
	r := NewResolver(registry.Default(), searcher, nil, nil)

	contacts := []model.Contact{
		{Name: "John Smith", ProfileURL: "https://linkedin.com/in/johnsmith"},
		{Name: "Madonna", ProfileURL: "https://linkedin.com/in/madonna"},
	}
	out := r.FindEmails(context.Background(), "Acme", contacts)

	require.Len(t, out, 2)
	assert.Equal(t, "john.smith@acme.com", out[0].Email)
	// Unsplittable name passes through unchanged.
	assert.Empty(t, out[1].Email)

	// Inputs are snapshots; the originals are untouched.
	assert.Empty(t, contacts[0].Email)
}

func TestFindEmailsNoDomainPassesThrough(t *testing.T) {
	r := NewResolver(registry.Default(), nil, nil, nil)

	contacts := []model.Contact{{Name: "John Smith"}}
	out := r.FindEmails(context.Background(), "Acme", contacts)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Email)
}
