package emailgen

import (
	"context"

	"github.com/sells-group/outreach-cli/pkg/apollo"
	"github.com/sells-group/outreach-cli/pkg/hunter"
	"github.com/sells-group/outreach-cli/pkg/tavily"
)

// TavilySearcher adapts the Tavily client's unscoped search to the
// resolver's WebSearcher.
type TavilySearcher struct {
	Client tavily.Client
}

func (s *TavilySearcher) WebSearch(ctx context.Context, query string, maxResults int) ([]WebResult, error) {
	hits, err := s.Client.WebSearch(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]WebResult, len(hits))
	for i, h := range hits {
		out[i] = WebResult{URL: h.URL, Title: h.Title, Content: h.Content}
	}
	return out, nil
}

// HunterDirectory adapts the Hunter client to the resolver's Directory.
type HunterDirectory struct {
	Client hunter.Client
}

func (d *HunterDirectory) ByCompany(ctx context.Context, name string) (DirectoryRecord, error) {
	rec, err := d.Client.ByCompany(ctx, name)
	if err != nil {
		return DirectoryRecord{}, err
	}
	return DirectoryRecord{Domain: rec.Domain, Pattern: rec.Pattern}, nil
}

func (d *HunterDirectory) ByDomain(ctx context.Context, domain string) (DirectoryRecord, error) {
	rec, err := d.Client.ByDomain(ctx, domain)
	if err != nil {
		return DirectoryRecord{}, err
	}
	return DirectoryRecord{Domain: rec.Domain, Pattern: rec.Pattern}, nil
}

// ApolloOrgSearch adapts the Apollo client to the resolver's OrgSearch.
type ApolloOrgSearch struct {
	Client apollo.Client
}

func (o *ApolloOrgSearch) PrimaryDomain(ctx context.Context, company string) (string, error) {
	return o.Client.PrimaryDomain(ctx, company)
}
