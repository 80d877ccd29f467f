package search

import (
	"context"
	"errors"

	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/brave"
	"github.com/sells-group/outreach-cli/pkg/ddg"
	"github.com/sells-group/outreach-cli/pkg/googlecse"
	"github.com/sells-group/outreach-cli/pkg/tavily"
)

// statusCoder is implemented by each API client's error type.
type statusCoder interface {
	StatusCode() int
}

// classify wraps a client error as a qualified backend failure.
func classify(backend string, err error) error {
	var sc statusCoder
	if errors.As(err, &sc) {
		if kind := resilience.ClassifyHTTPStatus(sc.StatusCode()); kind != "" {
			return resilience.NewBackendError(backend, kind, err)
		}
		return resilience.NewBackendError(backend, resilience.FailMalformed, err)
	}
	return resilience.NewBackendError(backend, resilience.ClassifyNetErr(err), err)
}

// DDGProvider adapts the DuckDuckGo HTML client to the cascade.
type DDGProvider struct {
	Client ddg.Client
}

func (p *DDGProvider) Name() string { return "duckduckgo" }

func (p *DDGProvider) Search(ctx context.Context, query string) ([]Result, error) {
	hits, err := p.Client.Search(ctx, query)
	if err != nil {
		if errors.Is(err, ddg.ErrBlocked) {
			return nil, resilience.NewBackendError(p.Name(), resilience.FailBlocked, err)
		}
		return nil, classify(p.Name(), err)
	}
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{URL: h.URL, Title: h.Title}
	}
	return out, nil
}

// BraveProvider adapts the Brave search client to the cascade.
type BraveProvider struct {
	Client brave.Client
	Count  int
}

func (p *BraveProvider) Name() string { return "brave" }

func (p *BraveProvider) Search(ctx context.Context, query string) ([]Result, error) {
	hits, err := p.Client.Search(ctx, query, p.Count)
	if err != nil {
		return nil, classify(p.Name(), err)
	}
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{URL: h.URL, Title: h.Title}
	}
	return out, nil
}

// TavilyProvider adapts the Tavily client's LinkedIn-scoped search to the
// cascade.
type TavilyProvider struct {
	Client tavily.Client
	Count  int
}

func (p *TavilyProvider) Name() string { return "tavily" }

func (p *TavilyProvider) Search(ctx context.Context, query string) ([]Result, error) {
	hits, err := p.Client.Search(ctx, query, p.Count)
	if err != nil {
		return nil, classify(p.Name(), err)
	}
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{URL: h.URL, Title: h.Title}
	}
	return out, nil
}

// GoogleCSEProvider adapts the Google Custom Search client to the cascade.
type GoogleCSEProvider struct {
	Client googlecse.Client
	Count  int
}

func (p *GoogleCSEProvider) Name() string { return "google" }

func (p *GoogleCSEProvider) Search(ctx context.Context, query string) ([]Result, error) {
	hits, err := p.Client.Search(ctx, query, p.Count)
	if err != nil {
		return nil, classify(p.Name(), err)
	}
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{URL: h.URL, Title: h.Title}
	}
	return out, nil
}
