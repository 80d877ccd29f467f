// Package hunter provides a client for the Hunter.io domain-search API,
// which maps a company name or domain to its known email pattern.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Record is Hunter's answer for a company or domain lookup. Pattern uses
// Hunter's placeholder syntax, e.g. "{first}.{last}". Either field may be
// empty when Hunter has no data.
type Record struct {
	Domain  string
	Pattern string
}

// Client defines the Hunter domain-search operations.
type Client interface {
	ByCompany(ctx context.Context, company string) (*Record, error)
	ByDomain(ctx context.Context, domain string) (*Record, error)
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hunter: status %d: %s", e.Status, e.Body)
}

// StatusCode returns the HTTP status for failure classification.
func (e *APIError) StatusCode() int { return e.Status }

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom API endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Hunter client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.hunter.io/v2/domain-search",
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Data struct {
		Domain  string `json:"domain"`
		Pattern string `json:"pattern"`
	} `json:"data"`
}

func (c *httpClient) ByCompany(ctx context.Context, company string) (*Record, error) {
	return c.lookup(ctx, url.Values{"company": {company}, "api_key": {c.apiKey}})
}

func (c *httpClient) ByDomain(ctx context.Context, domain string) (*Record, error) {
	return c.lookup(ctx, url.Values{"domain": {domain}, "api_key": {c.apiKey}})
}

func (c *httpClient) lookup(ctx context.Context, params url.Values) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal response")
	}
	return &Record{
		Domain:  parsed.Data.Domain,
		Pattern: parsed.Data.Pattern,
	}, nil
}
