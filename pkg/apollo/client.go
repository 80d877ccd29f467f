// Package apollo provides a client for the Apollo.io organization search
// API, used to resolve a company name to its primary web domain.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the Apollo organization lookup.
type Client interface {
	// PrimaryDomain returns the top-matching organization's primary domain,
	// or "" when Apollo has no match.
	PrimaryDomain(ctx context.Context, company string) (string, error)
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apollo: status %d: %s", e.Status, e.Body)
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

// NewClient creates an Apollo client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.apollo.io/v1/organizations/search",
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	QOrganizationName string `json:"q_organization_name"`
	Page              int    `json:"page"`
	PerPage           int    `json:"per_page"`
}

type searchResponse struct {
	Organizations []struct {
		PrimaryDomain string `json:"primary_domain"`
	} `json:"organizations"`
}

func (c *httpClient) PrimaryDomain(ctx context.Context, company string) (string, error) {
	payload, err := json.Marshal(searchRequest{
		QOrganizationName: company,
		Page:              1,
		PerPage:           1,
	})
	if err != nil {
		return "", eris.Wrap(err, "apollo: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		bytes.NewReader(payload))
	if err != nil {
		return "", eris.Wrap(err, "apollo: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "apollo: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "apollo: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", eris.Wrap(err, "apollo: unmarshal response")
	}
	if len(parsed.Organizations) == 0 {
		return "", nil
	}
	return parsed.Organizations[0].PrimaryDomain, nil
}
