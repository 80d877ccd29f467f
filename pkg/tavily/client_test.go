package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchScopesToLinkedIn(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"results":[
			{"url":"https://linkedin.com/in/janedoe","title":"Jane Doe - Recruiter","content":"snippet"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	results, err := c.Search(context.Background(), "acme recruiter", 5)
	require.NoError(t, err)

	assert.Equal(t, "test-key", got.APIKey)
	assert.Equal(t, "acme recruiter", got.Query)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, []string{"linkedin.com"}, got.IncludeDomains)
	assert.Equal(t, 5, got.MaxResults)

	require.Len(t, results, 1)
	assert.Equal(t, "snippet", results[0].Content)
}

func TestWebSearchIsUnscoped(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.WebSearch(context.Background(), "acme careers", 8)
	require.NoError(t, err)

	assert.Empty(t, got.IncludeDomains)
	assert.Equal(t, 8, got.MaxResults)
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q", 5)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode())
}
