// Package forge fetches repository metadata from code hosting services.
package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DescriptionProvider fetches a human-readable repository description.
type DescriptionProvider interface {
	Description(ctx context.Context, ownerRepo string) (string, error)
}

// GitHub fetches repository metadata from the public GitHub API.
type GitHub struct {
	baseURL string
	client  *http.Client
	token   string
}

// Option configures a GitHub provider.
type Option func(*GitHub)

// WithBaseURL overrides the API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(g *GitHub) {
		g.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *GitHub) {
		g.client = client
	}
}

// WithToken sets an API token for authenticated requests.
func WithToken(token string) Option {
	return func(g *GitHub) {
		g.token = token
	}
}

// NewGitHub creates a GitHub metadata provider.
func NewGitHub(opts ...Option) *GitHub {
	g := &GitHub{
		baseURL: "https://api.github.com",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Description fetches the repository description for "owner/repo".
// The caller's context bounds the request.
func (g *GitHub) Description(ctx context.Context, ownerRepo string) (string, error) {
	if strings.Count(ownerRepo, "/") != 1 {
		return "", fmt.Errorf("expected owner/repo, got %q", ownerRepo)
	}

	url := g.baseURL + "/repos/" + ownerRepo
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api: unexpected status %d for %s", resp.StatusCode, ownerRepo)
	}

	var payload struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("github api: decoding response: %w", err)
	}

	return payload.Description, nil
}
