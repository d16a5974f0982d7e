package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	maxListedFiles = 50
)

// Client fetches PR enrichment data from the GitHub REST API. The token is
// optional; without it, enrichment is skipped by the caller.
type Client struct {
	token  string
	logger *slog.Logger
	client *http.Client
}

// NewClient creates a GitHub REST client.
func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		token:  token,
		logger: logger.With("component", "github_client"),
		client: &http.Client{},
	}
}

type changedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// FetchChangedFiles returns a concise listing of the PR's changed files,
// truncated to keep within prompt limits. Failures degrade to an empty
// listing; enrichment is never load-bearing.
func (c *Client) FetchChangedFiles(ctx context.Context, prURL string) string {
	if prURL == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, prURL+"/files", nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("failed to fetch PR files", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("unexpected status fetching PR files", "status", resp.StatusCode)
		return ""
	}

	var files []changedFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		c.logger.Warn("failed to decode PR files", "error", err)
		return ""
	}

	if len(files) > maxListedFiles {
		files = files[:maxListedFiles]
	}
	var parts []string
	for _, f := range files {
		parts = append(parts, fmt.Sprintf("- %s (%s, +%d/-%d)", f.Filename, f.Status, f.Additions, f.Deletions))
	}
	return strings.Join(parts, "\n")
}
