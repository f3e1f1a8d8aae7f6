package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/logger"
	"commitlens/internal/models"
)

// DefaultCommitLimit bounds how many commits a plain listing returns,
// matching one page of the remote API.
const DefaultCommitLimit = 30

// Client talks to the GitHub REST API. It performs no retries and keeps no
// state beyond the credential; every failure is surfaced to the caller as a
// typed error.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a GitHub client
func New(cfg config.GitHubConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// ListCommits returns up to limit commits of the repository's configured
// branch, most recent first (the remote's native ordering).
func (c *Client) ListCommits(ctx context.Context, repo config.Repository, limit int) ([]models.Commit, error) {
	if limit <= 0 {
		limit = DefaultCommitLimit
	}

	url := fmt.Sprintf("%s/repos/%s/commits?sha=%s&per_page=%d",
		c.baseURL, repo.FullName(), repo.Branch, limit)

	var payload []models.GitHubCommit
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	commits := make([]models.Commit, len(payload))
	for i, gc := range payload {
		commits[i] = gc.ToCommit()
	}

	c.log.Debugf("listed %d commits for %s", len(commits), repo.FullName())
	return commits, nil
}

// GetDiff fetches one commit and concatenates the per-file patches into a
// single diff text. Files without a patch (binary, oversized) are skipped.
func (c *Client) GetDiff(ctx context.Context, repo config.Repository, sha string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/commits/%s", c.baseURL, repo.FullName(), sha)

	var detail models.GitHubCommitDetail
	if err := c.get(ctx, url, &detail); err != nil {
		return "", err
	}

	var parts []string
	for _, file := range detail.Files {
		if file.Patch == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("File: %s\n%s", file.Filename, file.Patch))
	}

	return strings.Join(parts, "\n\n"), nil
}

// CompareCommits returns the commits between base and head in the remote's
// order (oldest first, as the compare endpoint reports them). An empty or
// inverted range yields an empty slice, not an error.
func (c *Client) CompareCommits(ctx context.Context, repo config.Repository, base, head string) ([]models.Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/compare/%s...%s", c.baseURL, repo.FullName(), base, head)

	var payload models.GitHubCompare
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	commits := make([]models.Commit, len(payload.Commits))
	for i, gc := range payload.Commits {
		commits[i] = gc.ToCommit()
	}

	return commits, nil
}

// get performs one authenticated GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperr.Internal(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "github request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "reading github response")
	}

	if resp.StatusCode != http.StatusOK {
		return c.errorFromStatus(resp, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "parsing github response")
	}
	return nil
}

// errorFromStatus maps the remote's failure signal onto the error taxonomy
func (c *Client) errorFromStatus(resp *http.Response, body []byte) error {
	var errBody models.GitHubErrorBody
	_ = json.Unmarshal(body, &errBody)
	message := errBody.Message
	if message == "" {
		message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperr.RateLimited("github: " + message)
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return apperr.RateLimited("github: " + message)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperr.Authentication("github: " + message)
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFound("github: " + message)
	default:
		return apperr.Newf(apperr.KindInternal, "github responded with status %d: %s", resp.StatusCode, message)
	}
}
