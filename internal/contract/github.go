package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prgauge/prgauge/schema"
)

// CommentMarker is a hidden HTML comment embedded in published reports so a
// later run can find and update its own comment instead of posting a new one.
const CommentMarker = "<!-- prgauge-report -->"

const githubPageSize = 100

// GitHubClient implements ChangeClient and CommentPublisher against the
// GitHub REST API. Change IDs are pull request numbers.
type GitHubClient struct {
	BaseURL string
	Repo    string // "owner/name"
	Token   string

	HTTPClient *http.Client
}

var (
	_ ChangeClient     = &GitHubClient{} // Compile-time check
	_ CommentPublisher = &GitHubClient{} // Compile-time check
)

// NewGitHubClient creates a GitHub API client for the given repository.
func NewGitHubClient(baseURL, repo, token string) *GitHubClient {
	return &GitHubClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Repo:       repo,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListChangedFiles implements the ChangeClient interface by paging through
// the pull request's files endpoint.
func (c *GitHubClient) ListChangedFiles(ctx context.Context, changeID string) ([]schema.ChangedFile, error) {
	number, err := parsePullNumber(changeID)
	if err != nil {
		return nil, err
	}

	var files []schema.ChangedFile
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/pulls/%d/files", c.Repo, number)
		query := url.Values{
			"per_page": {strconv.Itoa(githubPageSize)},
			"page":     {strconv.Itoa(page)},
		}

		var pageFiles []struct {
			Filename  string `json:"filename"`
			Additions int    `json:"additions"`
			Deletions int    `json:"deletions"`
		}
		if err := c.getJSON(ctx, path, query, &pageFiles); err != nil {
			return nil, err
		}

		for _, f := range pageFiles {
			files = append(files, schema.ChangedFile{
				Path:      f.Filename,
				Additions: f.Additions,
				Deletions: f.Deletions,
			})
		}
		if len(pageFiles) < githubPageSize {
			break
		}
	}
	return files, nil
}

// ListRecentMergedChangeIDs implements the ChangeClient interface. Closed
// pull requests are paged newest-first and filtered to merged ones.
func (c *GitHubClient) ListRecentMergedChangeIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	for page := 1; len(ids) < limit; page++ {
		path := fmt.Sprintf("/repos/%s/pulls", c.Repo)
		query := url.Values{
			"state":     {"closed"},
			"sort":      {"updated"},
			"direction": {"desc"},
			"per_page":  {strconv.Itoa(githubPageSize)},
			"page":      {strconv.Itoa(page)},
		}

		var pagePulls []struct {
			Number   int     `json:"number"`
			MergedAt *string `json:"merged_at"`
		}
		if err := c.getJSON(ctx, path, query, &pagePulls); err != nil {
			return nil, err
		}

		for _, p := range pagePulls {
			if p.MergedAt == nil {
				continue
			}
			ids = append(ids, strconv.Itoa(p.Number))
			if len(ids) == limit {
				break
			}
		}
		if len(pagePulls) < githubPageSize {
			break
		}
	}
	return ids, nil
}

// PublishComment implements the CommentPublisher interface. If a previous
// comment carrying CommentMarker exists on the pull request, it is updated
// in place; otherwise a new comment is created.
func (c *GitHubClient) PublishComment(ctx context.Context, changeID string, body string) error {
	number, err := parsePullNumber(changeID)
	if err != nil {
		return err
	}

	commentID, err := c.findMarkedComment(ctx, number)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return err
	}

	if commentID != 0 {
		path := fmt.Sprintf("/repos/%s/issues/comments/%d", c.Repo, commentID)
		return c.send(ctx, http.MethodPatch, path, payload)
	}
	path := fmt.Sprintf("/repos/%s/issues/%d/comments", c.Repo, number)
	return c.send(ctx, http.MethodPost, path, payload)
}

// findMarkedComment returns the ID of the existing report comment, or 0.
func (c *GitHubClient) findMarkedComment(ctx context.Context, number int) (int64, error) {
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/issues/%d/comments", c.Repo, number)
		query := url.Values{
			"per_page": {strconv.Itoa(githubPageSize)},
			"page":     {strconv.Itoa(page)},
		}

		var pageComments []struct {
			ID   int64  `json:"id"`
			Body string `json:"body"`
		}
		if err := c.getJSON(ctx, path, query, &pageComments); err != nil {
			return 0, err
		}

		for _, comment := range pageComments {
			if strings.Contains(comment.Body, CommentMarker) {
				return comment.ID, nil
			}
		}
		if len(pageComments) < githubPageSize {
			return 0, nil
		}
	}
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *GitHubClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return json.NewDecoder(resp.Body).Decode(out)
}

// send performs a request with a JSON body and discards the response body.
func (c *GitHubClient) send(ctx context.Context, method, path string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do attaches auth headers, executes the request, and maps non-2xx responses
// to errors.
func (c *GitHubClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("github API returned %d for %s %s: %s", resp.StatusCode, req.Method, req.URL.Path, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

// parsePullNumber converts a change ID into a pull request number. A leading
// '#' is tolerated so IDs can be pasted straight from GitHub.
func parsePullNumber(changeID string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(changeID), "#")
	number, err := strconv.Atoi(trimmed)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid pull request number %q", changeID)
	}
	return number, nil
}
