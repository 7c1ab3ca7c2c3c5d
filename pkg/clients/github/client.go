package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/decocms/website/pkg/apperrors"
)

const defaultBaseURL = "https://api.github.com"

// RepoStats holds the public counters of a repository
type RepoStats struct {
	FullName string `json:"full_name"`
	Stars    int    `json:"stargazers_count"`
	Forks    int    `json:"forks_count"`
}

// Client defines the interface for reading public repository data from GitHub
type Client interface {
	GetRepoStats(ctx context.Context, repo string) (*RepoStats, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a client
type Option func(*clientImpl)

// WithBaseURL points the client at another API root
func WithBaseURL(baseURL string) Option {
	return func(c *clientImpl) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) { c.httpClient = hc }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientImpl) { c.logger = logger }
}

// NewClient creates an unauthenticated GitHub client
func NewClient(opts ...Option) Client {
	c := &clientImpl{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SplitRepo parses an "owner/repo" identifier
func SplitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.Trim(repo, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", &apperrors.ValidationError{Field: "repo", Message: fmt.Sprintf("%q is not in owner/repo form", repo)}
	}
	return owner, name, nil
}

func (c *clientImpl) GetRepoStats(ctx context.Context, repo string) (*RepoStats, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching GitHub repo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteServiceError("GitHub", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var stats RepoStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	c.logger.Debug("fetched GitHub repo stats", zap.String("repo", repo), zap.Int("stars", stats.Stars))
	return &stats, nil
}
