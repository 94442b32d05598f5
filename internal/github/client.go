package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://api.github.com"

// maxBodySize caps how much of an upstream response we read
const maxBodySize = 5 << 20

var (
	ErrUserNotFound    = errors.New("github user not found")
	ErrForeignReposURL = errors.New("repos url does not belong to the configured api host")
)

// StatusError is returned for any non-2xx response other than a user 404
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github api returned status %d for %s", e.StatusCode, e.URL)
}

// HTTPClient allows swapping the transport in tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// User is the subset of GET /users/{username} the app uses.
// Raw keeps the untouched payload for display and archiving.
type User struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	ReposURL    string    `json:"repos_url"`

	Raw json.RawMessage `json:"-"`
}

// Repo is one entry of the repos_url listing
type Repo struct {
	Name            string    `json:"name"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Config struct {
	BaseURL string
	Token   string // Optional personal access token
	Timeout time.Duration
}

type Client struct {
	baseURL    *url.URL
	httpClient HTTPClient
}

// NewClient creates a GitHub REST client. When httpClient is nil a client is
// built from cfg: authenticated through an oauth2 static token source if a
// token is set, plain otherwise.
func NewClient(cfg Config, httpClient HTTPClient) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
	}, nil
}

func newHTTPClient(cfg Config) *http.Client {
	var client *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), ts)
	} else {
		client = &http.Client{}
	}
	client.Timeout = cfg.Timeout
	return client
}

// User fetches a public profile. A 404 maps to ErrUserNotFound.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	endpoint := c.baseURL.String() + "/users/" + url.PathEscape(username)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user := &User{}
	err = json.Unmarshal(body, user)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user.Raw = body

	return user, nil
}

// Repos fetches the repository listing at reposURL, as returned in User.ReposURL.
func (c *Client) Repos(ctx context.Context, reposURL string) ([]Repo, error) {
	u, err := url.Parse(reposURL)
	if err != nil {
		return nil, fmt.Errorf("invalid repos url: %w", err)
	}
	if u.Host != c.baseURL.Host {
		return nil, ErrForeignReposURL
	}

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var repos []Repo
	err = json.Unmarshal(body, &repos)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repos: %w", err)
	}

	return repos, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "devlens")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
