// Package github looks up a developer's public repositories on GitHub.
package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/github"
	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

const (
	reposPerProfile = 5
	requestTimeout  = 10 * time.Second
	noProfileMsg    = "No Github profile found"
)

// Repo is the subset of a GitHub repository shown on a profile page.
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Lookup is what the profile handlers need from GitHub.
type Lookup interface {
	Repos(ctx context.Context, username string) ([]Repo, error)
}

type Config struct {
	// Token is optional; without it requests are anonymous and rate limited harder.
	Token    string
	CacheTTL time.Duration
	// BaseURL overrides https://api.github.com/, mostly for tests.
	BaseURL string
}

type Client struct {
	api   *gh.Client
	cache *cache.Cache
}

func NewClient(cfg Config) (*Client, error) {
	httpClient := &http.Client{Timeout: requestTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = requestTimeout
	}
	api := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		api.BaseURL = u
	}
	c := &Client{api: api}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c, nil
}

// Repos returns the user's first five repositories by creation date.
// A non-2xx answer from GitHub is an Upstream error, a failed round trip is Unavailable.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	key := strings.ToLower(username)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.([]Repo), nil
		}
	}

	list, resp, err := c.api.Repositories.List(ctx, username, &gh.RepositoryListOptions{
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gh.ListOptions{PerPage: reposPerProfile},
	})
	if err != nil {
		var errResp *gh.ErrorResponse
		if resp != nil || errors.As(err, &errResp) {
			return nil, apperr.Upstream(noProfileMsg, err)
		}
		return nil, apperr.Unavailable("GitHub is unreachable", err)
	}

	repos := make([]Repo, 0, len(list))
	for _, r := range list {
		repos = append(repos, Repo{
			ID:              r.GetID(),
			Name:            r.GetName(),
			FullName:        r.GetFullName(),
			HTMLURL:         r.GetHTMLURL(),
			Description:     r.GetDescription(),
			Language:        r.GetLanguage(),
			StargazersCount: r.GetStargazersCount(),
			WatchersCount:   r.GetWatchersCount(),
			ForksCount:      r.GetForksCount(),
			CreatedAt:       r.GetCreatedAt().Time.UTC(),
		})
	}
	if c.cache != nil {
		c.cache.Set(key, repos, cache.DefaultExpiration)
	}
	return repos, nil
}
