package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		q := r.URL.Query()
		assert.Equal(t, "created", q.Get("sort"))
		assert.Equal(t, "asc", q.Get("direction"))
		assert.Equal(t, "5", q.Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":1,"name":"hello-world","full_name":"octocat/hello-world",
			"html_url":"https://github.com/octocat/hello-world","description":"first",
			"stargazers_count":3,"watchers_count":4,"forks_count":5,
			"created_at":"2011-01-26T19:01:12Z"}]`)
	})
	mux.HandleFunc("/users/ghost/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestReposMapsAndCaches(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c, err := NewClient(Config{BaseURL: srv.URL, CacheTTL: time.Minute})
	require.NoError(t, err)

	repos, err := c.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, Repo{
		ID:              1,
		Name:            "hello-world",
		FullName:        "octocat/hello-world",
		HTMLURL:         "https://github.com/octocat/hello-world",
		Description:     "first",
		StargazersCount: 3,
		WatchersCount:   4,
		ForksCount:      5,
		CreatedAt:       time.Date(2011, 1, 26, 19, 1, 12, 0, time.UTC),
	}, repos[0])

	_, err = c.Repos(context.Background(), "OctoCat")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second lookup served from cache")
}

func TestReposUnknownUser(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Repos(context.Background(), "ghost")
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUpstream, e.Kind)
	assert.Equal(t, "No Github profile found", e.Msg)
}

func TestReposUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base})
	require.NoError(t, err)
	_, err = c.Repos(context.Background(), "octocat")
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
}
