package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/logger"
)

var testRepo = config.Repository{Name: "widgets", Owner: "acme", Repo: "widgets", Branch: "main"}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(config.GitHubConfig{Token: "ghp_test", APIURL: srv.URL}, logger.Discard())
	return client, srv
}

func TestListCommitsPreservesRemoteOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		assert.Equal(t, "main", r.URL.Query().Get("sha"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"sha":"c2","commit":{"message":"newer change","author":{"name":"Ada","email":"ada@acme.dev","date":"2026-08-02T10:00:00Z"}}},
			{"sha":"c1","commit":{"message":"older change","author":{"name":"Grace","email":"grace@acme.dev","date":"2026-08-01T10:00:00Z"}}}
		]`)
	})
	client, _ := newTestClient(t, mux)

	commits, err := client.ListCommits(context.Background(), testRepo, 2)
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "c2", commits[0].SHA)
	assert.Equal(t, "c1", commits[1].SHA)
	assert.Equal(t, "Ada", commits[0].Author)
	assert.Equal(t, "newer change", commits[0].Message)
}

func TestGetDiffConcatenatesPatches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/commits/c1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"c1","files":[
			{"filename":"main.go","patch":"@@ -1 +1 @@\n-old\n+new"},
			{"filename":"logo.png"},
			{"filename":"util.go","patch":"@@ -5 +5 @@\n-a\n+b"}
		]}`)
	})
	client, _ := newTestClient(t, mux)

	diff, err := client.GetDiff(context.Background(), testRepo, "c1")
	require.NoError(t, err)

	assert.Contains(t, diff, "File: main.go")
	assert.Contains(t, diff, "File: util.go")
	// Files without a patch (binary) are skipped
	assert.NotContains(t, diff, "logo.png")
	assert.Less(t, strings.Index(diff, "main.go"), strings.Index(diff, "util.go"))
}

func TestCompareCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/compare/a...b", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ahead","ahead_by":2,"total_commits":2,"commits":[
			{"sha":"c1","commit":{"message":"first","author":{"name":"Ada"}}},
			{"sha":"c2","commit":{"message":"second","author":{"name":"Ada"}}}
		]}`)
	})
	client, _ := newTestClient(t, mux)

	commits, err := client.CompareCommits(context.Background(), testRepo, "a", "b")
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "c1", commits[0].SHA)
	assert.Equal(t, "c2", commits[1].SHA)
}

func TestCompareCommitsEmptyRange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/compare/b...a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"behind","ahead_by":0,"total_commits":0,"commits":[]}`)
	})
	client, _ := newTestClient(t, mux)

	commits, err := client.CompareCommits(context.Background(), testRepo, "b", "a")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		body    string
		want    apperr.Kind
	}{
		{
			name:   "401 is authentication",
			status: http.StatusUnauthorized,
			body:   `{"message":"Bad credentials"}`,
			want:   apperr.KindAuthentication,
		},
		{
			name:   "403 without rate-limit header is authentication",
			status: http.StatusForbidden,
			body:   `{"message":"Forbidden"}`,
			want:   apperr.KindAuthentication,
		},
		{
			name:    "403 with exhausted rate limit is rate limited",
			status:  http.StatusForbidden,
			headers: map[string]string{"X-RateLimit-Remaining": "0"},
			body:    `{"message":"API rate limit exceeded"}`,
			want:    apperr.KindRateLimited,
		},
		{
			name:   "429 is rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"message":"slow down"}`,
			want:   apperr.KindRateLimited,
		},
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			body:   `{"message":"Not Found"}`,
			want:   apperr.KindNotFound,
		},
		{
			name:   "500 is internal",
			status: http.StatusInternalServerError,
			body:   `{"message":"server error"}`,
			want:   apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			_, err := client.ListCommits(context.Background(), testRepo, 1)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}
}
