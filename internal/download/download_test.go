package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	const body = `{"version": 1, "commands": [{"name": "git"}]}`
	agents := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
		if r.URL.Path == "/old/git.json" {
			http.Redirect(w, r, "/grammars/git.json", http.StatusFound)
			return
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	path, err := Fetch(context.Background(), srv.Client(), srv.URL+"/old/git.json")
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, ".json", filepath.Ext(path), "extension follows the URL")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, UserAgent, <-agents)
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.yaml")
	require.ErrorIs(t, err, ErrBadStatus)
}

func TestFetch_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", MaxSize+1)))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/huge.json")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestFetch_BadURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com/git.json", "://nope", "/local/path.json"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Fetch(context.Background(), nil, raw)
			require.ErrorIs(t, err, ErrBadURL)
		})
	}
}

func TestFetch_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, srv.Client(), srv.URL+"/git.json")
	require.ErrorIs(t, err, context.Canceled)
}
