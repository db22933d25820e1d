package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vladsolntsev/weblog/internal/blog"
	"github.com/vladsolntsev/weblog/internal/config"
)

const mobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string, mtime time.Time) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	write("Hello World.txt", "Plain words.\n", time.Date(2023, 6, 10, 12, 0, 0, 0, time.Local))
	write("tech/Going Static.txt", "More words.\n", time.Date(2023, 1, 5, 12, 0, 0, 0, time.Local))

	cfg := config.Config{
		Width:      72,
		Prefix:     3,
		ContentDir: root,
		BaseURL:    "https://example.org",
		Author:     config.Author{Name: "Vlad Solntsev"},
		About:      "Notes from a small terminal.",
		Show: config.ShowFlags{
			PoweredBy: true,
			URLs:      true,
			Category:  true,
			Date:      true,
			Copyright: true,
			Separator: true,
		},
		Rewrites: map[string]string{
			"old-post": "/posts/hello-world",
			"gone":     "https://elsewhere.example/gone",
		},
	}

	return New(cfg, blog.NewFileRepository(root), zap.NewNop()).Router()
}

func get(t *testing.T, router chi.Router, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(header) > 0 {
		req.Header.Set("User-Agent", header[0])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	rec := get(t, newTestRouter(t), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Hello World")
	assert.Contains(t, rec.Body.String(), "Copyright (c)")
}

func TestSinglePost(t *testing.T) {
	rec := get(t, newTestRouter(t), "/posts/hello-world")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plain words.")
}

func TestUnknownSlugIs404(t *testing.T) {
	rec := get(t, newTestRouter(t), "/posts/no-such-post")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestCategoryListing(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/category/tech")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Going Static")

	rec = get(t, router, "/category/poetry")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchive(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/archive/2023")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello World")
	assert.Contains(t, rec.Body.String(), "Going Static")

	rec = get(t, router, "/archive/2023/6")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello World")
	assert.NotContains(t, rec.Body.String(), "Going Static")
}

func TestArchiveEmptyIs404(t *testing.T) {
	rec := get(t, newTestRouter(t), "/archive/1999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchiveBadDateIsDistinctFromEmpty(t *testing.T) {
	rec := get(t, newTestRouter(t), "/archive/banana")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot make sense of that date")
}

func TestRandomRedirects(t *testing.T) {
	rec := get(t, newTestRouter(t), "/random")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/posts/")
}

func TestRandomConcurrent(t *testing.T) {
	router := newTestRouter(t)

	// The shared random source must survive parallel draws.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rec := get(t, router, "/random")
				assert.Equal(t, http.StatusFound, rec.Code)
			}
		}()
	}
	wg.Wait()
}

func TestRewriteInternal(t *testing.T) {
	rec := get(t, newTestRouter(t), "/old-post")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.org/posts/hello-world", rec.Header().Get("Location"))
}

func TestRewriteExternal(t *testing.T) {
	rec := get(t, newTestRouter(t), "/gone")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://elsewhere.example/gone", rec.Header().Get("Location"))
}

func TestFeeds(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/rss.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<rss version=\"2.0\"")

	rec = get(t, router, "/rss/tech.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vlad Solntsev - Tech")

	rec = get(t, router, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sitemap/0.9")

	rec = get(t, router, "/atom.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/atom+xml; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestMobileLayout(t *testing.T) {
	router := newTestRouter(t)

	desktop := get(t, router, "/").Body.String()
	mobile := get(t, router, "/", mobileUA).Body.String()

	assert.Contains(t, desktop, "Copyright (c)")
	assert.NotContains(t, mobile, "Copyright (c)")
	assert.NotContains(t, mobile, "June 10, 2023")
}
