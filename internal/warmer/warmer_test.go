package warmer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-content-cache/internal/models"
	"go-content-cache/internal/retry"
)

// listSource is a canned ContentSource for URL discovery.
type listSource struct {
	slugs      []models.PostSlug
	categories []models.Category
	tags       []models.Tag
	authors    []models.Author
	slugsErr   error
}

func (s *listSource) AllPostSlugs(ctx context.Context) ([]models.PostSlug, error) {
	return s.slugs, s.slugsErr
}

func (s *listSource) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *listSource) Tags(ctx context.Context, first int) ([]models.Tag, error) {
	return s.tags, nil
}

func (s *listSource) Users(ctx context.Context, first int) ([]models.Author, error) {
	return s.authors, nil
}

func (s *listSource) AllPosts(ctx context.Context, first int, after string) (*models.PostConnection, error) {
	return nil, nil
}

func (s *listSource) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return nil, nil
}

func (s *listSource) GeneralSettings(ctx context.Context) (*models.Settings, error) {
	return nil, nil
}

func (s *listSource) PostsByCategory(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return nil, nil
}

func (s *listSource) PostsByTag(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return nil, nil
}

func (s *listSource) PostsByAuthor(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return nil, nil
}

func (s *listSource) Search(ctx context.Context, term string, first int, after string) (*models.PostConnection, error) {
	return nil, nil
}

func (s *listSource) RecentPosts(ctx context.Context, first int) ([]models.Post, error) {
	return nil, nil
}

func newTestWarmer(source *listSource) *Warmer {
	w := New(source, zap.NewNop())
	w.retryCfg = retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiplier: 1}
	w.delay = 0
	w.sleep = func(time.Duration) {}
	return w
}

func TestWarmer_BuildURLListOrder(t *testing.T) {
	source := &listSource{
		slugs:      []models.PostSlug{{Slug: "first-post"}, {Slug: "second-post"}},
		categories: []models.Category{{Slug: "go"}},
		tags:       []models.Tag{{Slug: "testing"}},
		authors:    []models.Author{{Slug: "pat"}},
	}
	w := newTestWarmer(source)

	urls, err := w.BuildURLList(context.Background(), "http://localhost:3000")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://localhost:3000/",
		"http://localhost:3000/posts/first-post",
		"http://localhost:3000/posts/second-post",
		"http://localhost:3000/category/go",
		"http://localhost:3000/tag/testing",
		"http://localhost:3000/author/pat",
	}, urls)
}

func TestWarmer_BuildURLListCapsPosts(t *testing.T) {
	source := &listSource{}
	for i := 0; i < maxPostURLs+50; i++ {
		source.slugs = append(source.slugs, models.PostSlug{Slug: fmt.Sprintf("post-%d", i)})
	}
	w := newTestWarmer(source)

	urls, err := w.BuildURLList(context.Background(), "http://localhost:3000")
	require.NoError(t, err)
	assert.Len(t, urls, 1+maxPostURLs)
}

func TestWarmer_BuildURLListSlugFailureIsFatal(t *testing.T) {
	source := &listSource{
		slugsErr: models.NewQueryError(models.ErrorKindNetwork, "origin unreachable", nil),
	}
	w := newTestWarmer(source)

	_, err := w.BuildURLList(context.Background(), "http://localhost:3000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch post slugs")
}

func TestWarmer_RunVisitsEveryURL(t *testing.T) {
	var mu sync.Mutex
	var visited []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		visited = append(visited, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/posts/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	source := &listSource{
		slugs:      []models.PostSlug{{Slug: "fine"}, {Slug: "broken"}},
		categories: []models.Category{{Slug: "go"}},
	}
	w := newTestWarmer(source)

	summary, err := w.Run(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed, "a failing page must not abort the run")
	assert.Equal(t, []string{"/", "/posts/fine", "/posts/broken", "/category/go"}, visited)
}

func TestWarmer_RunStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	source := &listSource{
		slugs: []models.PostSlug{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}},
	}
	w := newTestWarmer(source)

	ctx, cancel := context.WithCancel(context.Background())
	visits := 0
	w.sleep = func(time.Duration) {
		visits++
		if visits == 2 {
			cancel()
		}
	}

	summary, err := w.Run(ctx, server.URL)
	require.Error(t, err)
	assert.Less(t, summary.Succeeded, 4)
}
