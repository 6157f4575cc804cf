package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-content-cache/internal/freshness"
	"go-content-cache/internal/interfaces/mock"
	"go-content-cache/internal/models"
)

// mockCache implements the Cache interface for testing
type mockCache struct {
	data map[string]models.CacheEntry
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]models.CacheEntry)}
}

func (m *mockCache) Get(key string) (*models.CacheEntry, bool) {
	entry, found := m.data[key]
	if !found || entry.IsExpired() {
		return nil, false
	}
	return &entry, true
}

func (m *mockCache) GetStale(key string) (*models.CacheEntry, bool) {
	return m.Get(key)
}

func (m *mockCache) Set(key string, entry models.CacheEntry) {
	m.data[key] = entry
}

func (m *mockCache) Delete(key string) {
	delete(m.data, key)
}

func (m *mockCache) MarkStale(key string) {
	entry, found := m.data[key]
	if !found {
		return
	}
	entry.StaleAt = time.Now().Unix()
	m.data[key] = entry
}

const testSecret = "test-secret"

func setupServer(t *testing.T, generator *mock.MockPageGenerator) (*Server, *mockCache) {
	t.Helper()
	cache := newMockCache()
	policy := freshness.NewPolicy(cache, generator, freshness.DefaultRules(), testSecret, zaptest.NewLogger(t))
	return NewServer(policy, zaptest.NewLogger(t)), cache
}

func doRequest(server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	server.createRouter().ServeHTTP(recorder, req)
	return recorder
}

func TestServer_HomeMissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	generator := mock.NewMockPageGenerator(ctrl)
	generator.EXPECT().
		Generate(gomock.Any(), models.PageKey{Type: models.PageTypeHome}).
		Return(&models.GeneratedPage{Payload: map[string]string{"title": "home"}}, nil).
		Times(1)

	server, _ := setupServer(t, generator)

	recorder := doRequest(server, "GET", "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "miss", recorder.Header().Get(cacheStatusHeader))
	assert.JSONEq(t, `{"title":"home"}`, recorder.Body.String())

	recorder = doRequest(server, "GET", "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "hit", recorder.Header().Get(cacheStatusHeader))
}

func TestServer_PostBySlug(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	generator := mock.NewMockPageGenerator(ctrl)
	generator.EXPECT().
		Generate(gomock.Any(), models.PageKey{Type: models.PageTypePost, Slug: "hello-world"}).
		Return(&models.GeneratedPage{Payload: map[string]string{"title": "Hello World"}}, nil)

	server, _ := setupServer(t, generator)

	recorder := doRequest(server, "GET", "/posts/hello-world", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"title":"Hello World"}`, recorder.Body.String())
}

func TestServer_PostNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	generator := mock.NewMockPageGenerator(ctrl)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, models.NewQueryError(models.ErrorKindNotFound, "post not found", nil))

	server, _ := setupServer(t, generator)

	recorder := doRequest(server, "GET", "/posts/no-such-post", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestServer_GeneratorFailureIsServiceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	generator := mock.NewMockPageGenerator(ctrl)
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, models.NewQueryError(models.ErrorKindNetwork, "origin unreachable", nil))

	server, _ := setupServer(t, generator)

	recorder := doRequest(server, "GET", "/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "unreachable", "upstream details must not leak")
}

func TestServer_SearchRequiresQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "GET", "/search", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_SearchPassesQueryTerm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	generator := mock.NewMockPageGenerator(ctrl)
	generator.EXPECT().
		Generate(gomock.Any(), models.PageKey{Type: models.PageTypeSearch, Slug: "golang"}).
		Return(&models.GeneratedPage{Payload: map[string]string{"query": "golang"}}, nil)

	server, _ := setupServer(t, generator)

	recorder := doRequest(server, "GET", "/search?q=golang", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "bypass", recorder.Header().Get(cacheStatusHeader))
}

func TestServer_RevalidatePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, cache := setupServer(t, mock.NewMockPageGenerator(ctrl))
	cache.Set("/posts/p1", models.NewCacheEntry([]byte("x"), models.TTL{Fresh: time.Hour, Stale: time.Hour}))

	recorder := doRequest(server, "POST", "/api/revalidate", models.InvalidationRequest{
		Path:   "/posts/p1",
		Secret: testSecret,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var result models.InvalidationResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.Revalidated)
	assert.Equal(t, "/posts/p1", result.Path)
	assert.NotZero(t, result.Now)

	entry, found := cache.Get("/posts/p1")
	require.True(t, found)
	assert.False(t, entry.IsFresh())
}

func TestServer_RevalidateBadSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "POST", "/api/revalidate", models.InvalidationRequest{
		Path:   "/",
		Secret: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestServer_RevalidateMissingTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "POST", "/api/revalidate", models.InvalidationRequest{
		Secret: testSecret,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_RevalidateMalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	req := httptest.NewRequest("POST", "/api/revalidate", bytes.NewReader([]byte("not json")))
	recorder := httptest.NewRecorder()
	server.createRouter().ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_TrackView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "POST", "/api/track-view", trackViewRequest{PostID: "42"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
}

func TestServer_TrackViewRequiresPostID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "POST", "/api/track-view", trackViewRequest{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server, _ := setupServer(t, mock.NewMockPageGenerator(ctrl))

	recorder := doRequest(server, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
}
