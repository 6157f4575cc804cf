package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-content-cache/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestExecute_Success(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "GetCategories")

		_, _ = w.Write([]byte(`{"data":{"categories":{"nodes":[{"id":"1","name":"Tech","slug":"tech"}]}}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	result, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[{"id":"1","name":"Tech","slug":"tech"}]}`, string(result.Data))
}

func TestExecute_BearerCredentialAttached(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"categories":{"nodes":[]}}}`))
	})

	client := NewClient(server.URL, "secret-token", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})
	assert.NoError(t, err)
}

func TestExecute_NoCredentialHeaderWhenUnset(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"categories":{"nodes":[]}}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})
	assert.NoError(t, err)
}

func TestExecute_UnknownQueryName(t *testing.T) {
	client := NewClient("http://unused.invalid", "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: "NoSuchQuery"})

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindInvalidQuery, qe.Kind)
	assert.False(t, qe.Retryable())
}

func TestExecute_NonSuccessStatus(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindUpstreamError, qe.Kind)
	assert.True(t, qe.Retryable())
}

func TestExecute_MalformedBody(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindInvalidResponse, qe.Kind)
}

func TestExecute_GraphQLErrorsWithoutData(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"categories":null},"errors":[{"message":"internal server error"}]}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindUpstreamError, qe.Kind)
	assert.Contains(t, qe.Message, "internal server error")
}

func TestExecute_GraphQLErrorsWithUsableData(t *testing.T) {
	// Errors alongside a populated root field do not collapse to failure.
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"categories":{"nodes":[]}},"errors":[{"message":"deprecation warning"}]}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	result, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestExecute_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse all connections

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.Execute(context.Background(), models.ContentQuery{Name: models.QueryCategories})

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindNetwork, qe.Kind)
	assert.True(t, qe.Retryable())
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	assert.Equal(t, models.ErrorKindTimeout, classifyTransportError(context.DeadlineExceeded))
	assert.Equal(t, models.ErrorKindTimeout, classifyTransportError(timeoutError{}))
	assert.Equal(t, models.ErrorKindNetwork, classifyTransportError(errors.New("connection refused")))
}

func TestPostBySlug_NotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"post":null}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	_, err := client.PostBySlug(context.Background(), "no-such-post")

	var qe *models.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, models.ErrorKindNotFound, qe.Kind)
	assert.False(t, qe.Retryable())
}

func TestPostBySlug_DecodesNestedShapes(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"post":{
			"id":"cG9zdDox","title":"Hello","slug":"hello","content":"<p>body</p>",
			"date":"2026-01-02T03:04:05",
			"author":{"node":{"name":"Jane Doe","slug":"jane","avatar":{"url":"https://example.com/a.png"}}},
			"featuredImage":{"node":{"sourceUrl":"https://example.com/img.jpg","altText":"alt","mediaDetails":{"width":800,"height":600}}},
			"categories":{"nodes":[{"name":"Tech","slug":"tech"}]},
			"tags":{"nodes":[{"name":"Go","slug":"go"}]}
		}}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	post, err := client.PostBySlug(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.Author)
	assert.Equal(t, "Jane Doe", post.Author.Name)
	assert.Equal(t, "https://example.com/a.png", post.Author.AvatarURL)
	require.NotNil(t, post.FeaturedImage)
	assert.Equal(t, 800, post.FeaturedImage.Width)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, "tech", post.Categories[0].Slug)
}

func TestAllPostSlugs_Decodes(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"posts":{"nodes":[{"slug":"p1"},{"slug":"p2"}]}}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	slugs, err := client.AllPostSlugs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.PostSlug{{Slug: "p1"}, {Slug: "p2"}}, slugs)
}

func TestPostsByCategory_DecodesTermWithPosts(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"category":{
			"name":"Tech","description":"tech posts",
			"posts":{"pageInfo":{"hasNextPage":true,"endCursor":"abc"},"nodes":[{"id":"1","title":"T","slug":"t","date":"2026-01-01"}]}
		}}}`))
	})

	client := NewClient(server.URL, "", zap.NewNop())
	term, err := client.PostsByCategory(context.Background(), "tech", 10, "")

	require.NoError(t, err)
	assert.Equal(t, "Tech", term.Name)
	assert.Equal(t, "tech", term.Slug) // filled from the request when absent
	assert.True(t, term.Posts.PageInfo.HasNextPage)
	require.Len(t, term.Posts.Nodes, 1)
	assert.Equal(t, "t", term.Posts.Nodes[0].Slug)
}
