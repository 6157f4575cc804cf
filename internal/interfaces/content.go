package interfaces

import (
	"context"

	"go-content-cache/internal/models"
)

// QueryExecutor issues one named content query against the origin API and
// returns its raw result. Exactly one outbound call per invocation; retry
// belongs to the caller. All failures are normalized to *models.QueryError.
type QueryExecutor interface {
	Execute(ctx context.Context, query models.ContentQuery) (*models.QueryResult, error)
}

// ContentSource is the typed view over the origin API: one method per named
// query, decoded into models at the boundary. Implementations classify every
// failure as *models.QueryError.
type ContentSource interface {
	AllPosts(ctx context.Context, first int, after string) (*models.PostConnection, error)
	PostBySlug(ctx context.Context, slug string) (*models.Post, error)
	AllPostSlugs(ctx context.Context) ([]models.PostSlug, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Tags(ctx context.Context, first int) ([]models.Tag, error)
	Users(ctx context.Context, first int) ([]models.Author, error)
	GeneralSettings(ctx context.Context) (*models.Settings, error)
	PostsByCategory(ctx context.Context, slug string, first int, after string) (*models.Term, error)
	PostsByTag(ctx context.Context, slug string, first int, after string) (*models.Term, error)
	PostsByAuthor(ctx context.Context, slug string, first int, after string) (*models.Term, error)
	Search(ctx context.Context, term string, first int, after string) (*models.PostConnection, error)
	RecentPosts(ctx context.Context, first int) ([]models.Post, error)
}
