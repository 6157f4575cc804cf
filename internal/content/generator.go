package content

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
	"go-content-cache/internal/retry"
)

// Ensure Generator implements interfaces.PageGenerator
var _ interfaces.PageGenerator = (*Generator)(nil)

const (
	homePostCount   = 10
	termPostCount   = 10
	recentPostCount = 5
	searchHitCount  = 20
)

// Generator assembles page payloads from the origin API, falling back to the
// whole-dataset snapshot when the origin is unreachable. A confirmed NotFound
// from the origin propagates as an error; transient failure degrades to the
// snapshot (or a placeholder) instead, so a page is always produced for
// entities that exist.
type Generator struct {
	source   interfaces.ContentSource
	snapshot interfaces.SnapshotStore
	retryCfg retry.Config
	logger   *zap.Logger
}

// NewGenerator creates a page generator over the origin source and snapshot
// fallback.
func NewGenerator(source interfaces.ContentSource, snapshot interfaces.SnapshotStore, logger *zap.Logger) *Generator {
	return &Generator{
		source:   source,
		snapshot: snapshot,
		retryCfg: retry.DefaultConfig,
		logger:   logger,
	}
}

// Generate builds the payload for one page key.
func (g *Generator) Generate(ctx context.Context, key models.PageKey) (*models.GeneratedPage, error) {
	switch key.Type {
	case models.PageTypeHome:
		return g.generateHome(ctx)
	case models.PageTypePost:
		return g.generatePost(ctx, key.Slug)
	case models.PageTypeCategory:
		return g.generateTerm(ctx, key, g.source.PostsByCategory)
	case models.PageTypeTag:
		return g.generateTerm(ctx, key, g.source.PostsByTag)
	case models.PageTypeAuthor:
		return g.generateTerm(ctx, key, g.source.PostsByAuthor)
	case models.PageTypePortfolio:
		return g.generatePortfolio(key.Slug)
	case models.PageTypeSearch:
		return g.generateSearch(ctx, key.Slug)
	default:
		return nil, fmt.Errorf("unknown page type %q", key.Type)
	}
}

func (g *Generator) generateHome(ctx context.Context) (*models.GeneratedPage, error) {
	tags := []string{"posts", "settings", "categories"}

	posts, err := retry.Do(ctx, g.retryCfg, "fetch posts", g.logger, func(ctx context.Context) (*models.PostConnection, error) {
		return g.source.AllPosts(ctx, homePostCount, "")
	})
	if err != nil {
		return g.homeFromSnapshot(err, tags)
	}
	settings, err := retry.Do(ctx, g.retryCfg, "fetch settings", g.logger, func(ctx context.Context) (*models.Settings, error) {
		return g.source.GeneralSettings(ctx)
	})
	if err != nil {
		return g.homeFromSnapshot(err, tags)
	}
	categories, err := retry.Do(ctx, g.retryCfg, "fetch categories", g.logger, func(ctx context.Context) ([]models.Category, error) {
		return g.source.Categories(ctx)
	})
	if err != nil {
		return g.homeFromSnapshot(err, tags)
	}

	return &models.GeneratedPage{
		Payload: HomePage{
			Settings:   *settings,
			Posts:      posts.Nodes,
			Categories: categories,
			HasMore:    posts.PageInfo.HasNextPage,
		},
		Tags: tags,
	}, nil
}

// homeFromSnapshot builds a degraded home page from the snapshot, or a bare
// placeholder when no snapshot exists.
func (g *Generator) homeFromSnapshot(cause error, tags []string) (*models.GeneratedPage, error) {
	snap := g.snapshot.Read()
	if snap == nil {
		g.logger.Error("Home generation degraded with no snapshot available", zap.Error(cause))
		return &models.GeneratedPage{
			Payload:  HomePage{Posts: []models.Post{}, Categories: []models.Category{}},
			Tags:     tags,
			Degraded: true,
		}, nil
	}

	g.logger.Warn("Home generation falling back to snapshot",
		zap.Duration("snapshot_age", snap.Age()),
		zap.Error(cause))
	posts := snap.Posts
	if len(posts) > homePostCount {
		posts = posts[:homePostCount]
	}
	return &models.GeneratedPage{
		Payload: HomePage{
			Settings:   snap.Settings,
			Posts:      posts,
			Categories: snap.Categories,
			HasMore:    len(snap.Posts) > homePostCount,
		},
		Tags:     tags,
		Degraded: true,
	}, nil
}

func (g *Generator) generatePost(ctx context.Context, slug string) (*models.GeneratedPage, error) {
	tags := []string{"posts", "post:" + slug}

	post, err := retry.Do(ctx, g.retryCfg, "fetch post", g.logger, func(ctx context.Context) (*models.Post, error) {
		return g.source.PostBySlug(ctx, slug)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		snap := g.snapshot.Read()
		if snap == nil {
			return nil, err
		}
		fallback := snap.PostBySlug(slug)
		if fallback == nil {
			// The snapshot cannot distinguish "missing" from "newer than
			// the capture", so the origin failure wins.
			return nil, err
		}
		g.logger.Warn("Post generation falling back to snapshot",
			zap.String("slug", slug),
			zap.Error(err))
		return &models.GeneratedPage{
			Payload:  PostPage{Post: *fallback},
			Tags:     tags,
			Degraded: true,
		}, nil
	}

	// Recent posts are decoration; losing them does not degrade the page.
	recent, err := retry.Do(ctx, g.retryCfg, "fetch recent posts", g.logger, func(ctx context.Context) ([]models.Post, error) {
		return g.source.RecentPosts(ctx, recentPostCount)
	})
	if err != nil {
		g.logger.Warn("Recent posts unavailable", zap.String("slug", slug), zap.Error(err))
		recent = nil
	}

	return &models.GeneratedPage{
		Payload: PostPage{Post: *post, RecentPosts: recent},
		Tags:    tags,
	}, nil
}

type termQuery func(ctx context.Context, slug string, first int, after string) (*models.Term, error)

func (g *Generator) generateTerm(ctx context.Context, key models.PageKey, query termQuery) (*models.GeneratedPage, error) {
	tags := []string{"posts", string(key.Type) + ":" + key.Slug}

	term, err := retry.Do(ctx, g.retryCfg, "fetch "+string(key.Type), g.logger, func(ctx context.Context) (*models.Term, error) {
		return query(ctx, key.Slug, termPostCount, "")
	})
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return g.termFromSnapshot(key, err, tags)
	}

	return &models.GeneratedPage{
		Payload: TermPage{
			Name:        term.Name,
			Slug:        term.Slug,
			Description: term.Description,
			Posts:       term.Posts.Nodes,
			HasMore:     term.Posts.PageInfo.HasNextPage,
		},
		Tags: tags,
	}, nil
}

func (g *Generator) termFromSnapshot(key models.PageKey, cause error, tags []string) (*models.GeneratedPage, error) {
	snap := g.snapshot.Read()
	if snap == nil {
		return nil, cause
	}

	page := TermPage{Slug: key.Slug, Posts: []models.Post{}}
	switch key.Type {
	case models.PageTypeCategory:
		if c := snap.CategoryBySlug(key.Slug); c != nil {
			page.Name = c.Name
			page.Description = c.Description
		}
		page.Posts = snap.PostsWithCategory(key.Slug)
	case models.PageTypeTag:
		page.Posts = snap.PostsWithTag(key.Slug)
	case models.PageTypeAuthor:
		if a := snap.AuthorBySlug(key.Slug); a != nil {
			page.Name = a.Name
			page.Description = a.Description
		}
		page.Posts = snap.PostsByAuthor(key.Slug)
	}
	if len(page.Posts) > termPostCount {
		page.HasMore = true
		page.Posts = page.Posts[:termPostCount]
	}

	g.logger.Warn("Term generation falling back to snapshot",
		zap.String("page_type", string(key.Type)),
		zap.String("slug", key.Slug),
		zap.Error(cause))
	return &models.GeneratedPage{Payload: page, Tags: tags, Degraded: true}, nil
}

func (g *Generator) generatePortfolio(slug string) (*models.GeneratedPage, error) {
	items, err := loadPortfolio()
	if err != nil {
		return nil, err
	}
	tags := []string{"portfolio"}

	if slug == "" {
		return &models.GeneratedPage{Payload: PortfolioPage{Items: items}, Tags: tags}, nil
	}
	for _, item := range items {
		if item.Slug == slug {
			return &models.GeneratedPage{Payload: PortfolioItemPage{Item: item}, Tags: tags}, nil
		}
	}
	return nil, models.NewQueryError(models.ErrorKindNotFound, "portfolio item not found: "+slug, nil)
}

// generateSearch queries the origin directly. Search pages are never cached,
// so there is no snapshot fallback; failure surfaces to the caller.
func (g *Generator) generateSearch(ctx context.Context, term string) (*models.GeneratedPage, error) {
	results, err := retry.Do(ctx, g.retryCfg, "search", g.logger, func(ctx context.Context) (*models.PostConnection, error) {
		return g.source.Search(ctx, term, searchHitCount, "")
	})
	if err != nil {
		return nil, err
	}

	return &models.GeneratedPage{
		Payload: SearchPage{
			Query:   term,
			Results: results.Nodes,
			HasMore: results.PageInfo.HasNextPage,
		},
	}, nil
}

func isNotFound(err error) bool {
	var queryErr *models.QueryError
	return errors.As(err, &queryErr) && queryErr.Kind == models.ErrorKindNotFound
}
