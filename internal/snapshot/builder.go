package snapshot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
	"go-content-cache/internal/retry"
)

// Discovery limits for the warm-up fetch.
const (
	snapshotPostLimit = 100
	snapshotTermLimit = 100
	slugDiscoveryMax  = 1000
)

// Builder assembles a full Snapshot from the origin API. Each fetch goes
// through the long retry profile so a transient outage does not abort the
// warm-up run.
type Builder struct {
	source   interfaces.ContentSource
	retryCfg retry.Config
	logger   *zap.Logger
}

// NewBuilder creates a snapshot builder.
func NewBuilder(source interfaces.ContentSource, retryCfg retry.Config, logger *zap.Logger) *Builder {
	return &Builder{source: source, retryCfg: retryCfg, logger: logger}
}

// Build fetches every dataset section and returns the assembled snapshot.
// The first section to exhaust its retries fails the whole build.
func (b *Builder) Build(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{Timestamp: time.Now().UnixMilli()}

	categories, err := retry.Do(ctx, b.retryCfg, "fetch categories", b.logger, func(ctx context.Context) ([]models.Category, error) {
		return b.source.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	snap.Categories = categories
	b.logger.Info("Fetched categories", zap.Int("count", len(categories)))

	settings, err := retry.Do(ctx, b.retryCfg, "fetch settings", b.logger, func(ctx context.Context) (*models.Settings, error) {
		return b.source.GeneralSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	snap.Settings = *settings
	b.logger.Info("Fetched settings", zap.String("title", settings.Title))

	posts, err := retry.Do(ctx, b.retryCfg, "fetch posts", b.logger, func(ctx context.Context) (*models.PostConnection, error) {
		return b.source.AllPosts(ctx, snapshotPostLimit, "")
	})
	if err != nil {
		return nil, err
	}
	snap.Posts = posts.Nodes
	b.logger.Info("Fetched posts", zap.Int("count", len(posts.Nodes)))

	tags, err := retry.Do(ctx, b.retryCfg, "fetch tags", b.logger, func(ctx context.Context) ([]models.Tag, error) {
		return b.source.Tags(ctx, snapshotTermLimit)
	})
	if err != nil {
		return nil, err
	}
	snap.Tags = tags
	b.logger.Info("Fetched tags", zap.Int("count", len(tags)))

	authors, err := retry.Do(ctx, b.retryCfg, "fetch authors", b.logger, func(ctx context.Context) ([]models.Author, error) {
		return b.source.Users(ctx, snapshotTermLimit)
	})
	if err != nil {
		return nil, err
	}
	snap.Authors = authors
	b.logger.Info("Fetched authors", zap.Int("count", len(authors)))

	slugs, err := retry.Do(ctx, b.retryCfg, "fetch post slugs", b.logger, func(ctx context.Context) ([]models.PostSlug, error) {
		return b.source.AllPostSlugs(ctx)
	})
	if err != nil {
		return nil, err
	}
	snap.PostSlugs = slugs
	b.logger.Info("Fetched post slugs", zap.Int("count", len(slugs)))

	return snap, nil
}
