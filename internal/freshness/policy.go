package freshness

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
)

// Invalidation request failures the serving layer maps to HTTP statuses.
var (
	ErrBadSecret = errors.New("invalid revalidation secret")
	ErrNoTarget  = errors.New("invalidation request names neither path nor tag")
)

// regenTimeout bounds one background regeneration. It is detached from the
// triggering request's context on purpose: the requester already got a stale
// copy and must not be able to cancel the refresh.
const regenTimeout = 2 * time.Minute

// Policy is the freshness decision engine. Every page request goes through
// it: fresh cache entries are served as-is, stale ones are served immediately
// while a single background regeneration refreshes them, and misses are
// generated synchronously. Concurrent demand for the same page collapses into
// one generator call.
type Policy struct {
	cache     interfaces.Cache
	generator interfaces.PageGenerator
	rules     *Rules
	secret    string
	logger    *zap.Logger

	group singleflight.Group
	tags  *tagIndex
}

// NewPolicy creates the freshness policy over a page cache and a generator.
// The secret authorizes invalidation requests.
func NewPolicy(cache interfaces.Cache, generator interfaces.PageGenerator, rules *Rules, secret string, logger *zap.Logger) *Policy {
	return &Policy{
		cache:     cache,
		generator: generator,
		rules:     rules,
		secret:    secret,
		logger:    logger,
		tags:      newTagIndex(),
	}
}

// GetPage returns the page for a key, deciding between cache hit, stale
// serve-and-refresh, and synchronous generation.
func (p *Policy) GetPage(ctx context.Context, key models.PageKey) (*models.PageResult, error) {
	pageType := string(key.Type)
	metrics.RecordPageRequest(pageType)

	if p.rules.Bypass(key.Type) {
		// No singleflight here: bypassed pages share a path (every search
		// lands on /search) and must not share each other's results.
		entry, err := p.generate(ctx, key)
		if err != nil {
			return nil, err
		}
		metrics.RecordPageResult(pageType, string(models.PageStatusBypass))
		return resultFrom(entry, models.PageStatusBypass), nil
	}

	cacheKey := key.Path()
	if entry, found := p.cache.Get(cacheKey); found {
		if entry.IsFresh() {
			metrics.RecordPageResult(pageType, string(models.PageStatusHit))
			return resultFrom(entry, models.PageStatusHit), nil
		}
		p.refreshInBackground(key)
		metrics.RecordPageResult(pageType, string(models.PageStatusStale))
		return resultFrom(entry, models.PageStatusStale), nil
	}

	entry, err := p.generateLocked(ctx, key)
	if err != nil {
		return nil, err
	}
	metrics.RecordPageResult(pageType, string(models.PageStatusMiss))
	return resultFrom(entry, models.PageStatusMiss), nil
}

// Invalidate handles one invalidation request: after the secret check, the
// named page (or every page under the named tag) is marked stale. Marked
// entries keep serving until their next request triggers a refresh, so an
// invalidation storm never empties the cache.
func (p *Policy) Invalidate(req models.InvalidationRequest) (*models.InvalidationResult, error) {
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(p.secret)) != 1 {
		return nil, ErrBadSecret
	}

	result := &models.InvalidationResult{
		Revalidated: true,
		Now:         time.Now().UnixMilli(),
	}

	switch {
	case req.Path != "":
		p.cache.MarkStale(req.Path)
		metrics.RecordInvalidation("path")
		p.logger.Info("Path invalidated", zap.String("path", req.Path))
		result.Path = req.Path
	case req.Tag != "":
		keys := p.tags.keys(req.Tag)
		for _, key := range keys {
			p.cache.MarkStale(key)
		}
		metrics.RecordInvalidation("tag")
		p.logger.Info("Tag invalidated", zap.String("tag", req.Tag), zap.Int("pages", len(keys)))
		result.Tag = req.Tag
		result.Pages = len(keys)
	default:
		return nil, ErrNoTarget
	}

	return result, nil
}

// refreshInBackground schedules a regeneration detached from the caller.
// The singleflight group guarantees that however many requests observe the
// same stale entry, only one generator call runs.
func (p *Policy) refreshInBackground(key models.PageKey) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), regenTimeout)
		defer cancel()
		if _, err := p.generateLocked(ctx, key); err != nil {
			p.logger.Warn("Background regeneration failed",
				zap.String("path", key.Path()),
				zap.Error(err))
		}
	}()
}

// generateLocked runs one generation through the singleflight group keyed by
// the page path, so concurrent misses and stale refreshes for the same page
// share a single generator call and its result.
func (p *Policy) generateLocked(ctx context.Context, key models.PageKey) (*models.CacheEntry, error) {
	value, err, _ := p.group.Do(key.Path(), func() (interface{}, error) {
		return p.generate(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.CacheEntry), nil
}

func (p *Policy) generate(ctx context.Context, key models.PageKey) (*models.CacheEntry, error) {
	pageType := string(key.Type)
	done := metrics.TimeGeneration(pageType)
	defer done()

	page, err := p.generator.Generate(ctx, key)
	if err != nil {
		var queryErr *models.QueryError
		if errors.As(err, &queryErr) && queryErr.Kind == models.ErrorKindNotFound {
			entry := models.NewCacheEntry(nil, p.rules.NegativeTTL())
			entry.NotFound = true
			p.store(key, entry, nil)
			metrics.RecordRegeneration(pageType, "not_found")
			return &entry, nil
		}
		metrics.RecordRegeneration(pageType, "error")
		return nil, fmt.Errorf("failed to generate page %s: %w", key.Path(), err)
	}

	data, err := json.Marshal(page.Payload)
	if err != nil {
		metrics.RecordRegeneration(pageType, "error")
		return nil, fmt.Errorf("failed to encode page %s: %w", key.Path(), err)
	}

	ttl := p.rules.TTLFor(key.Type)
	outcome := "ok"
	if page.Degraded {
		// Degraded output expires quickly so a recovered origin takes over.
		ttl = p.rules.DegradedTTL()
		outcome = "degraded"
	}

	entry := models.NewCacheEntry(data, ttl)
	p.store(key, entry, page.Tags)
	metrics.RecordRegeneration(pageType, outcome)
	return &entry, nil
}

// store writes the entry and registers its tags, except for bypassed page
// types which are never cached.
func (p *Policy) store(key models.PageKey, entry models.CacheEntry, tags []string) {
	if p.rules.Bypass(key.Type) {
		return
	}
	cacheKey := key.Path()
	p.cache.Set(cacheKey, entry)
	p.tags.add(tags, cacheKey)
}

func resultFrom(entry *models.CacheEntry, status models.PageStatus) *models.PageResult {
	return &models.PageResult{
		Data:        entry.Data,
		Status:      status,
		NotFound:    entry.NotFound,
		GeneratedAt: entry.CreatedAt,
	}
}
