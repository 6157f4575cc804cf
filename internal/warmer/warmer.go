package warmer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/models"
	"go-content-cache/internal/retry"
)

const (
	maxPostURLs = 1000
	maxTermURLs = 100

	// visitDelay spaces out warming requests so the warmed server and its
	// origin never see a burst.
	visitDelay   = 1000 * time.Millisecond
	visitTimeout = 60 * time.Second
)

// Summary is the outcome of one warming run.
type Summary struct {
	Total      int
	Succeeded  int
	Failed     int
	Elapsed    time.Duration
	AvgLatency time.Duration // mean per-visit time, delays excluded
}

// Warmer discovers every cacheable URL from the origin API and visits each
// one sequentially against the serving layer, so the page cache is populated
// before real traffic arrives.
type Warmer struct {
	source   interfaces.ContentSource
	client   *http.Client
	logger   *zap.Logger
	retryCfg retry.Config
	delay    time.Duration
	sleep    func(time.Duration)
}

// New creates a cache warmer over the origin source.
func New(source interfaces.ContentSource, logger *zap.Logger) *Warmer {
	return &Warmer{
		source:   source,
		client:   &http.Client{Timeout: visitTimeout},
		logger:   logger,
		retryCfg: retry.DefaultConfig,
		delay:    visitDelay,
		sleep:    time.Sleep,
	}
}

// BuildURLList returns every URL to warm, in visiting order: the front page
// first, then posts, categories, tags and authors. A failed slug discovery
// aborts the run; warming a partial site silently would hide origin trouble.
func (w *Warmer) BuildURLList(ctx context.Context, baseURL string) ([]string, error) {
	slugs, err := retry.Do(ctx, w.retryCfg, "fetch post slugs", w.logger, func(ctx context.Context) ([]models.PostSlug, error) {
		return w.source.AllPostSlugs(ctx)
	})
	if err != nil {
		return nil, err
	}
	if len(slugs) > maxPostURLs {
		slugs = slugs[:maxPostURLs]
	}

	categories, err := retry.Do(ctx, w.retryCfg, "fetch categories", w.logger, func(ctx context.Context) ([]models.Category, error) {
		return w.source.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	tags, err := retry.Do(ctx, w.retryCfg, "fetch tags", w.logger, func(ctx context.Context) ([]models.Tag, error) {
		return w.source.Tags(ctx, maxTermURLs)
	})
	if err != nil {
		return nil, err
	}
	authors, err := retry.Do(ctx, w.retryCfg, "fetch authors", w.logger, func(ctx context.Context) ([]models.Author, error) {
		return w.source.Users(ctx, maxTermURLs)
	})
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, 1+len(slugs)+len(categories)+len(tags)+len(authors))
	urls = append(urls, baseURL+"/")
	for _, slug := range slugs {
		urls = append(urls, baseURL+"/posts/"+slug.Slug)
	}
	for _, category := range categories {
		urls = append(urls, baseURL+"/category/"+category.Slug)
	}
	for _, tag := range tags {
		urls = append(urls, baseURL+"/tag/"+tag.Slug)
	}
	for _, author := range authors {
		urls = append(urls, baseURL+"/author/"+author.Slug)
	}
	return urls, nil
}

// Run builds the URL list and visits every URL in order. Individual visit
// failures are counted, not fatal.
func (w *Warmer) Run(ctx context.Context, baseURL string) (*Summary, error) {
	started := time.Now()

	urls, err := w.BuildURLList(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build warm list: %w", err)
	}
	w.logger.Info("Starting cache warm-up",
		zap.Int("urls", len(urls)),
		zap.String("base_url", baseURL))

	summary := &Summary{Total: len(urls)}
	var visiting time.Duration
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if i > 0 {
			w.sleep(w.delay)
		}

		visitStart := time.Now()
		err := w.visit(ctx, url)
		visiting += time.Since(visitStart)
		if err != nil {
			summary.Failed++
			w.logger.Warn("Warm-up visit failed", zap.String("url", url), zap.Error(err))
			continue
		}
		summary.Succeeded++
	}

	summary.Elapsed = time.Since(started)
	if summary.Total > 0 {
		summary.AvgLatency = visiting / time.Duration(summary.Total)
	}
	w.logger.Info("Cache warm-up finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("avg_latency", summary.AvgLatency),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (w *Warmer) visit(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, visitTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
