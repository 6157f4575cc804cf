package freshness

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-content-cache/internal/models"
)

const (
	// DefaultStaleWindow bounds how long a stale copy may still be served
	// while regeneration keeps failing.
	DefaultStaleWindow = 24 * time.Hour

	// negativeTTL caches a confirmed-missing entity briefly so repeated
	// requests for a bad slug don't hammer the origin.
	negativeTTL = 60 * time.Second

	// degradedTTL keeps fallback output around only briefly so a recovered
	// origin replaces it on the next request after expiry.
	degradedTTL = 30 * time.Second
)

// ruleSpec is the YAML form of one freshness rule. All values are seconds.
// A max_age of zero means the page type bypasses the cache entirely.
type ruleSpec struct {
	MaxAgeSeconds int `yaml:"max_age_seconds" validate:"min=0"`
	StaleSeconds  int `yaml:"stale_seconds" validate:"min=0"`
}

type rulesFile struct {
	Pages map[string]ruleSpec `yaml:"pages" validate:"dive"`
}

// Rules maps each page type to its freshness TTL.
type Rules struct {
	ttls map[models.PageType]models.TTL
}

// DefaultRules returns the built-in freshness rules: a short window for the
// home page, an hour for term listings, a week for posts and author pages, a
// day for portfolio pages, and no caching at all for search results.
func DefaultRules() *Rules {
	return &Rules{
		ttls: map[models.PageType]models.TTL{
			models.PageTypeHome:      {Fresh: 60 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypePost:      {Fresh: 604800 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypeCategory:  {Fresh: 3600 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypeTag:       {Fresh: 3600 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypeAuthor:    {Fresh: 604800 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypePortfolio: {Fresh: 86400 * time.Second, Stale: DefaultStaleWindow},
			models.PageTypeSearch:    {Fresh: 0, Stale: 0},
		},
	}
}

// LoadRules reads per-page-type overrides from a YAML file and merges them
// over the defaults. An empty path returns the defaults unchanged.
func LoadRules(path string, logger *zap.Logger) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read freshness rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse freshness rules file: %w", err)
	}
	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid freshness rules: %w", err)
	}

	for name, spec := range file.Pages {
		pageType := models.PageType(name)
		if _, known := rules.ttls[pageType]; !known {
			return nil, fmt.Errorf("freshness rules name unknown page type %q", name)
		}
		rules.ttls[pageType] = models.TTL{
			Fresh: time.Duration(spec.MaxAgeSeconds) * time.Second,
			Stale: time.Duration(spec.StaleSeconds) * time.Second,
		}
		logger.Info("Freshness rule overridden",
			zap.String("page_type", name),
			zap.Int("max_age_seconds", spec.MaxAgeSeconds),
			zap.Int("stale_seconds", spec.StaleSeconds))
	}

	return rules, nil
}

// TTLFor returns the freshness TTL for a page type. Unknown types get the
// shortest configured window so a routing mistake never pins bad output.
func (r *Rules) TTLFor(pageType models.PageType) models.TTL {
	if ttl, found := r.ttls[pageType]; found {
		return ttl
	}
	return models.TTL{Fresh: 60 * time.Second, Stale: DefaultStaleWindow}
}

// Bypass reports whether the page type is never cached.
func (r *Rules) Bypass(pageType models.PageType) bool {
	return r.TTLFor(pageType).Fresh == 0
}

// NegativeTTL is the TTL for caching a confirmed NotFound answer.
func (r *Rules) NegativeTTL() models.TTL {
	return models.TTL{Fresh: negativeTTL}
}

// DegradedTTL is the TTL for caching output built from fallback data.
func (r *Rules) DegradedTTL() models.TTL {
	return models.TTL{Fresh: degradedTTL}
}
