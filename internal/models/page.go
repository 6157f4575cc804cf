package models

import "fmt"

// PageType identifies one of the fixed set of page types the site serves.
// Each type has its own freshness rule.
type PageType string

const (
	PageTypeHome      PageType = "home"
	PageTypePost      PageType = "post"
	PageTypeCategory  PageType = "category"
	PageTypeTag       PageType = "tag"
	PageTypeAuthor    PageType = "author"
	PageTypePortfolio PageType = "portfolio"
	PageTypeSearch    PageType = "search"
)

// PageKey identifies a single page: its type plus the slug parameter for
// slug-addressed types. Slug is empty for the home page and the portfolio
// index. The key's path doubles as the cache key.
type PageKey struct {
	Type PageType
	Slug string
}

// Path returns the canonical URL path for the page, which is also its cache key.
func (k PageKey) Path() string {
	switch k.Type {
	case PageTypeHome:
		return "/"
	case PageTypePost:
		return "/posts/" + k.Slug
	case PageTypeCategory:
		return "/category/" + k.Slug
	case PageTypeTag:
		return "/tag/" + k.Slug
	case PageTypeAuthor:
		return "/author/" + k.Slug
	case PageTypePortfolio:
		if k.Slug == "" {
			return "/portfolio"
		}
		return "/portfolio/" + k.Slug
	case PageTypeSearch:
		return "/search"
	default:
		return fmt.Sprintf("/%s/%s", k.Type, k.Slug)
	}
}

// GeneratedPage is the output of one page generation: the payload to be
// served, the content tags the generation depended on (used for tag-based
// invalidation), and whether the generator had to degrade to fallback data.
type GeneratedPage struct {
	Payload  interface{}
	Tags     []string
	Degraded bool
}

// PageStatus describes how a page request was satisfied.
type PageStatus string

const (
	PageStatusHit    PageStatus = "hit"    // served fresh from cache
	PageStatusStale  PageStatus = "stale"  // served stale, regeneration scheduled
	PageStatusMiss   PageStatus = "miss"   // generated synchronously
	PageStatusBypass PageStatus = "bypass" // page type is never cached
)

// PageResult is what the freshness policy hands back to the serving layer.
type PageResult struct {
	Data        []byte
	Status      PageStatus
	NotFound    bool
	GeneratedAt int64 // epoch seconds of the generation this data came from
}
