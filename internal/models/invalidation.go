package models

// InvalidationRequest asks the freshness policy to mark pages stale, either
// one page by path or every page depending on a content tag. The secret must
// match the configured revalidation secret before anything happens.
type InvalidationRequest struct {
	Path   string `json:"path,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Secret string `json:"secret"`
}

// InvalidationResult confirms an accepted invalidation.
type InvalidationResult struct {
	Revalidated bool   `json:"revalidated"`
	Path        string `json:"path,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Pages       int    `json:"pages,omitempty"` // pages marked stale for tag targets
	Now         int64  `json:"now"`             // epoch milliseconds
}
