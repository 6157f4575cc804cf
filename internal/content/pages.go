package content

import "go-content-cache/internal/models"

// Page payloads. These are the JSON bodies the serving layer returns; field
// names are part of the public response shape.

// HomePage is the front page: site settings, the latest posts and the
// category list for navigation.
type HomePage struct {
	Settings   models.Settings   `json:"settings"`
	Posts      []models.Post     `json:"posts"`
	Categories []models.Category `json:"categories"`
	HasMore    bool              `json:"hasMore"`
}

// PostPage is a single article plus a short list of recent posts.
type PostPage struct {
	Post        models.Post   `json:"post"`
	RecentPosts []models.Post `json:"recentPosts,omitempty"`
}

// TermPage is a category, tag or author archive: the term itself and a page
// of its posts.
type TermPage struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Posts       []models.Post `json:"posts"`
	HasMore     bool          `json:"hasMore"`
}

// SearchPage is an uncached search result page.
type SearchPage struct {
	Query   string        `json:"query"`
	Results []models.Post `json:"results"`
	HasMore bool          `json:"hasMore"`
}

// PortfolioPage is the portfolio index.
type PortfolioPage struct {
	Items []models.PortfolioItem `json:"items"`
}

// PortfolioItemPage is a single portfolio entry.
type PortfolioItemPage struct {
	Item models.PortfolioItem `json:"item"`
}
