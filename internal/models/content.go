package models

// Image describes a featured image attached to a post.
type Image struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// TermRef is a lightweight reference to a category or tag from a post.
type TermRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Author represents a content author (a "user" on the origin API).
type Author struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// Post represents a published article. Content is only populated for
// single-post queries; list queries carry the excerpt.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Content       string    `json:"content,omitempty"`
	Date          string    `json:"date"`
	Modified      string    `json:"modified,omitempty"`
	Author        *Author   `json:"author,omitempty"`
	FeaturedImage *Image    `json:"featuredImage,omitempty"`
	Categories    []TermRef `json:"categories,omitempty"`
	Tags          []TermRef `json:"tags,omitempty"`
}

// PostSlug carries just the slug of a post, used for URL discovery.
type PostSlug struct {
	Slug string `json:"slug"`
}

// Category represents a post category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Count       int    `json:"count,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
}

// Tag represents a post tag.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count,omitempty"`
}

// Settings holds the site-wide general settings from the origin API.
type Settings struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// PageInfo carries cursor pagination state for post lists.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
}

// PostConnection is a page of posts with its pagination info.
type PostConnection struct {
	Nodes    []Post   `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// Term is a category, tag or author resolved together with a page of its
// posts, as returned by the PostsByCategory/Tag/Author queries.
type Term struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Posts       PostConnection `json:"posts"`
}

// PortfolioItem is a portfolio entry sourced from static local data rather
// than the origin API.
type PortfolioItem struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ProjectURL  string   `json:"projectUrl,omitempty"`
	Technology  []string `json:"technology,omitempty"`
}
