package models

import "time"

// Snapshot is a whole-dataset capture of the origin content, written by the
// offline warm-up job and consulted as a fallback source during page
// generation. Timestamp is epoch milliseconds of the capture.
type Snapshot struct {
	Timestamp  int64      `json:"timestamp"`
	Categories []Category `json:"categories"`
	Settings   Settings   `json:"settings"`
	Posts      []Post     `json:"posts"`
	Tags       []Tag      `json:"tags"`
	Authors    []Author   `json:"authors"`
	PostSlugs  []PostSlug `json:"postSlugs"`
}

// Age returns how long ago the snapshot was captured.
func (s *Snapshot) Age() time.Duration {
	return time.Duration(time.Now().UnixMilli()-s.Timestamp) * time.Millisecond
}

// PostBySlug returns the snapshot post with the given slug, or nil.
func (s *Snapshot) PostBySlug(slug string) *Post {
	for i := range s.Posts {
		if s.Posts[i].Slug == slug {
			return &s.Posts[i]
		}
	}
	return nil
}

// PostsWithCategory returns snapshot posts carrying the given category slug.
func (s *Snapshot) PostsWithCategory(slug string) []Post {
	return s.filterPosts(func(p *Post) bool {
		for _, c := range p.Categories {
			if c.Slug == slug {
				return true
			}
		}
		return false
	})
}

// PostsWithTag returns snapshot posts carrying the given tag slug.
func (s *Snapshot) PostsWithTag(slug string) []Post {
	return s.filterPosts(func(p *Post) bool {
		for _, t := range p.Tags {
			if t.Slug == slug {
				return true
			}
		}
		return false
	})
}

// PostsByAuthor returns snapshot posts written by the author with the given slug.
func (s *Snapshot) PostsByAuthor(slug string) []Post {
	return s.filterPosts(func(p *Post) bool {
		return p.Author != nil && p.Author.Slug == slug
	})
}

// AuthorBySlug returns the snapshot author with the given slug, or nil.
func (s *Snapshot) AuthorBySlug(slug string) *Author {
	for i := range s.Authors {
		if s.Authors[i].Slug == slug {
			return &s.Authors[i]
		}
	}
	return nil
}

// CategoryBySlug returns the snapshot category with the given slug, or nil.
func (s *Snapshot) CategoryBySlug(slug string) *Category {
	for i := range s.Categories {
		if s.Categories[i].Slug == slug {
			return &s.Categories[i]
		}
	}
	return nil
}

func (s *Snapshot) filterPosts(match func(*Post) bool) []Post {
	var out []Post
	for i := range s.Posts {
		if match(&s.Posts[i]) {
			out = append(out, s.Posts[i])
		}
	}
	return out
}
