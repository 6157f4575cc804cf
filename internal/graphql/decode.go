package graphql

import (
	"context"
	"encoding/json"

	"go-content-cache/internal/models"
)

// Wire shapes mirror the origin schema (node wrappers, nested connections).
// Schema drift is contained here: everything past this file speaks models.

type wireAvatar struct {
	URL string `json:"url"`
}

type wireAuthor struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Avatar      *wireAvatar `json:"avatar"`
}

func (w *wireAuthor) toModel() *models.Author {
	a := &models.Author{
		ID:          w.ID,
		Name:        w.Name,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Slug:        w.Slug,
		Description: w.Description,
	}
	if w.Avatar != nil {
		a.AvatarURL = w.Avatar.URL
	}
	return a
}

type wireImage struct {
	SourceURL    string `json:"sourceUrl"`
	AltText      string `json:"altText"`
	MediaDetails *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"mediaDetails"`
}

func (w *wireImage) toModel() *models.Image {
	img := &models.Image{SourceURL: w.SourceURL, AltText: w.AltText}
	if w.MediaDetails != nil {
		img.Width = w.MediaDetails.Width
		img.Height = w.MediaDetails.Height
	}
	return img
}

type wirePost struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Modified string `json:"modified"`
	Author   *struct {
		Node wireAuthor `json:"node"`
	} `json:"author"`
	FeaturedImage *struct {
		Node wireImage `json:"node"`
	} `json:"featuredImage"`
	Categories struct {
		Nodes []models.TermRef `json:"nodes"`
	} `json:"categories"`
	Tags struct {
		Nodes []models.TermRef `json:"nodes"`
	} `json:"tags"`
}

func (w *wirePost) toModel() models.Post {
	p := models.Post{
		ID:         w.ID,
		Title:      w.Title,
		Slug:       w.Slug,
		Excerpt:    w.Excerpt,
		Content:    w.Content,
		Date:       w.Date,
		Modified:   w.Modified,
		Categories: w.Categories.Nodes,
		Tags:       w.Tags.Nodes,
	}
	if w.Author != nil {
		p.Author = w.Author.Node.toModel()
	}
	if w.FeaturedImage != nil {
		p.FeaturedImage = w.FeaturedImage.Node.toModel()
	}
	return p
}

type wireConnection struct {
	PageInfo models.PageInfo `json:"pageInfo"`
	Nodes    []wirePost      `json:"nodes"`
}

func (w *wireConnection) toModel() *models.PostConnection {
	conn := &models.PostConnection{PageInfo: w.PageInfo, Nodes: make([]models.Post, 0, len(w.Nodes))}
	for i := range w.Nodes {
		conn.Nodes = append(conn.Nodes, w.Nodes[i].toModel())
	}
	return conn
}

type wireTerm struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Posts       *wireConnection `json:"posts"`
}

func (w *wireTerm) toModel() *models.Term {
	t := &models.Term{Name: w.Name, Slug: w.Slug, Description: w.Description}
	if w.Posts != nil {
		t.Posts = *w.Posts.toModel()
	}
	return t
}

// decodeInto unmarshals a query result, mapping decode failures to the
// invalid_response classification.
func decodeInto(result *models.QueryResult, name models.QueryName, v interface{}) error {
	if err := json.Unmarshal(result.Data, v); err != nil {
		return models.NewQueryError(models.ErrorKindInvalidResponse,
			string(name)+": unexpected result shape", err)
	}
	return nil
}

// executeEntity runs an entity-addressed query and converts a null root
// field into the terminal not_found classification.
func (c *Client) executeEntity(ctx context.Context, query models.ContentQuery) (*models.QueryResult, error) {
	result, err := c.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	if isJSONNull(result.Data) {
		return nil, models.NewQueryError(models.ErrorKindNotFound,
			string(query.Name)+": entity does not exist", nil)
	}
	return result, nil
}

// AllPosts returns one page of published posts.
func (c *Client) AllPosts(ctx context.Context, first int, after string) (*models.PostConnection, error) {
	vars := map[string]interface{}{"first": first}
	if after != "" {
		vars["after"] = after
	}
	result, err := c.Execute(ctx, models.ContentQuery{Name: models.QueryAllPosts, Variables: vars})
	if err != nil {
		return nil, err
	}
	var conn wireConnection
	if err := decodeInto(result, models.QueryAllPosts, &conn); err != nil {
		return nil, err
	}
	return conn.toModel(), nil
}

// RecentPosts returns the latest posts for the home page.
func (c *Client) RecentPosts(ctx context.Context, first int) ([]models.Post, error) {
	result, err := c.Execute(ctx, models.ContentQuery{
		Name:      models.QueryRecentPosts,
		Variables: map[string]interface{}{"first": first},
	})
	if err != nil {
		return nil, err
	}
	var conn wireConnection
	if err := decodeInto(result, models.QueryRecentPosts, &conn); err != nil {
		return nil, err
	}
	return conn.toModel().Nodes, nil
}

// PostBySlug returns one post or a not_found error.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	result, err := c.executeEntity(ctx, models.ContentQuery{
		Name:      models.QueryPostBySlug,
		Variables: map[string]interface{}{"slug": slug},
	})
	if err != nil {
		return nil, err
	}
	var wp wirePost
	if err := decodeInto(result, models.QueryPostBySlug, &wp); err != nil {
		return nil, err
	}
	post := wp.toModel()
	return &post, nil
}

// AllPostSlugs returns every published post slug.
func (c *Client) AllPostSlugs(ctx context.Context) ([]models.PostSlug, error) {
	result, err := c.Execute(ctx, models.ContentQuery{Name: models.QueryAllPostSlugs})
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Nodes []models.PostSlug `json:"nodes"`
	}
	if err := decodeInto(result, models.QueryAllPostSlugs, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Nodes, nil
}

// Categories returns all non-empty categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	result, err := c.Execute(ctx, models.ContentQuery{Name: models.QueryCategories})
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Nodes []models.Category `json:"nodes"`
	}
	if err := decodeInto(result, models.QueryCategories, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Nodes, nil
}

// Tags returns up to first non-empty tags.
func (c *Client) Tags(ctx context.Context, first int) ([]models.Tag, error) {
	result, err := c.Execute(ctx, models.ContentQuery{
		Name:      models.QueryTags,
		Variables: map[string]interface{}{"first": first},
	})
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Nodes []models.Tag `json:"nodes"`
	}
	if err := decodeInto(result, models.QueryTags, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Nodes, nil
}

// Users returns up to first authors.
func (c *Client) Users(ctx context.Context, first int) ([]models.Author, error) {
	result, err := c.Execute(ctx, models.ContentQuery{
		Name:      models.QueryUsers,
		Variables: map[string]interface{}{"first": first},
	})
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Nodes []wireAuthor `json:"nodes"`
	}
	if err := decodeInto(result, models.QueryUsers, &wrapper); err != nil {
		return nil, err
	}
	authors := make([]models.Author, 0, len(wrapper.Nodes))
	for i := range wrapper.Nodes {
		authors = append(authors, *wrapper.Nodes[i].toModel())
	}
	return authors, nil
}

// GeneralSettings returns the site-wide settings.
func (c *Client) GeneralSettings(ctx context.Context) (*models.Settings, error) {
	result, err := c.Execute(ctx, models.ContentQuery{Name: models.QueryGeneralSettings})
	if err != nil {
		return nil, err
	}
	var settings models.Settings
	if err := decodeInto(result, models.QueryGeneralSettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// PostsByCategory returns a category with one page of its posts, or not_found.
func (c *Client) PostsByCategory(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return c.termPosts(ctx, models.QueryPostsByCategory, slug, first, after)
}

// PostsByTag returns a tag with one page of its posts, or not_found.
func (c *Client) PostsByTag(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return c.termPosts(ctx, models.QueryPostsByTag, slug, first, after)
}

// PostsByAuthor returns an author with one page of their posts, or not_found.
func (c *Client) PostsByAuthor(ctx context.Context, slug string, first int, after string) (*models.Term, error) {
	return c.termPosts(ctx, models.QueryPostsByAuthor, slug, first, after)
}

func (c *Client) termPosts(ctx context.Context, name models.QueryName, slug string, first int, after string) (*models.Term, error) {
	vars := map[string]interface{}{"slug": slug, "first": first}
	if after != "" {
		vars["after"] = after
	}
	result, err := c.executeEntity(ctx, models.ContentQuery{Name: name, Variables: vars})
	if err != nil {
		return nil, err
	}
	var term wireTerm
	if err := decodeInto(result, name, &term); err != nil {
		return nil, err
	}
	if term.Slug == "" {
		term.Slug = slug
	}
	return term.toModel(), nil
}

// Search returns one page of posts matching the search term.
func (c *Client) Search(ctx context.Context, term string, first int, after string) (*models.PostConnection, error) {
	vars := map[string]interface{}{"search": term, "first": first}
	if after != "" {
		vars["after"] = after
	}
	result, err := c.Execute(ctx, models.ContentQuery{Name: models.QuerySearch, Variables: vars})
	if err != nil {
		return nil, err
	}
	var conn wireConnection
	if err := decodeInto(result, models.QuerySearch, &conn); err != nil {
		return nil, err
	}
	return conn.toModel(), nil
}
