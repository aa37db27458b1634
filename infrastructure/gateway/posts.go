package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"blogspace-client/domain/blog"
)

// PostFilters narrows a post listing. Zero values mean "no filter".
type PostFilters struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Author   string
	Status   string
	Search   string
	Featured bool
}

func (f PostFilters) query() string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.Author != "" {
		q.Set("author", f.Author)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Featured {
		q.Set("featured", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// PostsPage is one page of a post listing.
type PostsPage struct {
	Posts []blog.Post
	Total int
	Page  int
	Pages int
}

// FileUpload is a media attachment for a post write.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}

// PostInput carries the writable fields of a post. Nil file fields mean
// "leave the current media alone".
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Categories    []string
	Tags          []string
	Status        string
	IsFeatured    bool
	FeaturedImage *FileUpload
	Video         *FileUpload
}

func (in PostInput) form() (*multipartForm, error) {
	form := newMultipartForm()
	form.addField("title", in.Title)
	form.addField("content", in.Content)
	form.addField("excerpt", in.Excerpt)
	form.addJSONField("categories", in.Categories)
	form.addJSONField("tags", in.Tags)
	if in.Status != "" {
		form.addField("status", in.Status)
	}
	form.addField("isFeatured", strconv.FormatBool(in.IsFeatured))
	if in.FeaturedImage != nil {
		if err := form.addFile("featuredImage", in.FeaturedImage.Filename, in.FeaturedImage.Reader); err != nil {
			return nil, err
		}
	}
	if in.Video != nil {
		if err := form.addFile("video", in.Video.Filename, in.Video.Reader); err != nil {
			return nil, err
		}
	}
	return form, nil
}

// postsResponse is the listing envelope: {items, total, page, pages}.
type postsResponse struct {
	Items []PostDocument `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// postResponse wraps a single post. Some handlers return the document
// bare and some wrap it, so both shapes decode.
type postResponse struct {
	Post PostDocument `json:"post"`
	PostDocument
}

func (r postResponse) document() PostDocument {
	if r.Post.ID != "" {
		return r.Post
	}
	return r.PostDocument
}

// ListPosts fetches one page of posts matching the filters.
func (c *Client) ListPosts(ctx context.Context, filters PostFilters) (*PostsPage, error) {
	var res postsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/posts"+filters.query(), nil, &res); err != nil {
		return nil, err
	}
	posts := make([]blog.Post, 0, len(res.Items))
	for _, doc := range res.Items {
		posts = append(posts, doc.ToPost())
	}
	return &PostsPage{Posts: posts, Total: res.Total, Page: res.Page, Pages: res.Pages}, nil
}

// GetPost fetches a single post by slug.
func (c *Client) GetPost(ctx context.Context, slug string) (*blog.Post, error) {
	var res postResponse
	if err := c.doJSON(ctx, http.MethodGet, pathf("/posts/%s", url.PathEscape(slug)), nil, &res); err != nil {
		return nil, err
	}
	post := res.document().ToPost()
	return &post, nil
}

// CreatePost publishes a new post, streaming any attached media.
func (c *Client) CreatePost(ctx context.Context, input PostInput) (*blog.Post, error) {
	form, err := input.form()
	if err != nil {
		return nil, err
	}
	var res postResponse
	if err := c.doMultipart(ctx, http.MethodPost, "/posts", form, &res); err != nil {
		return nil, err
	}
	post := res.document().ToPost()
	return &post, nil
}

// UpdatePost replaces a post's writable fields.
func (c *Client) UpdatePost(ctx context.Context, id string, input PostInput) (*blog.Post, error) {
	form, err := input.form()
	if err != nil {
		return nil, err
	}
	var res postResponse
	if err := c.doMultipart(ctx, http.MethodPut, pathf("/posts/%s", url.PathEscape(id)), form, &res); err != nil {
		return nil, err
	}
	post := res.document().ToPost()
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, pathf("/posts/%s", url.PathEscape(id)), nil, nil)
}

// LikeResult is the authoritative like state after a toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike flips the caller's like on a post and returns the server's
// resulting count, which always wins over any local guess.
func (c *Client) ToggleLike(ctx context.Context, id string) (*LikeResult, error) {
	var res LikeResult
	if err := c.doJSON(ctx, http.MethodPatch, pathf("/posts/%s/like", url.PathEscape(id)), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FeaturedAuthors fetches the authors highlighted on the home page.
func (c *Client) FeaturedAuthors(ctx context.Context) ([]blog.Author, error) {
	var res struct {
		Authors []AuthorDocument `json:"authors"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/featured-authors", nil, &res); err != nil {
		return nil, err
	}
	authors := make([]blog.Author, 0, len(res.Authors))
	for _, doc := range res.Authors {
		authors = append(authors, doc.ToAuthor())
	}
	return authors, nil
}

// DashboardStats fetches the platform-wide aggregates for the admin
// dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*blog.DashboardStats, error) {
	var res struct {
		Stats blog.DashboardStats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stats/dashboard", nil, &res); err != nil {
		return nil, err
	}
	return &res.Stats, nil
}
