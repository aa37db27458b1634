package gateway

import (
	"context"
	"net/http"
	"net/url"

	"blogspace-client/domain/blog"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type categoryResponse struct {
	Category CategoryDocument `json:"category"`
	CategoryDocument
}

func (r categoryResponse) document() CategoryDocument {
	if r.Category.ID != "" {
		return r.Category
	}
	return r.CategoryDocument
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]blog.Category, error) {
	var res struct {
		Categories []CategoryDocument `json:"categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &res); err != nil {
		return nil, err
	}
	categories := make([]blog.Category, 0, len(res.Categories))
	for _, doc := range res.Categories {
		categories = append(categories, doc.ToCategory())
	}
	return categories, nil
}

// GetCategory fetches a single category by slug.
func (c *Client) GetCategory(ctx context.Context, slug string) (*blog.Category, error) {
	var res categoryResponse
	if err := c.doJSON(ctx, http.MethodGet, pathf("/categories/%s", url.PathEscape(slug)), nil, &res); err != nil {
		return nil, err
	}
	category := res.document().ToCategory()
	return &category, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*blog.Category, error) {
	var res categoryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/categories", input, &res); err != nil {
		return nil, err
	}
	category := res.document().ToCategory()
	return &category, nil
}

// UpdateCategory replaces a category's writable fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*blog.Category, error) {
	var res categoryResponse
	if err := c.doJSON(ctx, http.MethodPut, pathf("/categories/%s", url.PathEscape(id)), input, &res); err != nil {
		return nil, err
	}
	category := res.document().ToCategory()
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, pathf("/categories/%s", url.PathEscape(id)), nil, nil)
}
