package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"blogspace-client/domain/blog"
)

// CommentQuery narrows a comment listing.
type CommentQuery struct {
	// Tree asks for nested replies instead of a flat list.
	Tree bool
	// IncludePending asks for unmoderated comments too. Moderators only.
	IncludePending bool
	Page           int
	Limit          int
}

func (q CommentQuery) query() string {
	v := url.Values{}
	if q.Tree {
		v.Set("tree", "true")
	}
	if q.IncludePending {
		v.Set("includePending", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type commentResponse struct {
	Comment CommentDocument `json:"comment"`
	CommentDocument
}

func (r commentResponse) document() CommentDocument {
	if r.Comment.ID != "" {
		return r.Comment
	}
	return r.CommentDocument
}

// ListComments fetches the comments on a post.
func (c *Client) ListComments(ctx context.Context, postID string, q CommentQuery) ([]blog.Comment, error) {
	var res struct {
		Comments []CommentDocument `json:"comments"`
	}
	path := pathf("/comments/post/%s", url.PathEscape(postID)) + q.query()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	comments := make([]blog.Comment, 0, len(res.Comments))
	for _, doc := range res.Comments {
		comments = append(comments, doc.ToComment())
	}
	return comments, nil
}

// CreateComment posts a reply. parentID is empty for a top-level
// comment.
func (c *Client) CreateComment(ctx context.Context, postID, content, parentID string) (*blog.Comment, error) {
	body := map[string]string{"postId": postID, "content": content}
	if parentID != "" {
		body["parentId"] = parentID
	}
	var res commentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/comments", body, &res); err != nil {
		return nil, err
	}
	comment := res.document().ToComment()
	return &comment, nil
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, id, content string) (*blog.Comment, error) {
	body := map[string]string{"content": content}
	var res commentResponse
	if err := c.doJSON(ctx, http.MethodPatch, pathf("/comments/%s", url.PathEscape(id)), body, &res); err != nil {
		return nil, err
	}
	comment := res.document().ToComment()
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, pathf("/comments/%s", url.PathEscape(id)), nil, nil)
}

// ToggleCommentLike flips the caller's like on a comment.
func (c *Client) ToggleCommentLike(ctx context.Context, id string) (*LikeResult, error) {
	var res LikeResult
	if err := c.doJSON(ctx, http.MethodPost, pathf("/comments/%s/like", url.PathEscape(id)), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ApproveComment marks a pending comment as approved. Moderators only.
func (c *Client) ApproveComment(ctx context.Context, id string) (*blog.Comment, error) {
	var res commentResponse
	if err := c.doJSON(ctx, http.MethodPatch, pathf("/comments/%s/approve", url.PathEscape(id)), nil, &res); err != nil {
		return nil, err
	}
	comment := res.document().ToComment()
	return &comment, nil
}
