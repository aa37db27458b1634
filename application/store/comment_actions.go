package store

import (
	"context"

	"blogspace-client/domain/blog"
	"blogspace-client/infrastructure/gateway"
)

// Comment actions delegate straight to the gateway. The store keeps no
// comment collection; each view owns its own cache keyed by post.

// FetchComments loads the comments on a post.
func (s *Store) FetchComments(ctx context.Context, postID string, q gateway.CommentQuery) ([]blog.Comment, error) {
	comments, err := s.gateway.ListComments(ctx, postID, q)
	if err != nil {
		s.alerter.ToastError(userMessage(err))
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a reply. parentID is empty for top-level
// comments.
func (s *Store) CreateComment(ctx context.Context, postID, content, parentID string) (*blog.Comment, error) {
	comment, err := s.gateway.CreateComment(ctx, postID, content, parentID)
	if err != nil {
		s.alerter.ToastError(userMessage(err))
		return nil, err
	}
	s.alerter.ToastSuccess("Comment posted")
	return comment, nil
}

// UpdateComment replaces a comment's content.
func (s *Store) UpdateComment(ctx context.Context, id, content string) (*blog.Comment, error) {
	comment, err := s.gateway.UpdateComment(ctx, id, content)
	if err != nil {
		s.alerter.ToastError(userMessage(err))
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment after confirmation.
func (s *Store) DeleteComment(ctx context.Context, id string) bool {
	if !s.alerter.Confirm("Delete comment?", "This cannot be undone.") {
		return false
	}
	if err := s.gateway.DeleteComment(ctx, id); err != nil {
		s.alerter.ToastError(userMessage(err))
		return false
	}
	s.alerter.ToastSuccess("Comment deleted")
	return true
}

// ToggleCommentLike flips the caller's like on a comment and returns
// the authoritative count.
func (s *Store) ToggleCommentLike(ctx context.Context, id string) (*gateway.LikeResult, error) {
	result, err := s.gateway.ToggleCommentLike(ctx, id)
	if err != nil {
		s.alerter.ToastError(userMessage(err))
		return nil, err
	}
	return result, nil
}

// ApproveComment marks a pending comment approved. Moderators only;
// the server enforces the permission, the store just relays.
func (s *Store) ApproveComment(ctx context.Context, id string) (*blog.Comment, error) {
	comment, err := s.gateway.ApproveComment(ctx, id)
	if err != nil {
		s.alerter.ToastError(userMessage(err))
		return nil, err
	}
	return comment, nil
}
