package store

import (
	"context"

	"go.uber.org/zap"

	"blogspace-client/domain/blog"
	"blogspace-client/infrastructure/gateway"
)

// FetchPosts replaces the post collection with one page from the
// server, wrapped in the retry policy. When two fetches race, the last
// response to land wins; there is no sequencing guard.
func (s *Store) FetchPosts(ctx context.Context, filters gateway.PostFilters) {
	s.setLoading(true)

	var page *gateway.PostsPage
	err := s.retryDo(ctx, func(ctx context.Context) error {
		var opErr error
		page, opErr = s.gateway.ListPosts(ctx, filters)
		return opErr
	})
	if err != nil {
		s.fail(err)
		return
	}

	for i := range page.Posts {
		normalizeAuthor(&page.Posts[i].Author)
	}
	s.mutate(func(st *State) {
		st.Posts = page.Posts
		st.Loading = false
		st.Error = ""
	})
}

// CreatePost publishes a new post and prepends it to the collection.
// Requires both the authenticated flag and a stored token; the two are
// checked independently because either can be stale without the other.
func (s *Store) CreatePost(ctx context.Context, input gateway.PostInput) bool {
	if !s.Snapshot().IsAuthenticated {
		s.alerter.Error("Please Log In", "You must be logged in to create a post")
		return false
	}
	if s.tokens.Token() == "" {
		s.alerter.Error("Please Log In", "Your session is missing. Please log in again")
		return false
	}

	s.alerter.Loading("Publishing", "Saving your post...")
	defer s.alerter.CloseLoading()

	s.setLoading(true)
	post, err := s.gateway.CreatePost(ctx, input)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Publish Failed", userMessage(err))
		return false
	}

	normalizeAuthor(&post.Author)
	s.mutate(func(st *State) {
		st.Posts = append([]blog.Post{*post}, st.Posts...)
		st.Loading = false
		st.Error = ""
	})
	s.logger.Info("post created", zap.String("postId", post.ID))
	s.alerter.ToastSuccess("Post published")
	return true
}

// UpdatePost saves edits to a post and patches it in place.
func (s *Store) UpdatePost(ctx context.Context, id string, input gateway.PostInput) bool {
	s.setLoading(true)
	post, err := s.gateway.UpdatePost(ctx, id, input)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Update Failed", userMessage(err))
		return false
	}

	normalizeAuthor(&post.Author)
	s.mutate(func(st *State) {
		for i := range st.Posts {
			if st.Posts[i].ID == id {
				st.Posts[i] = *post
				break
			}
		}
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Post updated")
	return true
}

// DeletePost asks for confirmation, then removes the post. Declining
// leaves the collection untouched and returns false.
func (s *Store) DeletePost(ctx context.Context, id string) bool {
	if !s.alerter.Confirm("Delete post?", "This cannot be undone.") {
		return false
	}

	s.setLoading(true)
	if err := s.gateway.DeletePost(ctx, id); err != nil {
		s.fail(err)
		s.alerter.Error("Delete Failed", userMessage(err))
		return false
	}

	s.mutate(func(st *State) {
		kept := st.Posts[:0]
		for _, p := range st.Posts {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		st.Posts = kept
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Post deleted")
	return true
}

// LikePost round-trips the toggle and reconciles only the matching
// post's count from the authoritative response. Every other post is
// left byte-for-byte alone.
func (s *Store) LikePost(ctx context.Context, id string) {
	result, err := s.gateway.ToggleLike(ctx, id)
	if err != nil {
		s.fail(err)
		s.alerter.ToastError(userMessage(err))
		return
	}

	s.mutate(func(st *State) {
		for i := range st.Posts {
			if st.Posts[i].ID == id {
				st.Posts[i].Likes = result.Likes
				break
			}
		}
	})
}

// FetchAuthors loads the featured-author list. There is no backend
// endpoint for this yet, so a deterministic placeholder set stands in;
// the shape matches what the real endpoint will return.
func (s *Store) FetchAuthors(ctx context.Context) {
	authors, err := s.gateway.FeaturedAuthors(ctx)
	if err != nil {
		authors = placeholderAuthors()
	}
	s.mutate(func(st *State) {
		st.FeaturedAuthors = authors
	})
}

// FetchDashboardStats loads the admin dashboard aggregates, falling
// back to deterministic placeholder numbers while the endpoint is
// pending.
func (s *Store) FetchDashboardStats(ctx context.Context) {
	stats, err := s.gateway.DashboardStats(ctx)
	if err != nil {
		placeholder := placeholderDashboardStats()
		stats = &placeholder
	}
	s.mutate(func(st *State) {
		st.DashboardStats = *stats
	})
}
