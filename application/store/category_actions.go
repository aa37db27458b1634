package store

import (
	"context"

	"blogspace-client/domain/blog"
	"blogspace-client/infrastructure/gateway"
)

// FetchCategories replaces the category collection. Badge flags and
// follower counts are placeholder data until an analytics source backs
// them; they are derived deterministically so repeated fetches agree.
func (s *Store) FetchCategories(ctx context.Context) {
	s.setLoading(true)

	var categories []blog.Category
	err := s.retryDo(ctx, func(ctx context.Context) error {
		var opErr error
		categories, opErr = s.gateway.ListCategories(ctx)
		return opErr
	})
	if err != nil {
		s.fail(err)
		return
	}

	for i := range categories {
		decorateCategory(&categories[i])
	}
	s.mutate(func(st *State) {
		st.Categories = categories
		st.Loading = false
		st.Error = ""
	})
}

// CreateCategory adds a category and appends it locally.
func (s *Store) CreateCategory(ctx context.Context, input gateway.CategoryInput) bool {
	s.setLoading(true)
	category, err := s.gateway.CreateCategory(ctx, input)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Create Failed", userMessage(err))
		return false
	}

	decorateCategory(category)
	s.mutate(func(st *State) {
		st.Categories = append(st.Categories, *category)
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Category created")
	return true
}

// UpdateCategory saves edits to a category and patches it in place.
func (s *Store) UpdateCategory(ctx context.Context, id string, input gateway.CategoryInput) bool {
	s.setLoading(true)
	category, err := s.gateway.UpdateCategory(ctx, id, input)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Update Failed", userMessage(err))
		return false
	}

	decorateCategory(category)
	s.mutate(func(st *State) {
		for i := range st.Categories {
			if st.Categories[i].ID == id {
				st.Categories[i] = *category
				break
			}
		}
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Category updated")
	return true
}

// DeleteCategory asks for confirmation, then removes the category.
func (s *Store) DeleteCategory(ctx context.Context, id string) bool {
	if !s.alerter.Confirm("Delete category?", "Posts in this category will not be deleted.") {
		return false
	}

	s.setLoading(true)
	if err := s.gateway.DeleteCategory(ctx, id); err != nil {
		s.fail(err)
		s.alerter.Error("Delete Failed", userMessage(err))
		return false
	}

	s.mutate(func(st *State) {
		kept := st.Categories[:0]
		for _, c := range st.Categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		st.Categories = kept
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Category deleted")
	return true
}
