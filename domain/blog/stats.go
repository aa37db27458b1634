package blog

// ComputeUserStats derives per-user aggregates from the post collection.
// Pure function of (userID, posts); the store recomputes it whenever
// either input changes and only republishes when the result differs.
func ComputeUserStats(userID string, posts []Post) UserStats {
	var stats UserStats
	for _, p := range posts {
		if p.Author.ID != userID {
			continue
		}
		stats.TotalPosts++
		switch p.Status {
		case PostPublished:
			stats.PublishedPosts++
		case PostDraft:
			stats.DraftPosts++
		}
		stats.TotalViews += p.Views
		stats.TotalLikes += p.Likes
		stats.TotalComments += p.Comments
	}
	// ViewsGrowth needs an analytics window the backend does not expose yet.
	return stats
}
