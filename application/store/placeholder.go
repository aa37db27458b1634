package store

import (
	"hash/fnv"

	"blogspace-client/domain/blog"
)

// seed hashes a string into a small stable number. All placeholder
// figures derive from it so the same input always shows the same data.
func seed(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % 1000)
}

// normalizeAuthor fills the display fields a post's author arrives
// without: bare-ID references get a generic name and title, and an
// absent avatar gets a generated one keyed to the name so repeated
// fetches render the same face.
func normalizeAuthor(a *blog.Author) {
	if a.Name == "" {
		a.Name = "Unknown Author"
	}
	if a.Title == "" {
		a.Title = "Author"
	}
	if a.Avatar == "" {
		a.Avatar = placeholderAvatar(a.Name)
	}
}

// decorateCategory fills the analytics-backed fields a category would
// carry if the analytics pipeline existed.
func decorateCategory(c *blog.Category) {
	n := seed(c.ID + c.Name)
	c.FollowerCount = 100 + n*7
	c.Trending = n%3 == 0
	c.Popular = c.PostCount > 10 || n%4 == 0
	c.IsNew = n%5 == 0
}

// placeholderAuthors is the featured-author list shown while the
// endpoint is pending.
func placeholderAuthors() []blog.Author {
	names := []struct {
		name  string
		title string
	}{
		{"Sarah Mitchell", "Tech Writer"},
		{"James Chen", "Travel Blogger"},
		{"Amara Okafor", "Food Critic"},
		{"Diego Ramos", "Science Correspondent"},
	}
	authors := make([]blog.Author, 0, len(names))
	for i, n := range names {
		k := seed(n.name)
		authors = append(authors, blog.Author{
			ID:             "featured-" + string(rune('a'+i)),
			Name:           n.name,
			Title:          n.title,
			Avatar:         placeholderAvatar(n.name),
			PostsCount:     10 + k%90,
			FollowersCount: 500 + k*3,
		})
	}
	return authors
}

// placeholderDashboardStats are the admin aggregates shown while the
// endpoint is pending.
func placeholderDashboardStats() blog.DashboardStats {
	k := seed("dashboard")
	return blog.DashboardStats{
		TotalPosts:        1200 + k,
		TotalUsers:        340 + k%100,
		TotalComments:     5600 + k*2,
		ActiveUsers:       80 + k%40,
		PostsGrowth:       k%25 + 1,
		UsersGrowth:       k%15 + 1,
		CommentsGrowth:    k%30 + 1,
		ActiveUsersGrowth: k%10 + 1,
	}
}
