// Package blog holds the client-side view of the BlogSpace data model.
// Every entity here is an in-memory projection of a server document; the
// application store owns the single mutable copy of each, and views only
// ever see value copies.
package blog

import "time"

// SocialLinks are the optional profile links attached to a user.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// User is the signed-in principal. It is mutated only through explicit
// login/signup/update-profile actions and cleared entirely on logout.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Avatar      string      `json:"avatar,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks,omitempty"`
	IsVerified  bool        `json:"isVerified,omitempty"`
}

// Author is the public read-projection of a user: how any account is
// displayed next to its writing. Distinct from User on purpose.
type Author struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	Bio            string `json:"bio,omitempty"`
	PostsCount     int    `json:"postsCount,omitempty"`
	ArticlesCount  int    `json:"articlesCount,omitempty"`
	FollowersCount int    `json:"followersCount,omitempty"`
}

// Post is a normalized article. Likes holds the authoritative count; the
// raw per-user like set stays on the server.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Content       string     `json:"content,omitempty"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	VideoURL      string     `json:"videoUrl,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	Author        Author     `json:"author"`
	Tags          []string   `json:"tags,omitempty"`
	Status        PostStatus `json:"status,omitempty"`
	Likes         int        `json:"likes"`
	Views         int        `json:"views"`
	IsFeatured    bool       `json:"isFeatured"`
	PublishedAt   time.Time  `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
	Comments      int        `json:"comments"`
}

// Category groups posts. The badge flags and counts are placeholder data
// until a real analytics source backs them.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug,omitempty"`
	Description   string    `json:"description,omitempty"`
	PostCount     int       `json:"postCount"`
	FollowerCount int       `json:"followerCount"`
	Trending      bool      `json:"trending"`
	Popular       bool      `json:"popular"`
	IsNew         bool      `json:"isNew"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// Comment is a reply on a post. The structure is recursive with no depth
// bound; rendering depth is a view decision, not a data-model one.
type Comment struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Author    Author        `json:"author"`
	PostID    string        `json:"postId"`
	ParentID  string        `json:"parentId,omitempty"`
	Likes     int           `json:"likes"`
	Status    CommentStatus `json:"status,omitempty"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
	Replies   []Comment     `json:"replies,omitempty"`
}

// DashboardStats are platform-wide aggregates shown on the admin
// dashboard. Never authoritative on the client.
type DashboardStats struct {
	TotalPosts        int `json:"totalPosts"`
	TotalUsers        int `json:"totalUsers"`
	TotalComments     int `json:"totalComments"`
	ActiveUsers       int `json:"activeUsers"`
	PostsGrowth       int `json:"postsGrowth"`
	UsersGrowth       int `json:"usersGrowth"`
	CommentsGrowth    int `json:"commentsGrowth"`
	ActiveUsersGrowth int `json:"activeUsersGrowth"`
}

// UserStats are per-user aggregates derived from the post collection.
type UserStats struct {
	TotalPosts     int `json:"totalPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
	TotalViews     int `json:"totalViews"`
	TotalLikes     int `json:"totalLikes"`
	TotalComments  int `json:"totalComments"`
	ViewsGrowth    int `json:"viewsGrowth"`
}

// Notification is a local-only message shown to the signed-in user. It is
// never derived from server push.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
