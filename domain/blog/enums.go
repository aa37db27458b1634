package blog

// Role is the access level carried by a user account and by token claims.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// RoleFromString maps the role strings the backend uses onto Role.
// The backend reports regular accounts as "user"; those are authors here.
// Anything unrecognized degrades to reader access.
func RoleFromString(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "user", "author":
		return RoleAuthor
	default:
		return RoleReader
	}
}

// Valid reports whether the role is one of the three known levels.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAuthor || r == RoleReader
}

// PostStatus is the lifecycle state of a post. Transitions are user-driven;
// nothing moves a post between states automatically.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)
